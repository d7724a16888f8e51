package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// Domain preconditions surfaced to the operator as {error} results.
// Handlers translate these with errors.Is; raw persistence errors never
// reach the client.
var (
	ErrInvalidState      = errors.New("work is not in a status that allows this action")
	ErrAllBiddersExist   = errors.New("all selected bidders already exist for this work")
	ErrBidAgencyInvalid  = errors.New("invalid bid agency for this tender")
	ErrWorkNotFound      = errors.New("work not found")
	ErrAlreadyAwarded    = errors.New("work already has an AOC")
	ErrNotFinancialEval  = errors.New("work must be in Financial Evaluation status")
	ErrBiddersUnfinished = errors.New("all bidders must be technically evaluated first")
	ErrFinalBillExists   = errors.New("work already has a Final Bill")
	ErrNetExceedsGross   = errors.New("net amount cannot exceed gross bill amount")
	ErrNegativeDeduction = errors.New("deductions cannot be negative")
	ErrDepositPaid       = errors.New("deposit is already marked paid")
)

type errorResponse struct {
	Error string `json:"error"`
}

type successResponse struct {
	Success string      `json:"success"`
	Count   int         `json:"count,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func respondJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func respondError(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, errorResponse{Error: msg})
}

func respondSuccess(w http.ResponseWriter, msg string) {
	respondJSON(w, http.StatusOK, successResponse{Success: msg})
}

func respondSuccessData(w http.ResponseWriter, msg string, data interface{}) {
	respondJSON(w, http.StatusOK, successResponse{Success: msg, Data: data})
}

// isUniqueViolation reports whether err is a Postgres duplicate-key
// error (code 23505), i.e. a uniqueness race the constraint caught.
// The gorm postgres driver is pgx-backed, so real violations arrive as
// *pgconn.PgError; pq.Error is kept for lib/pq callers.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	return errors.Is(err, gorm.ErrDuplicatedKey)
}

// notFound reports whether err is a gorm record-not-found.
func notFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
