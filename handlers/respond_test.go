package handlers

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

func TestIsUniqueViolation(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"pgx duplicate key", &pgconn.PgError{Code: "23505"}, true},
		{"pgx duplicate key wrapped", fmt.Errorf("create bid: %w", &pgconn.PgError{Code: "23505"}), true},
		{"pgx other code", &pgconn.PgError{Code: "23503"}, false},
		{"pq duplicate key", &pq.Error{Code: "23505"}, true},
		{"pq other code", &pq.Error{Code: "42P01"}, false},
		{"gorm translated", gorm.ErrDuplicatedKey, true},
		{"gorm translated wrapped", fmt.Errorf("save: %w", gorm.ErrDuplicatedKey), true},
		{"record not found", gorm.ErrRecordNotFound, false},
		{"plain error", errors.New("connection refused"), false},
		{"nil", nil, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := isUniqueViolation(tc.err); got != tc.want {
				t.Errorf("isUniqueViolation(%v) = %v, expected %v", tc.err, got, tc.want)
			}
		})
	}
}
