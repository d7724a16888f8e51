package routes

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/surajit50/binshiragp-sub000/handlers"
	"github.com/surajit50/binshiragp-sub000/middleware"
	"github.com/surajit50/binshiragp-sub000/models"
)

// RegisterRoutes sets up all application routes
func RegisterRoutes() http.Handler {
	r := mux.NewRouter()

	// =====================================================
	// Public Routes (no authentication)
	// =====================================================
	r.HandleFunc("/login", handlers.Login).Methods("POST")
	r.HandleFunc("/notices", handlers.GetNotices).Methods("GET")
	r.HandleFunc("/warish-applications", handlers.SubmitWarishApplication).Methods("POST")
	r.PathPrefix("/uploads/").Handler(
		http.StripPrefix("/uploads/", http.FileServer(http.Dir("./uploads"))),
	)

	// =====================================================
	// Protected API Routes (require JWT authentication)
	// =====================================================
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.JWTMiddleware)

	api.HandleFunc("/me", handlers.CurrentUser).Methods("GET")

	registerTenderRoutes(api)
	registerFinanceRoutes(api)
	registerCitizenRoutes(api)

	// =====================================================
	// Admin Routes (require the admin role)
	// =====================================================
	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(requireAdmin)
	registerAdminRoutes(admin)

	return r
}

func requireAdmin(next http.Handler) http.Handler {
	return middleware.RequireRole([]string{models.RoleAdmin}, next)
}

// registerTenderRoutes wires the tender lifecycle: NIT booking through
// award of contract.
func registerTenderRoutes(api *mux.Router) {
	// NIT register
	api.HandleFunc("/nits", handlers.BookNit).Methods("POST")
	api.HandleFunc("/nits", handlers.GetAllNits).Methods("GET")
	api.HandleFunc("/nits/{id}", handlers.GetNit).Methods("GET")
	api.HandleFunc("/nits/{id}", handlers.UpdateNit).Methods("PUT")
	api.HandleFunc("/nits/{id}", handlers.DeleteNit).Methods("DELETE")
	api.HandleFunc("/nits/{id}/publish", handlers.PublishNit).Methods("POST")

	// Works under a NIT
	api.HandleFunc("/works", handlers.AddWork).Methods("POST")
	api.HandleFunc("/works", handlers.GetAllWorks).Methods("GET")
	api.HandleFunc("/works/{id}", handlers.GetWork).Methods("GET")
	api.HandleFunc("/works/{id}", handlers.UpdateWork).Methods("PUT")
	api.HandleFunc("/works/{id}", handlers.DeleteWork).Methods("DELETE")

	// Bidder registration and technical evaluation
	api.HandleFunc("/bidders", handlers.AddBidders).Methods("POST")
	api.HandleFunc("/works/{workId}/bidders", handlers.GetBidders).Methods("GET")
	api.HandleFunc("/works/{workId}/bidders/{agencyId}", handlers.RemoveBidder).Methods("DELETE")
	api.HandleFunc("/works/{workId}/close-bidder-list", handlers.CloseBidderList).Methods("POST")
	api.HandleFunc("/technical-evaluations", handlers.AddTechnicalEvaluation).Methods("POST")
	api.HandleFunc("/bidders/{bidAgencyId}/technical-evaluation", handlers.GetTechnicalEvaluation).Methods("GET")

	// Financial bids and award
	api.HandleFunc("/works/{workId}/open-financial-bids", handlers.OpenFinancialBids).Methods("POST")
	api.HandleFunc("/works/{workId}/financial-bids", handlers.RecordFinancialBid).Methods("POST")
	api.HandleFunc("/works/{workId}/bid-comparison", handlers.GetBidComparison).Methods("GET")
	api.HandleFunc("/awards", handlers.IssueAward).Methods("POST")
	api.HandleFunc("/works/{workId}/cancel", handlers.CancelTender).Methods("POST")

	// Agencies
	api.HandleFunc("/agencies", handlers.CreateAgency).Methods("POST")
	api.HandleFunc("/agencies", handlers.GetAllAgencies).Methods("GET")
	api.HandleFunc("/agencies/{id}", handlers.GetAgency).Methods("GET")
	api.HandleFunc("/agencies/{id}", handlers.UpdateAgency).Methods("PUT")

	// Documents and registers
	api.HandleFunc("/documents", handlers.UploadTenderDocument).Methods("POST")
	api.HandleFunc("/exports/nit-register", handlers.ExportNitRegister).Methods("GET")
	api.HandleFunc("/exports/works/{workId}/payments", handlers.ExportWorkPayments).Methods("GET")
}

// registerFinanceRoutes wires payments, earnest money and security
// deposits.
func registerFinanceRoutes(api *mux.Router) {
	api.HandleFunc("/payments", handlers.RecordPayment).Methods("POST")
	api.HandleFunc("/payments", handlers.GetAllPayments).Methods("GET")
	api.HandleFunc("/works/{workId}/payments", handlers.GetWorkPayments).Methods("GET")

	api.HandleFunc("/earnest-money", handlers.GetEarnestMoneyRegister).Methods("GET")
	api.HandleFunc("/earnest-money/{id}/mark-paid", handlers.MarkEmdPaid).Methods("POST")

	api.HandleFunc("/security-deposits", handlers.GetSecurityDeposits).Methods("GET")
	api.HandleFunc("/security-deposits/{id}/mark-paid", handlers.MarkDepositPaid).Methods("POST")
}

// registerCitizenRoutes wires the office side of citizen services.
func registerCitizenRoutes(api *mux.Router) {
	api.HandleFunc("/notices", handlers.CreateNotice).Methods("POST")
	api.HandleFunc("/warish-applications", handlers.GetWarishApplications).Methods("GET")
	api.HandleFunc("/warish-applications/{id}/decide", handlers.DecideWarishApplication).Methods("POST")
}

// registerAdminRoutes wires operations reserved for the admin role.
func registerAdminRoutes(admin *mux.Router) {
	admin.HandleFunc("/users", handlers.RegisterUser).Methods("POST")
	admin.HandleFunc("/agencies/{id}", handlers.DeleteAgency).Methods("DELETE")
	admin.HandleFunc("/payments/{id}", handlers.DeletePayment).Methods("DELETE")
	admin.HandleFunc("/notices/{id}", handlers.DeleteNotice).Methods("DELETE")
}
