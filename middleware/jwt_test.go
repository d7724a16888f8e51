package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestTokenRoundTrip(t *testing.T) {
	token, err := GenerateToken("user-1", "staff", "Office Clerk")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	var got *Claims
	handler := JWTMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = GetClaims(r)
	}))

	req := httptest.NewRequest("GET", "/api/v1/nits", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, expected 200", rec.Code)
	}
	if got == nil {
		t.Fatal("claims missing from request context")
	}
	if got.UserID != "user-1" || got.Role != "staff" || got.Name != "Office Clerk" {
		t.Errorf("claims = %+v, expected user-1/staff/Office Clerk", got)
	}
}

func TestJWTMiddlewareRejects(t *testing.T) {
	handler := JWTMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler should not run")
	}))

	tests := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"not a bearer token", "Basic dXNlcjpwYXNz"},
		{"garbage token", "Bearer not.a.jwt"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/api/v1/nits", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)
			if rec.Code != http.StatusUnauthorized {
				t.Errorf("status = %d, expected 401", rec.Code)
			}
		})
	}
}

func TestRequireRole(t *testing.T) {
	protected := RequireRole([]string{"admin"}, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	asRole := func(role string) int {
		token, err := GenerateToken("user-1", role, "Someone")
		if err != nil {
			t.Fatalf("GenerateToken: %v", err)
		}
		req := httptest.NewRequest("DELETE", "/api/v1/admin/payments/x", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		JWTMiddleware(protected).ServeHTTP(rec, req)
		return rec.Code
	}

	if code := asRole("admin"); code != http.StatusOK {
		t.Errorf("admin got %d, expected 200", code)
	}
	if code := asRole("staff"); code != http.StatusForbidden {
		t.Errorf("staff got %d, expected 403", code)
	}
}
