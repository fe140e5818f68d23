package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dinehall/api/internal/enum"
)

func roleEcho() (http.Handler, *string) {
	var seen string
	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = RoleFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})
	return h, &seen
}

func TestWithRole_HeaderStored(t *testing.T) {
	inner, seen := roleEcho()
	handler := WithRole(inner)

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set(RoleHeader, enum.RoleKitchen)
	handler.ServeHTTP(httptest.NewRecorder(), req)

	if *seen != enum.RoleKitchen {
		t.Errorf("role: got %q, want kitchen", *seen)
	}
}

func TestWithRole_DefaultsToCustomer(t *testing.T) {
	inner, seen := roleEcho()
	handler := WithRole(inner)

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/", nil))

	if *seen != enum.RoleCustomer {
		t.Errorf("role: got %q, want customer", *seen)
	}
}

func TestRequireRole_Allowed(t *testing.T) {
	inner, _ := roleEcho()
	handler := WithRole(RequireRole(enum.RoleAdmin, enum.RoleWaiter)(inner))

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set(RoleHeader, enum.RoleWaiter)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Errorf("status: got %d, want %d", rr.Code, http.StatusOK)
	}
}

func TestRequireRole_Forbidden(t *testing.T) {
	inner, _ := roleEcho()
	handler := WithRole(RequireRole(enum.RoleAdmin)(inner))

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set(RoleHeader, enum.RoleCustomer)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusForbidden {
		t.Errorf("status: got %d, want %d", rr.Code, http.StatusForbidden)
	}
}

func TestRequireRole_MissingHeaderForbidden(t *testing.T) {
	inner, _ := roleEcho()
	handler := WithRole(RequireRole(enum.RoleKitchen)(inner))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest("GET", "/", nil))

	if rr.Code != http.StatusForbidden {
		t.Errorf("status: got %d, want %d", rr.Code, http.StatusForbidden)
	}
}
