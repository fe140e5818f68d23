// Package middleware carries the simulated role model. There is no
// credential check anywhere: a client announces its role the same way the
// login screen lets anyone pick one. The middleware only keeps customer
// devices from hitting staff endpoints by accident.
package middleware

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/dinehall/api/internal/enum"
)

// RoleHeader names the header a client uses to announce its role.
const RoleHeader = "X-Role"

type contextKey string

const roleKey contextKey = "role"

// WithRole stores the announced role (defaulting to customer) on the
// request context.
func WithRole(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		role := r.Header.Get(RoleHeader)
		if role == "" {
			role = enum.RoleCustomer
		}
		ctx := context.WithValue(r.Context(), roleKey, role)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireRole gates an endpoint to the given roles.
func RequireRole(roles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role := RoleFromContext(r.Context())
			for _, allowed := range roles {
				if role == allowed {
					next.ServeHTTP(w, r)
					return
				}
			}
			writeJSON(w, http.StatusForbidden, map[string]string{"error": "insufficient permissions"})
		})
	}
}

// RoleFromContext returns the role stored by WithRole, empty if absent.
func RoleFromContext(ctx context.Context) string {
	role, _ := ctx.Value(roleKey).(string)
	return role
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
