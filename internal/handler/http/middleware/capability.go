package middleware

import (
	"net/http"

	"github.com/codemyown/leave-mangement-system/internal/domain/user"
	"github.com/codemyown/leave-mangement-system/internal/handler/http/response"
	"github.com/go-chi/jwtauth/v5"
)

func capabilityFlag(r *http.Request, claim string) bool {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		return false
	}
	flag, ok := claims[claim].(bool)
	return ok && flag
}

// EmployeeRequired gates routes on the employee capability.
func EmployeeRequired(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !capabilityFlag(r, "is_employee") {
			response.HandleError(w, user.ErrEmployeeAccessRequired)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// ManagerRequired gates routes on the manager capability.
func ManagerRequired(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !capabilityFlag(r, "is_manager") {
			response.HandleError(w, user.ErrManagerAccessRequired)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// AdminOnly gates routes to accounts holding no capability at all. Such
// accounts administer reference data only.
func AdminOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if capabilityFlag(r, "is_employee") || capabilityFlag(r, "is_manager") {
			response.HandleError(w, user.ErrAdminAccessRequired)
			return
		}
		next.ServeHTTP(w, r)
	})
}
