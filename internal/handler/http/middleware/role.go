package middleware

import (
	"net/http"

	"github.com/fintradify/hr-portal-go/internal/domain/employee"
	"github.com/fintradify/hr-portal-go/internal/handler/http/response"
	"github.com/go-chi/jwtauth/v5"
)

// EmployeeOnly requires the employee role
func EmployeeOnly(next http.Handler) http.Handler {
	return requireRoles(next, employee.RoleEmployee)
}

// AdminOnly requires admin or superadmin role
func AdminOnly(next http.Handler) http.Handler {
	return requireRoles(next, employee.RoleAdmin, employee.RoleSuperAdmin)
}

// SuperAdminOnly requires the superadmin role
func SuperAdminOnly(next http.Handler) http.Handler {
	return requireRoles(next, employee.RoleSuperAdmin)
}

func requireRoles(next http.Handler, allowed ...employee.Role) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, claims, err := jwtauth.FromContext(r.Context())
		if err != nil {
			response.Forbidden(w, "Role is not allowed for this operation")
			return
		}

		roleStr, ok := claims["role"].(string)
		if !ok {
			response.Forbidden(w, "Role is not allowed for this operation")
			return
		}

		role := employee.Role(roleStr)
		for _, a := range allowed {
			if role == a {
				next.ServeHTTP(w, r)
				return
			}
		}

		response.Forbidden(w, "Role is not allowed for this operation")
	})
}
