package jwt

import (
	"context"
	"fmt"

	"github.com/fintradify/hr-portal-go/internal/domain/employee"
	"github.com/go-chi/jwtauth/v5"
)

// Claims is the decoded identity carried by an access token. EmployeeID is
// set for employee tokens, AdminID for admin tokens; superadmin tokens carry
// neither.
type Claims struct {
	UserID     string
	Role       employee.Role
	EmployeeID string
	AdminID    string
}

// ClaimsFromContext extracts identity claims from the verified token on the
// request context.
func ClaimsFromContext(ctx context.Context) (Claims, error) {
	_, raw, err := jwtauth.FromContext(ctx)
	if err != nil {
		return Claims{}, fmt.Errorf("failed to extract claims from context: %w", err)
	}

	var c Claims
	c.UserID, _ = raw["user_id"].(string)
	if role, ok := raw["role"].(string); ok {
		c.Role = employee.Role(role)
	}
	c.EmployeeID, _ = raw["employee_id"].(string)
	c.AdminID, _ = raw["admin_id"].(string)

	if c.UserID == "" {
		return Claims{}, fmt.Errorf("user_id not found in token")
	}

	return c, nil
}
