package employee

import "errors"

var (
	ErrEmployeeNotFound = errors.New("employee not found")
	ErrEmployeeInactive = errors.New("employee account is inactive")
	ErrRoleNotAllowed   = errors.New("role is not allowed for this operation")
)
