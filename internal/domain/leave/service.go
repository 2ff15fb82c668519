package leave

import (
	"context"
)

// LeaveService defines business logic for the leave request lifecycle
type LeaveService interface {
	// RequestLeave submits a new pending request for the calling employee
	RequestLeave(ctx context.Context, req CreateRequestRequest) (RequestResponse, error)

	// UpdateStatus approves or rejects a request. Only the admin owning the
	// request's employee may transition it.
	UpdateStatus(ctx context.Context, req UpdateStatusRequest) (RequestResponse, error)

	// ListMyLeaves retrieves the calling employee's own requests
	ListMyLeaves(ctx context.Context) (ListRequestsResponse, error)

	// ListLeaves retrieves requests visible to the calling admin or
	// superadmin.
	ListLeaves(ctx context.Context) (ListRequestsResponse, error)
}
