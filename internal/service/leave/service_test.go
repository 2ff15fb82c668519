package leave

import (
	"context"
	"fmt"
	"sort"
	"testing"
	"time"

	"github.com/fintradify/hr-portal-go/internal/domain/employee"
	"github.com/fintradify/hr-portal-go/internal/domain/leave"
	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key-for-jwt"

func authContext(t *testing.T, role employee.Role, employeeID, adminID string) context.Context {
	t.Helper()

	ja := jwtauth.New("HS256", []byte(testSecret), nil)
	claims := map[string]interface{}{
		"user_id": "user-1",
		"role":    string(role),
		"type":    "access",
		"exp":     time.Now().Add(time.Hour).Unix(),
	}
	if employeeID != "" {
		claims["employee_id"] = employeeID
	}
	if adminID != "" {
		claims["admin_id"] = adminID
	}

	token, _, err := ja.Encode(claims)
	require.NoError(t, err)

	return jwtauth.NewContext(context.Background(), token, nil)
}

type fakeEmployeeRepo struct {
	employees map[string]employee.Employee
}

func newFakeEmployeeRepo(emps ...employee.Employee) *fakeEmployeeRepo {
	repo := &fakeEmployeeRepo{employees: make(map[string]employee.Employee)}
	for _, e := range emps {
		repo.employees[e.ID] = e
	}
	return repo
}

func (r *fakeEmployeeRepo) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	emp, ok := r.employees[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return emp, nil
}

func (r *fakeEmployeeRepo) GetByIDForAdmin(ctx context.Context, id, adminID string) (employee.Employee, error) {
	emp, ok := r.employees[id]
	if !ok || emp.AdminID != adminID {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return emp, nil
}

func (r *fakeEmployeeRepo) ListIDsByAdmin(ctx context.Context, adminID string) ([]string, error) {
	var ids []string
	for id, emp := range r.employees {
		if emp.AdminID == adminID {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids, nil
}

type fakeLeaveRepo struct {
	requests []leave.Request
	nextID   int
}

func (r *fakeLeaveRepo) Create(ctx context.Context, req leave.Request) (leave.Request, error) {
	for _, existing := range r.requests {
		if existing.EmployeeID == req.EmployeeID && existing.Overlaps(req.StartDate, req.EndDate) {
			return leave.Request{}, leave.ErrOverlappingLeave
		}
	}

	r.nextID++
	req.ID = fmt.Sprintf("leave-%d", r.nextID)
	req.CreatedAt = time.Now()
	req.UpdatedAt = req.CreatedAt
	r.requests = append(r.requests, req)
	return req, nil
}

func (r *fakeLeaveRepo) GetByID(ctx context.Context, id string) (leave.Request, error) {
	for _, req := range r.requests {
		if req.ID == id {
			return req, nil
		}
	}
	return leave.Request{}, leave.ErrRequestNotFound
}

func (r *fakeLeaveRepo) HasOverlap(ctx context.Context, employeeID string, start, end time.Time) (bool, error) {
	for _, req := range r.requests {
		if req.EmployeeID == employeeID && req.Overlaps(start, end) {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeLeaveRepo) UpdateStatus(ctx context.Context, id string, status leave.RequestStatus) (leave.Request, error) {
	for i, req := range r.requests {
		if req.ID == id {
			r.requests[i].Status = status
			r.requests[i].UpdatedAt = time.Now()
			return r.requests[i], nil
		}
	}
	return leave.Request{}, leave.ErrRequestNotFound
}

func (r *fakeLeaveRepo) ListByEmployee(ctx context.Context, employeeID string) ([]leave.Request, error) {
	var out []leave.Request
	for _, req := range r.requests {
		if req.EmployeeID == employeeID {
			out = append(out, req)
		}
	}
	return out, nil
}

func (r *fakeLeaveRepo) ListByAdmin(ctx context.Context, adminID string) ([]leave.Request, error) {
	var out []leave.Request
	for _, req := range r.requests {
		if req.AdminID == adminID {
			out = append(out, req)
		}
	}
	return out, nil
}

func (r *fakeLeaveRepo) ListAll(ctx context.Context) ([]leave.Request, error) {
	return append([]leave.Request(nil), r.requests...), nil
}

func testEmployee() employee.Employee {
	return employee.Employee{
		ID:       "emp-1",
		AdminID:  "admin-1",
		Name:     "Jordan Lee",
		Email:    "jordan@example.com",
		IsActive: true,
	}
}

func TestRequestLeave_Success(t *testing.T) {
	svc := NewLeaveService(nil, &fakeLeaveRepo{}, newFakeEmployeeRepo(testEmployee()))
	ctx := authContext(t, employee.RoleEmployee, "emp-1", "")

	created, err := svc.RequestLeave(ctx, leave.CreateRequestRequest{
		StartDate: "2025-04-01",
		EndDate:   "2025-04-03",
		Reason:    "Family visit",
	})
	require.NoError(t, err)

	assert.Equal(t, "emp-1", created.EmployeeID)
	assert.Equal(t, "admin-1", created.AdminID)
	assert.Equal(t, string(leave.RequestStatusPending), created.Status)
	assert.Equal(t, leave.DefaultLeaveType, created.LeaveType)
	assert.Equal(t, "2025-04-01", created.StartDate)
	assert.Equal(t, "2025-04-03", created.EndDate)
}

func TestRequestLeave_SingleDay(t *testing.T) {
	svc := NewLeaveService(nil, &fakeLeaveRepo{}, newFakeEmployeeRepo(testEmployee()))
	ctx := authContext(t, employee.RoleEmployee, "emp-1", "")

	created, err := svc.RequestLeave(ctx, leave.CreateRequestRequest{
		StartDate: "2025-04-01",
		EndDate:   "2025-04-01",
		Reason:    "Appointment",
	})
	require.NoError(t, err)
	assert.Equal(t, created.StartDate, created.EndDate)
}

func TestRequestLeave_Validation(t *testing.T) {
	svc := NewLeaveService(nil, &fakeLeaveRepo{}, newFakeEmployeeRepo(testEmployee()))
	ctx := authContext(t, employee.RoleEmployee, "emp-1", "")

	cases := []struct {
		name string
		req  leave.CreateRequestRequest
	}{
		{"missing dates", leave.CreateRequestRequest{Reason: "x"}},
		{"bad format", leave.CreateRequestRequest{StartDate: "01-04-2025", EndDate: "2025-04-03", Reason: "x"}},
		{"end before start", leave.CreateRequestRequest{StartDate: "2025-04-05", EndDate: "2025-04-03", Reason: "x"}},
		{"blank reason", leave.CreateRequestRequest{StartDate: "2025-04-01", EndDate: "2025-04-03", Reason: "   "}},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := svc.RequestLeave(ctx, c.req)
			assert.Error(t, err)
		})
	}
}

func TestRequestLeave_OverlapBlocksRegardlessOfStatus(t *testing.T) {
	repo := &fakeLeaveRepo{}
	svc := NewLeaveService(nil, repo, newFakeEmployeeRepo(testEmployee()))
	empCtx := authContext(t, employee.RoleEmployee, "emp-1", "")
	adminCtx := authContext(t, employee.RoleAdmin, "", "admin-1")

	created, err := svc.RequestLeave(empCtx, leave.CreateRequestRequest{
		StartDate: "2025-04-01",
		EndDate:   "2025-04-05",
		Reason:    "Trip",
	})
	require.NoError(t, err)

	// Reject it; the interval still blocks new requests
	_, err = svc.UpdateStatus(adminCtx, leave.UpdateStatusRequest{ID: created.ID, Status: "rejected"})
	require.NoError(t, err)

	_, err = svc.RequestLeave(empCtx, leave.CreateRequestRequest{
		StartDate: "2025-04-05",
		EndDate:   "2025-04-07",
		Reason:    "Retry",
	})
	assert.ErrorIs(t, err, leave.ErrOverlappingLeave)

	// Disjoint range is fine
	_, err = svc.RequestLeave(empCtx, leave.CreateRequestRequest{
		StartDate: "2025-04-06",
		EndDate:   "2025-04-07",
		Reason:    "Retry",
	})
	assert.NoError(t, err)
}

func TestRequestLeave_InactiveEmployeeRejected(t *testing.T) {
	emp := testEmployee()
	emp.IsActive = false
	svc := NewLeaveService(nil, &fakeLeaveRepo{}, newFakeEmployeeRepo(emp))
	ctx := authContext(t, employee.RoleEmployee, "emp-1", "")

	_, err := svc.RequestLeave(ctx, leave.CreateRequestRequest{
		StartDate: "2025-04-01",
		EndDate:   "2025-04-03",
		Reason:    "Trip",
	})
	assert.ErrorIs(t, err, employee.ErrEmployeeInactive)
}

func TestUpdateStatus_OwnershipEnforced(t *testing.T) {
	repo := &fakeLeaveRepo{}
	svc := NewLeaveService(nil, repo, newFakeEmployeeRepo(testEmployee()))
	empCtx := authContext(t, employee.RoleEmployee, "emp-1", "")

	created, err := svc.RequestLeave(empCtx, leave.CreateRequestRequest{
		StartDate: "2025-04-01",
		EndDate:   "2025-04-03",
		Reason:    "Trip",
	})
	require.NoError(t, err)

	// Another admin cannot transition it
	_, err = svc.UpdateStatus(authContext(t, employee.RoleAdmin, "", "admin-2"), leave.UpdateStatusRequest{ID: created.ID, Status: "approved"})
	assert.ErrorIs(t, err, leave.ErrNotRequestOwner)

	// The owning admin can
	updated, err := svc.UpdateStatus(authContext(t, employee.RoleAdmin, "", "admin-1"), leave.UpdateStatusRequest{ID: created.ID, Status: "approved"})
	require.NoError(t, err)
	assert.Equal(t, string(leave.RequestStatusApproved), updated.Status)

	// Superadmin bypasses ownership
	updated, err = svc.UpdateStatus(authContext(t, employee.RoleSuperAdmin, "", ""), leave.UpdateStatusRequest{ID: created.ID, Status: "rejected"})
	require.NoError(t, err)
	assert.Equal(t, string(leave.RequestStatusRejected), updated.Status)
}

func TestUpdateStatus_UnconditionalOverwrite(t *testing.T) {
	repo := &fakeLeaveRepo{}
	svc := NewLeaveService(nil, repo, newFakeEmployeeRepo(testEmployee()))
	empCtx := authContext(t, employee.RoleEmployee, "emp-1", "")
	adminCtx := authContext(t, employee.RoleAdmin, "", "admin-1")

	created, err := svc.RequestLeave(empCtx, leave.CreateRequestRequest{
		StartDate: "2025-04-01",
		EndDate:   "2025-04-03",
		Reason:    "Trip",
	})
	require.NoError(t, err)

	// approve, approve again, then flip to rejected: all succeed
	for _, status := range []string{"approved", "approved", "rejected"} {
		updated, err := svc.UpdateStatus(adminCtx, leave.UpdateStatusRequest{ID: created.ID, Status: status})
		require.NoError(t, err)
		assert.Equal(t, status, updated.Status)
	}
}

func TestUpdateStatus_InvalidInput(t *testing.T) {
	repo := &fakeLeaveRepo{}
	svc := NewLeaveService(nil, repo, newFakeEmployeeRepo(testEmployee()))
	adminCtx := authContext(t, employee.RoleAdmin, "", "admin-1")

	_, err := svc.UpdateStatus(adminCtx, leave.UpdateStatusRequest{ID: "leave-1", Status: "pending"})
	assert.Error(t, err)

	_, err = svc.UpdateStatus(adminCtx, leave.UpdateStatusRequest{ID: "missing", Status: "approved"})
	assert.ErrorIs(t, err, leave.ErrRequestNotFound)
}

func TestListLeaves_RoleScoping(t *testing.T) {
	other := employee.Employee{ID: "emp-2", AdminID: "admin-2", Name: "Sam Park", Email: "sam@example.com", IsActive: true}
	repo := &fakeLeaveRepo{}
	svc := NewLeaveService(nil, repo, newFakeEmployeeRepo(testEmployee(), other))

	_, err := svc.RequestLeave(authContext(t, employee.RoleEmployee, "emp-1", ""), leave.CreateRequestRequest{
		StartDate: "2025-04-01", EndDate: "2025-04-02", Reason: "Trip",
	})
	require.NoError(t, err)
	_, err = svc.RequestLeave(authContext(t, employee.RoleEmployee, "emp-2", ""), leave.CreateRequestRequest{
		StartDate: "2025-04-01", EndDate: "2025-04-02", Reason: "Trip",
	})
	require.NoError(t, err)

	mine, err := svc.ListMyLeaves(authContext(t, employee.RoleEmployee, "emp-1", ""))
	require.NoError(t, err)
	assert.Equal(t, 1, mine.Count)
	assert.Equal(t, "emp-1", mine.Requests[0].EmployeeID)

	admins, err := svc.ListLeaves(authContext(t, employee.RoleAdmin, "", "admin-2"))
	require.NoError(t, err)
	assert.Equal(t, 1, admins.Count)
	assert.Equal(t, "emp-2", admins.Requests[0].EmployeeID)

	all, err := svc.ListLeaves(authContext(t, employee.RoleSuperAdmin, "", ""))
	require.NoError(t, err)
	assert.Equal(t, 2, all.Count)

	_, err = svc.ListLeaves(authContext(t, employee.RoleEmployee, "emp-1", ""))
	assert.ErrorIs(t, err, employee.ErrRoleNotAllowed)
}
