package cron

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/fintradify/hr-portal-go/internal/domain/attendance"
	"github.com/fintradify/hr-portal-go/internal/pkg/geocode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubAttendanceRepo struct {
	attendance.AttendanceRepository

	mu        sync.Mutex
	missing   []attendance.Record
	inAddrs   map[string]string
	outAddrs  map[string]string
}

func newStubAttendanceRepo(missing ...attendance.Record) *stubAttendanceRepo {
	return &stubAttendanceRepo{
		missing:  missing,
		inAddrs:  make(map[string]string),
		outAddrs: make(map[string]string),
	}
}

func (r *stubAttendanceRepo) ListMissingAddresses(ctx context.Context, limit int) ([]attendance.Record, error) {
	if len(r.missing) > limit {
		return r.missing[:limit], nil
	}
	return r.missing, nil
}

func (r *stubAttendanceRepo) SetPunchInAddress(ctx context.Context, id, address string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.inAddrs[id] = address
	return nil
}

func (r *stubAttendanceRepo) SetPunchOutAddress(ctx context.Context, id, address string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.outAddrs[id] = address
	return nil
}

type stubResolver struct {
	mu    sync.Mutex
	calls int
	err   error
}

func (s *stubResolver) Reverse(ctx context.Context, lat, lon float64) (string, error) {
	s.mu.Lock()
	s.calls++
	s.mu.Unlock()
	if s.err != nil {
		return "", s.err
	}
	return "Resolved Address", nil
}

func coord(v float64) *float64 { return &v }

func TestBackfillAddresses(t *testing.T) {
	now := time.Now()
	repo := newStubAttendanceRepo(
		attendance.Record{
			ID:               "rec-1",
			PunchInLatitude:  coord(51.5),
			PunchInLongitude: coord(-0.12),
		},
		attendance.Record{
			ID:                "rec-2",
			PunchInLatitude:   coord(48.8),
			PunchInLongitude:  coord(2.35),
			PunchInAddress:    strPtr("already resolved"),
			PunchOut:          &now,
			PunchOutLatitude:  coord(48.9),
			PunchOutLongitude: coord(2.36),
		},
	)
	resolver := &stubResolver{}
	jobs := NewEnrichmentJobs(repo, resolver)

	require.NoError(t, jobs.BackfillAddresses(context.Background()))

	assert.Equal(t, "Resolved Address", repo.inAddrs["rec-1"])
	_, hasIn := repo.inAddrs["rec-2"]
	assert.False(t, hasIn, "already resolved address must not be overwritten")
	assert.Equal(t, "Resolved Address", repo.outAddrs["rec-2"])
	assert.Equal(t, 2, resolver.calls)
}

func TestBackfillAddresses_ResolverUnavailable(t *testing.T) {
	repo := newStubAttendanceRepo(attendance.Record{
		ID:               "rec-1",
		PunchInLatitude:  coord(51.5),
		PunchInLongitude: coord(-0.12),
	})
	jobs := NewEnrichmentJobs(repo, &stubResolver{err: geocode.ErrUnavailable})

	// Lookup failures are soft; the job itself succeeds
	require.NoError(t, jobs.BackfillAddresses(context.Background()))
	assert.Empty(t, repo.inAddrs)
}

func TestBackfillAddresses_NothingToDo(t *testing.T) {
	resolver := &stubResolver{}
	jobs := NewEnrichmentJobs(newStubAttendanceRepo(), resolver)

	require.NoError(t, jobs.BackfillAddresses(context.Background()))
	assert.Zero(t, resolver.calls)
}

func strPtr(s string) *string { return &s }
