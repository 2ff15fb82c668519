package cron

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/fintradify/hr-portal-go/internal/domain/attendance"
	"github.com/fintradify/hr-portal-go/internal/pkg/geocode"
	"golang.org/x/sync/errgroup"
)

const (
	enrichmentBatchSize   = 50
	enrichmentConcurrency = 4
	enrichmentTimeout     = 15 * time.Second
)

// EnrichmentJobs backfills human-readable addresses on attendance records
// whose asynchronous lookup at punch time failed or was interrupted.
type EnrichmentJobs struct {
	attendanceRepo attendance.AttendanceRepository
	resolver       geocode.Resolver
}

func NewEnrichmentJobs(attendanceRepo attendance.AttendanceRepository, resolver geocode.Resolver) *EnrichmentJobs {
	return &EnrichmentJobs{
		attendanceRepo: attendanceRepo,
		resolver:       resolver,
	}
}

func (j *EnrichmentJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("backfill_attendance_addresses", 30*time.Minute, j.BackfillAddresses)
}

// BackfillAddresses resolves addresses for a bounded batch of records that
// have coordinates but no stored address. Lookup failures are skipped; the
// record is retried on the next run.
func (j *EnrichmentJobs) BackfillAddresses(ctx context.Context) error {
	records, err := j.attendanceRepo.ListMissingAddresses(ctx, enrichmentBatchSize)
	if err != nil {
		return fmt.Errorf("failed to list records missing addresses: %w", err)
	}

	if len(records) == 0 {
		return nil
	}

	slog.Info("Cron: Backfilling attendance addresses", "count", len(records))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(enrichmentConcurrency)

	for _, rec := range records {
		rec := rec
		g.Go(func() error {
			j.enrichRecord(gctx, rec)
			return nil
		})
	}

	return g.Wait()
}

func (j *EnrichmentJobs) enrichRecord(ctx context.Context, rec attendance.Record) {
	if rec.PunchInLatitude != nil && rec.PunchInLongitude != nil && rec.PunchInAddress == nil {
		j.resolveAndStore(ctx, rec.ID, *rec.PunchInLatitude, *rec.PunchInLongitude, j.attendanceRepo.SetPunchInAddress)
	}
	if rec.PunchOutLatitude != nil && rec.PunchOutLongitude != nil && rec.PunchOutAddress == nil {
		j.resolveAndStore(ctx, rec.ID, *rec.PunchOutLatitude, *rec.PunchOutLongitude, j.attendanceRepo.SetPunchOutAddress)
	}
}

func (j *EnrichmentJobs) resolveAndStore(ctx context.Context, recordID string, lat, lon float64, store func(ctx context.Context, id, address string) error) {
	lookupCtx, cancel := context.WithTimeout(ctx, enrichmentTimeout)
	defer cancel()

	address, err := j.resolver.Reverse(lookupCtx, lat, lon)
	if err != nil {
		if !errors.Is(err, geocode.ErrUnavailable) {
			slog.Error("Cron: Address lookup failed", "record_id", recordID, "error", err)
		}
		return
	}

	if err := store(ctx, recordID, address); err != nil {
		slog.Error("Cron: Failed to store address", "record_id", recordID, "error", err)
	}
}
