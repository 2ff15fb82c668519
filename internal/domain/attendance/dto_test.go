package attendance

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string   { return &s }
func f64Ptr(f float64) *float64 { return &f }

func TestPunchRequestValidate(t *testing.T) {
	cases := []struct {
		name    string
		req     PunchRequest
		wantErr bool
	}{
		{"empty request", PunchRequest{}, false},
		{"timestamp only", PunchRequest{Timestamp: strPtr("2025-03-10T09:00:00Z")}, false},
		{"timestamp with offset", PunchRequest{Timestamp: strPtr("2025-03-10T09:00:00+07:00")}, false},
		{"bad timestamp", PunchRequest{Timestamp: strPtr("10-03-2025 09:00")}, true},
		{"full coordinates", PunchRequest{Latitude: f64Ptr(51.5), Longitude: f64Ptr(-0.12)}, false},
		{"latitude alone", PunchRequest{Latitude: f64Ptr(51.5)}, true},
		{"longitude alone", PunchRequest{Longitude: f64Ptr(-0.12)}, true},
		{"latitude out of range", PunchRequest{Latitude: f64Ptr(90.1), Longitude: f64Ptr(0)}, true},
		{"longitude out of range", PunchRequest{Latitude: f64Ptr(0), Longitude: f64Ptr(-180.5)}, true},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			err := c.req.Validate()
			if c.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestPunchRequestAt(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

	req := PunchRequest{}
	assert.Equal(t, now, req.At(now))

	req = PunchRequest{Timestamp: strPtr("2025-03-09T23:30:00Z")}
	assert.Equal(t, time.Date(2025, 3, 9, 23, 30, 0, 0, time.UTC), req.At(now))
}

func TestDayWindow(t *testing.T) {
	at := time.Date(2025, 3, 10, 23, 45, 0, 0, time.UTC)
	start, end := DayWindow(at)

	assert.Equal(t, time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2025, 3, 11, 0, 0, 0, 0, time.UTC), end)
}

func TestListQueryBounds(t *testing.T) {
	from, to := "2025-03-01", "2025-03-31"
	q := ListQuery{From: &from, To: &to}
	require.NoError(t, q.Validate())

	lo, hi := q.Bounds(time.UTC)
	require.NotNil(t, lo)
	require.NotNil(t, hi)

	assert.Equal(t, time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), *lo)
	assert.Equal(t, time.Date(2025, 3, 31, 23, 59, 59, 999000000, time.UTC), *hi)

	empty := ListQuery{}
	lo, hi = empty.Bounds(time.UTC)
	assert.Nil(t, lo)
	assert.Nil(t, hi)
}

func TestToResponseAddressFallback(t *testing.T) {
	rec := Record{
		ID:         "rec-1",
		EmployeeID: "emp-1",
		PunchDate:  time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
		PunchIn:    time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC),
	}

	// No coordinates at all
	resp := ToResponse(rec)
	assert.Equal(t, "Location not available", resp.PunchInAddress)

	// Coordinates without a stored address
	rec.PunchInLatitude = f64Ptr(51.5)
	rec.PunchInLongitude = f64Ptr(-0.12)
	resp = ToResponse(rec)
	assert.Equal(t, "51.5, -0.12", resp.PunchInAddress)

	// Stored address wins
	rec.PunchInAddress = strPtr("1 Main Street")
	resp = ToResponse(rec)
	assert.Equal(t, "1 Main Street", resp.PunchInAddress)

	assert.Nil(t, resp.PunchOut)
}
