package payroll

import (
	"math"
	"time"

	"github.com/shopspring/decimal"
)

type DayType string

const (
	DayTypeFull   DayType = "Full"
	DayTypeHalf   DayType = "Half"
	DayTypeAbsent DayType = "Absent"
)

// FullDayHours is the minimum closed-session length credited as a full day.
// Exactly 6 hours counts as Full.
const FullDayHours = 6.0

// Classify maps one attendance session to a payroll day type.
// A closed session of 6 or more hours is Full (credit 1), a closed session
// of positive length under 6 hours is Half (credit 0.5), everything else is
// Absent (credit 0).
func Classify(punchIn time.Time, punchOut *time.Time) (dayType DayType, credit float64, hours float64) {
	if punchOut == nil {
		return DayTypeAbsent, 0, 0
	}

	hours = punchOut.Sub(punchIn).Hours()
	switch {
	case hours >= FullDayHours:
		return DayTypeFull, 1, hours
	case hours > 0:
		return DayTypeHalf, 0.5, hours
	default:
		return DayTypeAbsent, 0, hours
	}
}

// PayableDays aggregates day credits: Full counts 1, Half counts 0.5.
func PayableDays(full, half int) float64 {
	return float64(full) + 0.5*float64(half)
}

// PayableAmount computes the slip total as payableDays * the employee's
// stored salary figure. The rate's period semantics are ambiguous upstream;
// keeping the formula here means a future unit correction is a one-line
// change.
func PayableAmount(payableDays float64, salary decimal.Decimal) decimal.Decimal {
	return salary.Mul(decimal.NewFromFloat(payableDays))
}

// RoundHours rounds a fractional hour count to 2 decimals for display.
func RoundHours(hours float64) float64 {
	return math.Round(hours*100) / 100
}
