package helper

import (
	"math"
	"time"

	"github.com/shopspring/decimal"
)

// Round rounds half away from zero to the given number of decimal places.
// NaN and infinities are returned as is.
func Round(v float64, places int32) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}
	return decimal.NewFromFloat(v).Round(places).InexactFloat64()
}

// SlotStart returns the start of the period-aligned slot containing t.
func SlotStart(t time.Time, period time.Duration) time.Time {
	if period <= 0 {
		return t
	}
	return t.Truncate(period)
}

// UntilNextBoundary is the time left until the next multiple of period.
// Exactly on a boundary it returns a whole period.
func UntilNextBoundary(now time.Time, period time.Duration) time.Duration {
	if period <= 0 {
		return 0
	}
	next := SlotStart(now, period).Add(period)
	return next.Sub(now)
}
