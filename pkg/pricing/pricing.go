// Package pricing implements rental duration and cost math.
package pricing

import (
	"strconv"
	"strings"
	"time"

	apperrors "github.com/openfleet/carrental/pkg/errors"
)

const millisPerDay = 24 * 60 * 60 * 1000

// ParseDailyRate extracts the numeric rate from a display string of the
// form "$<number>/day". A rate that does not parse is a surfaced validation
// error rather than a silent zero.
func ParseDailyRate(display string) (float64, error) {
	trimmed := strings.TrimSpace(display)
	trimmed = strings.TrimPrefix(trimmed, "$")
	trimmed = strings.TrimSuffix(trimmed, "/day")
	trimmed = strings.TrimSpace(trimmed)

	rate, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return 0, apperrors.NewValidationError("daily rate is not a valid price: " + display)
	}
	if rate <= 0 {
		return 0, apperrors.NewValidationError("daily rate must be positive")
	}
	return rate, nil
}

// DurationDays returns the inclusive day count of a rental: the same start
// and end date is a 1-day booking. Returns 0 when end is before start.
func DurationDays(start, end time.Time) int64 {
	if end.Before(start) {
		return 0
	}
	diff := end.UnixMilli() - start.UnixMilli()
	return diff/millisPerDay + 1
}

// TotalCost computes the rental cost for the inclusive date range.
func TotalCost(start, end time.Time, dailyRate float64) float64 {
	return float64(DurationDays(start, end)) * dailyRate
}
