package utils

import (
	"fmt"
	"time"

	"github.com/yukikurage/calorie-tracker-api/internal/constants"
)

var timeOfDayLayouts = []string{"15:04", "15:04:05"}

// ParseDate parses a YYYY-MM-DD calendar date.
func ParseDate(value string) (time.Time, error) {
	d, err := time.Parse(constants.DateLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", value)
	}
	return d, nil
}

// NormalizeTimeOfDay validates an HH:MM or HH:MM:SS value and returns it as HH:MM:SS.
func NormalizeTimeOfDay(value string) (string, error) {
	for _, layout := range timeOfDayLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.Format("15:04:05"), nil
		}
	}
	return "", fmt.Errorf("invalid time %q: expected HH:MM", value)
}

// Today returns the current local date as YYYY-MM-DD.
func Today() string {
	return time.Now().Format(constants.DateLayout)
}

// YearRange returns the first and last calendar day of year.
func YearRange(year int) (string, string) {
	return fmt.Sprintf("%04d-01-01", year), fmt.Sprintf("%04d-12-31", year)
}
