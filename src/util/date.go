package util

import (
	"fmt"
	"time"
)

// ParseDate accepts a YYYY-MM-DD calendar date and returns it normalized.
func ParseDate(value string) (string, error) {
	t, err := time.Parse(time.DateOnly, value)
	if err != nil {
		return "", fmt.Errorf("invalid date %q, expected YYYY-MM-DD", value)
	}
	return t.Format(time.DateOnly), nil
}
