package services

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ApplicationNumberPrefix returns the date-scoped prefix of IRB application
// numbers, e.g. "IRB-20260830-".
func ApplicationNumberPrefix(date time.Time) string {
	return fmt.Sprintf("IRB-%s-", date.Format("20060102"))
}

// NextApplicationNumber returns the application number following last for the
// given date. last is the highest existing number carrying that date's prefix,
// soft-deleted applications included so a number is never reused; pass the
// empty string when the day has none yet.
func NextApplicationNumber(last string, date time.Time) string {
	prefix := ApplicationNumberPrefix(date)
	seq := 1
	if strings.HasPrefix(last, prefix) {
		if n, err := strconv.Atoi(strings.TrimPrefix(last, prefix)); err == nil && n > 0 {
			seq = n + 1
		}
	}
	return fmt.Sprintf("%s%04d", prefix, seq)
}
