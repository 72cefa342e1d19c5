package utils

import (
	"sleepclinic-service/internal/pkg/constvars"
	"time"
)

func ToEpochMillis(t time.Time) int64 {
	return t.UnixMilli()
}

// ParseVisitDate parses a YYYY-MM-DD date in the server's local time zone.
func ParseVisitDate(value string) (time.Time, bool) {
	if value == "" {
		return time.Time{}, false
	}
	parsed, err := time.ParseInLocation(constvars.DateLayoutYYYYMMDD, value, time.Local)
	if err != nil {
		return time.Time{}, false
	}
	return parsed, true
}

func IsSameCalendarDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
