package utils

import (
	"strings"
	"time"
)

const layoutDate = "2006-01-02"

// ParseDate parses YYYY-MM-DD in local timezone.
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(layoutDate, strings.TrimSpace(s), time.Local)
}

// DateOnly keeps the YYYY-MM-DD part of a date or timestamp string.
func DateOnly(v string) string {
	v = strings.TrimSpace(v)
	if len(v) >= 10 {
		return v[:10]
	}
	return v
}

// TimeHM keeps the HH:MM part of a time string.
func TimeHM(v string) string {
	v = strings.TrimSpace(v)
	if len(v) >= 5 {
		return v[:5]
	}
	return v
}

// DisplayDate renders YYYY-MM-DD as "02 Jan 2006"; other input is returned as is.
func DisplayDate(v string) string {
	t, err := ParseDate(DateOnly(v))
	if err != nil {
		return v
	}
	return t.Format("02 Jan 2006")
}
