package util //nolint:revive // package name util hosts shared formatting helpers used across HTTP templates

import (
	"strconv"
	"strings"
)

// FormatMinutes renders a spent-time value for display, e.g. 90 → "1h 30m".
// Returns "—" for nil and "0m" for zero.
func FormatMinutes(m *int64) string {
	if m == nil {
		return "—"
	}
	mins := *m
	sign := ""
	if mins < 0 {
		sign = "-"
		mins = -mins
	}
	h, rest := mins/60, mins%60

	var b strings.Builder
	b.WriteString(sign)
	if h > 0 {
		b.WriteString(strconv.FormatInt(h, 10))
		b.WriteString("h")
		if rest == 0 {
			return b.String()
		}
		b.WriteString(" ")
	}
	b.WriteString(strconv.FormatInt(rest, 10))
	b.WriteString("m")
	return b.String()
}

// FormatDays renders a day count with the right plural.
func FormatDays(n int) string {
	if n == 1 {
		return "1 day"
	}
	return strconv.Itoa(n) + " days"
}
