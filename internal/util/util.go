package util

import (
	"strings"
	"time"
)

// AddCalendarMonths adds n calendar months to t, keeping the day of month
// where it exists and clamping to the last day of the target month otherwise
// (Jan 31 + 1 month is Feb 28, or Feb 29 in a leap year).
func AddCalendarMonths(t time.Time, n int) time.Time {
	year, month, day := t.Date()
	hour, minute, sec := t.Clock()

	first := time.Date(year, month+time.Month(n), 1, hour, minute, sec, t.Nanosecond(), t.Location())
	if last := daysIn(first.Year(), first.Month(), t.Location()); day > last {
		day = last
	}

	return time.Date(first.Year(), first.Month(), day, hour, minute, sec, t.Nanosecond(), t.Location())
}

func daysIn(year int, month time.Month, loc *time.Location) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, loc).Day()
}

// NormalizePhone keeps ASCII digits only and strips a leading 91 country code from
// twelve digit numbers, so "+91 98765-43210" and "9876543210" compare equal.
func NormalizePhone(phone string) string {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}

		return -1
	}, phone)

	if len(digits) == 12 && strings.HasPrefix(digits, "91") {
		return digits[2:]
	}

	return digits
}

// NormalizeEmail lowercases and trims an email address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// SafeKeySegment reduces s to characters that are safe inside an object key.
func SafeKeySegment(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, s)
}
