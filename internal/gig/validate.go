package gig

import (
	"strconv"
	"strings"
	"time"

	"github.com/javiermolinar/gigbook/internal/dateutil"
)

// Validate checks the raw date and time fields of a submission. Time is
// checked before date and the first failure wins. The meridiem is matched
// case-insensitively. The returned error is a *ValidationError.
func Validate(in Input) error {
	if msg := checkTime(in.Time, normalizeMeridiem(in.Meridiem)); msg != "" {
		return &ValidationError{Message: msg}
	}
	if msg := checkDate(in.Year, in.Date); msg != "" {
		return &ValidationError{Message: msg}
	}
	return nil
}

// normalizeMeridiem turns "PM" or " pm " into "pm".
func normalizeMeridiem(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func checkTime(clock, meridiem string) string {
	if meridiem != dateutil.AM && meridiem != dateutil.PM {
		return MsgSelectMeridiem
	}

	// A bare hour is shorthand for "H:00".
	if isDigits(clock) {
		if h, err := strconv.Atoi(clock); err == nil && h >= 1 && h <= 12 {
			return ""
		}
	}

	if strings.Count(clock, ":") != 1 {
		return MsgInvalidTime
	}
	hours, minutes, _ := strings.Cut(clock, ":")
	if !isDigits(hours) || !isDigits(minutes) {
		return MsgInvalidTime
	}
	h, err := strconv.Atoi(hours)
	if err != nil || h < 1 || h > 12 {
		return MsgInvalidTime
	}
	m, err := strconv.Atoi(minutes)
	if err != nil || m < 0 || m > 59 {
		return MsgInvalidTime
	}
	return ""
}

func checkDate(year, date string) string {
	if year == "" {
		return MsgSelectYear
	}
	if strings.Count(date, "-") != 1 {
		return MsgDateFormat
	}
	month, day, _ := strings.Cut(date, "-")
	if !validDate(year, month, day) {
		return MsgInvalidDate
	}
	return ""
}

// validDate reports whether year/month/day name a real calendar day. Year
// must be four digits; month and day one or two.
func validDate(year, month, day string) bool {
	if len(year) != 4 || !isDigits(year) {
		return false
	}
	if len(month) > 2 || !isDigits(month) || len(day) > 2 || !isDigits(day) {
		return false
	}
	y, _ := strconv.Atoi(year)
	m, _ := strconv.Atoi(month)
	d, _ := strconv.Atoi(day)
	if m < 1 || m > 12 || d < 1 {
		return false
	}
	t := time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
	return t.Year() == y && int(t.Month()) == m && t.Day() == d
}

// isDigits reports whether s is non-empty and made only of ASCII digits.
func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}
