package dateutil

import (
	"fmt"
	"strings"
)

// Meridiem values accepted by the codec.
const (
	AM = "am"
	PM = "pm"
)

// PackDateTime converts form fragments into canonical date and time.
//
// partialDate is "M-D" or "MM-DD"; month and day are zero-padded and joined
// with year as "YYYY-MM-DD". clock and meridiem go through
// ConvertToMilitaryTime.
func PackDateTime(year, partialDate, clock, meridiem string) (date, military string) {
	month, day, _ := strings.Cut(partialDate, "-")
	date = year + "-" + padTwo(month) + "-" + padTwo(day)
	return date, ConvertToMilitaryTime(clock, meridiem)
}

// UnpackDateTime is the inverse of PackDateTime: it splits a canonical date
// into year and "M-D" (one leading zero stripped from month and day) and
// converts the canonical time back to 12-hour form plus meridiem.
func UnpackDateTime(date, military string) (year, partialDate, regular, meridiem string) {
	parts := strings.SplitN(date, "-", 3)
	for len(parts) < 3 {
		parts = append(parts, "")
	}
	year = parts[0]
	partialDate = stripZero(parts[1]) + "-" + stripZero(parts[2])
	regular, meridiem = ConvertToRegularTime(military)
	return year, partialDate, regular, meridiem
}

// ConvertToRegularTime turns "HH:MM" into a 12-hour clock and meridiem.
// Hours above 12 lose 12 and become pm, hour 0 is shown as 12 am, anything
// else is unchanged and am. The hour is not zero-padded.
func ConvertToRegularTime(military string) (regular, meridiem string) {
	hours, minutes, _ := strings.Cut(military, ":")
	h := leadingInt(hours)
	meridiem = AM
	switch {
	case h > 12:
		h -= 12
		meridiem = PM
	case h == 0:
		h = 12
	}
	return fmt.Sprintf("%d:%s", h, minutes), meridiem
}

// ConvertToMilitaryTime turns a 12-hour clock into canonical "HH:MM".
//
// A bare hour in 1..12 gets ":00". pm always adds 12 and am never
// subtracts, so "12:00" pm packs to "24:00" and "12:00" am stays "12:00".
// Sorting and conflict keys are built on this exact form, so the 12 o'clock
// mapping is kept as is.
func ConvertToMilitaryTime(regular, meridiem string) string {
	hours, rest, found := strings.Cut(regular, ":")
	minutes := "00"
	if found {
		minutes, _, _ = strings.Cut(rest, ":")
	}
	h := leadingInt(hours)
	if meridiem == PM {
		h += 12
	}
	return fmt.Sprintf("%02d:%02d", h, leadingInt(minutes))
}

// leadingInt parses the run of digits at the start of s. Anything
// unparseable is 0.
func leadingInt(s string) int {
	n := 0
	for _, c := range strings.TrimSpace(s) {
		if c < '0' || c > '9' {
			break
		}
		n = n*10 + int(c-'0')
	}
	return n
}

func padTwo(s string) string {
	if len(s) == 1 {
		return "0" + s
	}
	return s
}

func stripZero(s string) string {
	if strings.HasPrefix(s, "0") {
		return s[1:]
	}
	return s
}
