package clockmath

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// DateTime is a naive calendar date and time of day.
type DateTime struct {
	Year   int
	Month  int
	Day    int
	Hour   int
	Minute int
	Second int
}

func (d DateTime) String() string {
	return fmt.Sprintf("%04d-%02d-%02dT%02d:%02d:%02d", d.Year, d.Month, d.Day, d.Hour, d.Minute, d.Second)
}

// InvalidDateError reports a malformed or out-of-range date.
type InvalidDateError struct {
	Value  string
	Field  string
	Reason string
}

func (e *InvalidDateError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("invalid date %q: %s %s", e.Value, e.Field, e.Reason)
	}
	return fmt.Sprintf("invalid date %q: %s", e.Value, e.Reason)
}

// ParseDateTime parses "YYYY-MM-DDTHH:MM:SS" (a space may replace the T).
func ParseDateTime(s string) (DateTime, error) {
	datePart, timePart, ok := strings.Cut(strings.TrimSpace(s), "T")
	if !ok {
		datePart, timePart, ok = strings.Cut(strings.TrimSpace(s), " ")
	}
	if !ok {
		return DateTime{}, &InvalidDateError{Value: s, Reason: "expected YYYY-MM-DDTHH:MM:SS"}
	}

	ymd, err := splitInts(datePart, "-")
	if err != nil || len(ymd) != 3 {
		return DateTime{}, &InvalidDateError{Value: s, Field: "date", Reason: "expected YYYY-MM-DD"}
	}
	hms, err := splitInts(timePart, ":")
	if err != nil || len(hms) != 3 {
		return DateTime{}, &InvalidDateError{Value: s, Field: "time", Reason: "expected HH:MM:SS"}
	}

	dt := DateTime{Year: ymd[0], Month: ymd[1], Day: ymd[2], Hour: hms[0], Minute: hms[1], Second: hms[2]}
	if err := dt.Validate(); err != nil {
		if ide, ok := err.(*InvalidDateError); ok {
			ide.Value = s
		}
		return DateTime{}, err
	}
	return dt, nil
}

func splitInts(s, sep string) ([]int, error) {
	parts := strings.Split(s, sep)
	out := make([]int, 0, len(parts))
	for _, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, nil
}

// Validate checks every field against the calendar.
func (d DateTime) Validate() error {
	bad := func(field, reason string) error {
		return &InvalidDateError{Value: d.String(), Field: field, Reason: reason}
	}
	switch {
	case d.Year < 1 || d.Year > 9999:
		return bad("year", "out of range 1..9999")
	case d.Month < 1 || d.Month > 12:
		return bad("month", "out of range 1..12")
	case d.Day < 1 || d.Day > DaysInMonth(d.Year, d.Month):
		return bad("day", fmt.Sprintf("out of range 1..%d", DaysInMonth(d.Year, d.Month)))
	case d.Hour < 0 || d.Hour > 23:
		return bad("hour", "out of range 0..23")
	case d.Minute < 0 || d.Minute > 59:
		return bad("minute", "out of range 0..59")
	case d.Second < 0 || d.Second > 59:
		return bad("second", "out of range 0..59")
	}
	return nil
}

// DaysInMonth returns the number of days in month (1..12) of year.
func DaysInMonth(year, month int) int {
	switch month {
	case 1, 3, 5, 7, 8, 10, 12:
		return 31
	case 4, 6, 9, 11:
		return 30
	case 2:
		if isLeapYear(year) {
			return 29
		}
		return 28
	}
	return 0
}

func isLeapYear(y int) bool {
	return y%4 == 0 && (y%100 != 0 || y%400 == 0)
}

// ToEpoch reads d as naive UTC and adds offsetHours*3600.
func ToEpoch(d DateTime, offsetHours int) (int64, error) {
	if err := d.Validate(); err != nil {
		return 0, err
	}
	t := time.Date(d.Year, time.Month(d.Month), d.Day, d.Hour, d.Minute, d.Second, 0, time.UTC)
	return t.Unix() + int64(offsetHours)*SecondsPerHour, nil
}

// DateTimeFromEpoch is the inverse of ToEpoch with a zero offset.
func DateTimeFromEpoch(sec int64) DateTime {
	t := time.Unix(sec, 0).UTC()
	return DateTime{
		Year:   t.Year(),
		Month:  int(t.Month()),
		Day:    t.Day(),
		Hour:   t.Hour(),
		Minute: t.Minute(),
		Second: t.Second(),
	}
}
