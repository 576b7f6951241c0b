package clockmath

import (
	"strconv"
	"strings"
)

type token struct {
	text  string
	value func(v *tokenValues) string
}

type tokenValues struct {
	snap Snapshot
	hour int

	days, hours, minutes, seconds int64
}

func pad2(n int) string {
	if n >= 0 && n < 10 {
		return "0" + strconv.Itoa(n)
	}
	return strconv.Itoa(n)
}

// Longest tokens first: at each position the first match wins.
var dateTimeTokens = []token{
	{"YYYY", func(v *tokenValues) string {
		s := strconv.Itoa(v.snap.Year)
		for len(s) < 4 {
			s = "0" + s
		}
		return s
	}},
	{"YY", func(v *tokenValues) string { return pad2(((v.snap.Year % 100) + 100) % 100) }},
	{"MM", func(v *tokenValues) string { return pad2(v.snap.Month) }},
	{"DD", func(v *tokenValues) string { return pad2(v.snap.Day) }},
	{"HH", func(v *tokenValues) string { return pad2(v.hour) }},
	{"mm", func(v *tokenValues) string { return pad2(v.snap.Minute) }},
	{"SS", func(v *tokenValues) string { return pad2(v.snap.Second) }},
	{"M", func(v *tokenValues) string { return strconv.Itoa(v.snap.Month) }},
	{"D", func(v *tokenValues) string { return strconv.Itoa(v.snap.Day) }},
	{"H", func(v *tokenValues) string { return strconv.Itoa(v.hour) }},
}

var countdownTokens = []token{
	{"D", func(v *tokenValues) string { return strconv.FormatInt(v.days, 10) }},
	{"H", func(v *tokenValues) string { return strconv.FormatInt(v.hours, 10) }},
	{"M", func(v *tokenValues) string { return strconv.FormatInt(v.minutes, 10) }},
	{"S", func(v *tokenValues) string { return strconv.FormatInt(v.seconds, 10) }},
}

// expand scans format once, left to right. Substituted text is never re-scanned.
func expand(format string, tokens []token, v *tokenValues) string {
	var b strings.Builder
	b.Grow(len(format) + 8)
	for i := 0; i < len(format); {
		matched := false
		for _, tok := range tokens {
			if strings.HasPrefix(format[i:], tok.text) {
				b.WriteString(tok.value(v))
				i += len(tok.text)
				matched = true
				break
			}
		}
		if !matched {
			b.WriteByte(format[i])
			i++
		}
	}
	return b.String()
}

// FormatDateTime substitutes YYYY, YY, MM, M, DD, D, HH, H, mm and SS.
// Only the hour is shifted by offsetHours (wrapped into [0,24)).
func FormatDateTime(format string, s Snapshot, offsetHours int) string {
	v := &tokenValues{snap: s, hour: WrapHour(s.Hour, offsetHours)}
	return expand(format, dateTimeTokens, v)
}

// FormatCountdown substitutes D, H, M and S with unpadded integers.
func FormatCountdown(format string, days, hours, minutes, seconds int64) string {
	v := &tokenValues{days: days, hours: hours, minutes: minutes, seconds: seconds}
	return expand(format, countdownTokens, v)
}
