// Package clockmath holds the pure geometry, calendar and formatting helpers
// that turn a time snapshot into positions, durations and strings.
package clockmath

import (
	"fmt"
	"math"
	"time"
)

const (
	SecondsPerDay  = 86400
	SecondsPerHour = 3600
)

// Point is a pixel coordinate.
type Point struct {
	X int
	Y int
}

// Snapshot is the instant every widget of one tick is drawn for.
//
// Calendar fields are local time as reported by the time source, before any
// per-widget timezone offset is applied.
type Snapshot struct {
	Year   int
	Month  int
	Day    int
	Hour   int
	Minute int
	Second int

	// Tick is a monotonic millisecond counter.
	Tick uint64
	// Epoch is seconds since the Unix epoch (UTC), sampled with the fields above.
	Epoch int64
}

// SnapshotOf splits t into a Snapshot.
func SnapshotOf(t time.Time, tick uint64) Snapshot {
	return Snapshot{
		Year:   t.Year(),
		Month:  int(t.Month()),
		Day:    t.Day(),
		Hour:   t.Hour(),
		Minute: t.Minute(),
		Second: t.Second(),
		Tick:   tick,
		Epoch:  t.Unix(),
	}
}

// NormalizeAngle maps deg into [0,360).
func NormalizeAngle(deg float64) float64 {
	a := math.Mod(deg, 360)
	if a < 0 {
		a += 360
	}
	if a >= 360 {
		a = 0
	}
	return a
}

// PolarPoint returns the point radius pixels from center at deg degrees.
// 0° points along +x and angles grow clockwise on screen (y grows downwards).
func PolarPoint(center Point, radius float64, deg float64) Point {
	rad := NormalizeAngle(deg) * math.Pi / 180
	return Point{
		X: center.X + int(math.Round(radius*math.Cos(rad))),
		Y: center.Y + int(math.Round(radius*math.Sin(rad))),
	}
}

// WrapHour applies a timezone offset to an hour and wraps it into [0,24).
func WrapHour(hour, offset int) int {
	h := (hour + offset) % 24
	if h < 0 {
		h += 24
	}
	return h
}

// HandAngle is the angle of a hand that sweeps once every duration seconds.
// Zero seconds into the cycle is -90°, which PolarPoint puts at 12 o'clock.
func HandAngle(s Snapshot, offset int, duration int) float64 {
	if duration <= 0 {
		return -90
	}
	sec := WrapHour(s.Hour, offset)*SecondsPerHour + s.Minute*60 + s.Second
	cycle := sec % duration
	return float64(cycle)*360/float64(duration) - 90
}

// InSleepWindow reports whether hour lies in [start,end), wrapping past midnight
// when start > end. An empty window (start == end) never sleeps.
func InSleepWindow(hour, start, end int) bool {
	hour = WrapHour(hour, 0)
	start = WrapHour(start, 0)
	end = WrapHour(end, 0)
	switch {
	case start == end:
		return false
	case start < end:
		return hour >= start && hour < end
	default:
		return hour >= start || hour < end
	}
}

// Remaining returns the seconds from now until end. When the deadline has
// passed and repetitionDays > 0, end is advanced by whole repetition periods
// until the result is non-negative.
func Remaining(end, now int64, repetitionDays int) int64 {
	r := end - now
	if r >= 0 || repetitionDays <= 0 {
		return r
	}
	period := int64(repetitionDays) * SecondsPerDay
	k := (-r + period - 1) / period
	return r + k*period
}

// SplitDuration breaks seconds into days, hours, minutes and seconds.
// Negative durations split to all zeros.
func SplitDuration(sec int64) (days, hours, minutes, seconds int64) {
	if sec < 0 {
		return 0, 0, 0, 0
	}
	days = sec / SecondsPerDay
	hours = (sec % SecondsPerDay) / SecondsPerHour
	minutes = (sec % SecondsPerHour) / 60
	seconds = sec % 60
	return days, hours, minutes, seconds
}

// Fullness is the elapsed-window fraction used by bar and percent widgets:
// remaining time over the repetition window, clamped to [0,1], mirrored when
// countup is set. Without a window it is 1 while time remains, else 0.
func Fullness(remaining int64, repetitionDays int, countup bool) float64 {
	var f float64
	if repetitionDays > 0 {
		f = (float64(remaining) / SecondsPerDay) / float64(repetitionDays)
	} else if remaining > 0 {
		f = 1
	}
	f = clamp01(f)
	if countup {
		f = 1 - f
	}
	return f
}

func clamp01(f float64) float64 {
	switch {
	case math.IsNaN(f), f < 0:
		return 0
	case f > 1:
		return 1
	}
	return f
}

// Pixels scales a length by a fullness fraction, rounding to whole pixels.
func Pixels(length int, fullness float64) int {
	n := int(math.Round(float64(length) * clamp01(fullness)))
	if n > length {
		n = length
	}
	return n
}

// FormatPercent renders fullness as a fixed-point percentage, e.g. "42.50%".
func FormatPercent(fullness float64, decimals int) string {
	if decimals < 0 {
		decimals = 0
	}
	return fmt.Sprintf("%.*f%%", decimals, clamp01(fullness)*100)
}
