package component

import (
	"testing"

	"clockface/face/clockmath"
)

func TestIsStaticOnlyForFaceCircle(t *testing.T) {
	all := []Component{
		&DigitalDateTime{},
		&CountdownTimer{},
		&BarCountdown{},
		&PercentCountdown{},
		&AnalogHand{},
		&FaceCircle{},
	}
	if len(all) != len(Kinds) {
		t.Fatalf("expected one component per kind")
	}
	for i, c := range all {
		if c.Kind() != Kinds[i] {
			t.Fatalf("component %d has kind %q, want %q", i, c.Kind(), Kinds[i])
		}
		if got, want := IsStatic(c), c.Kind() == KindFaceCircle; got != want {
			t.Fatalf("IsStatic(%s) = %v", c.Kind(), got)
		}
	}
}

func TestBaseReturnsCommonFields(t *testing.T) {
	c := &AnalogHand{Common: Common{Position: clockmath.Point{X: 80, Y: 64}, Color: 0xF800, TimezoneOffset: 2}}
	b := Base(c)
	if b.Position != (clockmath.Point{X: 80, Y: 64}) || b.Color != 0xF800 || b.TimezoneOffset != 2 {
		t.Fatalf("unexpected base %+v", b)
	}
}

func TestDeadlineRemaining(t *testing.T) {
	d := Deadline{EndDate: clockmath.DateTime{Year: 2024, Month: 12, Day: 25}, RepetitionDays: 365}
	end := int64(1735084800) // 2024-12-25T00:00:00Z

	got, err := d.Remaining(end-100, 0)
	if err != nil {
		t.Fatalf("Remaining: %v", err)
	}
	if got != 100 {
		t.Fatalf("expected 100, got %d", got)
	}

	got, err = d.Remaining(end+10, 0)
	if err != nil {
		t.Fatalf("Remaining: %v", err)
	}
	if want := int64(365*clockmath.SecondsPerDay - 10); got != want {
		t.Fatalf("expected %d, got %d", want, got)
	}

	bad := Deadline{EndDate: clockmath.DateTime{Year: 2024, Month: 2, Day: 30}}
	if _, err := bad.Remaining(0, 0); err == nil {
		t.Fatal("expected error for invalid end date")
	}
}

func TestSleepWindowAsleep(t *testing.T) {
	w := SleepWindow{Start: 0, End: 10, TimezoneOffset: 2}
	if !w.Asleep(22) { // 00:00 after offset
		t.Fatal("expected asleep at local 22h (+2 = 0h)")
	}
	if w.Asleep(8) { // 10:00 after offset
		t.Fatal("expected awake at local 8h (+2 = 10h)")
	}
}

func TestFaceStyleBits(t *testing.T) {
	cases := []struct {
		style         FaceStyle
		labels, ticks bool
	}{
		{0, false, false},
		{1, true, false},
		{2, false, true},
		{3, true, true},
	}
	for _, tc := range cases {
		if tc.style.Labels() != tc.labels || tc.style.Ticks() != tc.ticks {
			t.Fatalf("style %d: labels=%v ticks=%v", tc.style, tc.style.Labels(), tc.style.Ticks())
		}
	}
}
