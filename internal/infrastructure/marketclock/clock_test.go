package marketclock

import (
	"testing"
	"time"
)

func mustCalendar(t *testing.T) *Calendar {
	t.Helper()
	cal, err := New("America/New_York", "09:30", "16:00")
	if err != nil {
		t.Fatalf("calendar init failed: %v", err)
	}
	return cal
}

func eastern(t *testing.T, y int, m time.Month, d, hh, mm int) time.Time {
	t.Helper()
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Fatal(err)
	}
	return time.Date(y, m, d, hh, mm, 0, 0, loc)
}

func TestSessionBounds(t *testing.T) {
	cal := mustCalendar(t)
	// 2026-08-26 is a Wednesday
	cases := []struct {
		name string
		at   time.Time
		open bool
	}{
		{"before open", eastern(t, 2026, time.August, 26, 9, 29), false},
		{"at open", eastern(t, 2026, time.August, 26, 9, 30), true},
		{"midday", eastern(t, 2026, time.August, 26, 12, 0), true},
		{"last minute", eastern(t, 2026, time.August, 26, 15, 59), true},
		{"at close", eastern(t, 2026, time.August, 26, 16, 0), false},
		{"evening", eastern(t, 2026, time.August, 26, 20, 0), false},
	}
	for _, tc := range cases {
		if got := cal.Open(tc.at); got != tc.open {
			t.Errorf("%s: Open=%v, want %v", tc.name, got, tc.open)
		}
	}
}

func TestWeekendClosed(t *testing.T) {
	cal := mustCalendar(t)
	// 2026-08-29/30 are Saturday and Sunday
	if cal.Open(eastern(t, 2026, time.August, 29, 12, 0)) {
		t.Error("Saturday must be closed")
	}
	if cal.Open(eastern(t, 2026, time.August, 30, 12, 0)) {
		t.Error("Sunday must be closed")
	}
}

func TestOpenConvertsTimezone(t *testing.T) {
	cal := mustCalendar(t)
	// 14:00 UTC on a Wednesday is 10:00 in New York (EDT)
	utc := time.Date(2026, time.August, 26, 14, 0, 0, 0, time.UTC)
	if !cal.Open(utc) {
		t.Error("UTC instant inside the session must count as open")
	}
}

func TestInvalidConfig(t *testing.T) {
	if _, err := New("Not/AZone", "09:30", "16:00"); err == nil {
		t.Error("expected error for bad timezone")
	}
	if _, err := New("UTC", "droopy", "16:00"); err == nil {
		t.Error("expected error for bad open time")
	}
	if _, err := New("UTC", "16:00", "09:30"); err == nil {
		t.Error("expected error for close before open")
	}
}
