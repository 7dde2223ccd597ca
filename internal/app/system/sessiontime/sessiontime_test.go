package sessiontime_test

import (
	"testing"
	"time"

	"github.com/cohortlab/cohorthub/internal/app/system/sessiontime"
)

func TestClock(t *testing.T) {
	tests := []struct {
		hour, minute int
		want         string
	}{
		{9, 0, "9:00 AM"},
		{14, 0, "2:00 PM"},
		{0, 5, "12:05 AM"},
		{12, 0, "12:00 PM"},
		{23, 59, "11:59 PM"},
		{1, 30, "1:30 AM"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			got := sessiontime.Clock(sessiontime.At(tt.hour, tt.minute))
			if got != tt.want {
				t.Errorf("Clock(%d:%02d) = %q, want %q", tt.hour, tt.minute, got, tt.want)
			}
		})
	}
}

func TestRange(t *testing.T) {
	got := sessiontime.Range(sessiontime.At(9, 0), sessiontime.At(11, 0))
	if got != "9:00 AM - 11:00 AM" {
		t.Errorf("Range: got %q, want %q", got, "9:00 AM - 11:00 AM")
	}
}

func TestMinuteOfDay_IgnoresDate(t *testing.T) {
	// Two values with the same clock time on different dates must compare equal.
	a := time.Date(2024, time.March, 3, 9, 30, 0, 0, time.UTC)
	b := time.Date(1999, time.December, 31, 9, 30, 45, 0, time.UTC)
	if sessiontime.MinuteOfDay(a) != sessiontime.MinuteOfDay(b) {
		t.Errorf("MinuteOfDay should ignore the date part: %d != %d",
			sessiontime.MinuteOfDay(a), sessiontime.MinuteOfDay(b))
	}
}

func TestBefore(t *testing.T) {
	if !sessiontime.Before(sessiontime.At(9, 0), sessiontime.At(9, 1)) {
		t.Error("9:00 should be before 9:01")
	}
	if sessiontime.Before(sessiontime.At(9, 0), sessiontime.At(9, 0)) {
		t.Error("Before must be strict")
	}
}

func TestDuration(t *testing.T) {
	if got := sessiontime.Duration(sessiontime.At(9, 0), sessiontime.At(10, 30)); got != 90 {
		t.Errorf("Duration: got %d, want 90", got)
	}
	if got := sessiontime.Duration(sessiontime.At(10, 0), sessiontime.At(9, 0)); got != -60 {
		t.Errorf("Duration reversed: got %d, want -60", got)
	}
}

func TestOptions(t *testing.T) {
	opts := sessiontime.Options(30 * time.Minute)
	if len(opts) != 48 {
		t.Fatalf("expected 48 half-hour options, got %d", len(opts))
	}
	if opts[0].Label != "12:00 AM" {
		t.Errorf("first option: got %q, want %q", opts[0].Label, "12:00 AM")
	}
	if opts[19].Label != "9:30 AM" {
		t.Errorf("option 19: got %q, want %q", opts[19].Label, "9:30 AM")
	}
	if opts[47].Label != "11:30 PM" {
		t.Errorf("last option: got %q, want %q", opts[47].Label, "11:30 PM")
	}
}
