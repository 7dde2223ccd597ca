// internal/app/system/sessiontime/sessiontime.go

// Package sessiontime works with session times as abstract time-of-day
// markers. Session StartTime/EndTime values carry an incidental date
// component that is never compared; every helper here looks only at the
// hour and minute.
package sessiontime

import (
	"fmt"
	"time"
)

// MinutesPerDay is the number of minutes in one day.
const MinutesPerDay = 24 * 60

// At returns a time-of-day value for the given hour and minute. The date
// part is a fixed placeholder and carries no meaning.
func At(hour, minute int) time.Time {
	return time.Date(2000, time.January, 1, hour, minute, 0, 0, time.UTC)
}

// MinuteOfDay returns minutes since midnight for t, ignoring the date.
func MinuteOfDay(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}

// Before reports whether a's time of day strictly precedes b's.
func Before(a, b time.Time) bool {
	return MinuteOfDay(a) < MinuteOfDay(b)
}

// Duration returns the length in minutes from start to end, compared on
// time of day only. A negative result means end precedes start.
func Duration(start, end time.Time) int {
	return MinuteOfDay(end) - MinuteOfDay(start)
}

// Clock formats a time of day on a 12-hour clock with no leading zero on
// the hour, zero-padded minutes, and an uppercase AM/PM suffix,
// e.g. "9:00 AM", "2:30 PM".
func Clock(t time.Time) string {
	return t.Format("3:04 PM")
}

// Range formats a start/end pair as "9:00 AM - 11:00 AM".
func Range(start, end time.Time) string {
	return fmt.Sprintf("%s - %s", Clock(start), Clock(end))
}

// Option is one quantized time choice for an input widget.
type Option struct {
	Value time.Time `json:"value"`
	Label string    `json:"label"`
}

// Options enumerates every time of day from midnight through the end of
// the day at the given step, for populating time-picker widgets. Steps
// below one minute are clamped to one minute.
func Options(step time.Duration) []Option {
	stepMin := int(step.Minutes())
	if stepMin < 1 {
		stepMin = 1
	}
	opts := make([]Option, 0, MinutesPerDay/stepMin)
	for m := 0; m < MinutesPerDay; m += stepMin {
		v := At(m/60, m%60)
		opts = append(opts, Option{Value: v, Label: Clock(v)})
	}
	return opts
}
