// internal/app/system/datespan/datespan.go

// Package datespan derives a group's overall start and end from its
// session set: the earliest session start and the latest session end,
// compared on time of day. The store recomputes both in the same
// operation as any session mutation so readers never see dates derived
// from a different session set than the one stored.
package datespan

import (
	"time"

	"github.com/cohortlab/cohorthub/internal/app/system/sessiontime"
	"github.com/cohortlab/cohorthub/internal/domain/models"
)

// Start returns the minimum start time across the sessions. For an empty
// set it returns the current time: a group with no sessions has no real
// temporal envelope, so the value is a placeholder, not meaningful.
func Start(sessions []models.Session) time.Time {
	if len(sessions) == 0 {
		return time.Now().UTC()
	}
	min := sessions[0].StartTime
	for _, s := range sessions[1:] {
		if sessiontime.Before(s.StartTime, min) {
			min = s.StartTime
		}
	}
	return min
}

// End returns the maximum end time across the sessions, or the current
// time for an empty set.
func End(sessions []models.Session) time.Time {
	if len(sessions) == 0 {
		return time.Now().UTC()
	}
	max := sessions[0].EndTime
	for _, s := range sessions[1:] {
		if sessiontime.Before(max, s.EndTime) {
			max = s.EndTime
		}
	}
	return max
}
