// internal/app/system/sessionrules/sessionrules.go

// Package sessionrules validates candidate recurring sessions against the
// academic-week rules: a Sunday–Thursday day whitelist, strict time
// ordering, a minimum duration, and same-day exclusivity inside a group.
//
// All checks are evaluated (not short-circuited) so a caller can present
// every violation at once. Failures are reported as human-readable
// strings, never as a hard failure; callers decide whether to block the
// save.
package sessionrules

import (
	"fmt"
	"strings"

	"github.com/cohortlab/cohorthub/internal/app/system/sessiontime"
	"github.com/cohortlab/cohorthub/internal/domain/models"
)

// MinDurationMinutes is the shortest session the schedule accepts.
const MinDurationMinutes = 60

// allowedDays is the 5-day academic week. Weekends are excluded by design.
var allowedDays = map[string]bool{
	models.Sunday:    true,
	models.Monday:    true,
	models.Tuesday:   true,
	models.Wednesday: true,
	models.Thursday:  true,
}

// Result reports the outcome of validating one candidate session.
type Result struct {
	Valid  bool     `json:"is_valid"`
	Errors []string `json:"errors"`
}

// AllowedDay reports whether day is within the Sunday–Thursday whitelist.
// Day values are matched case-insensitively.
func AllowedDay(day string) bool {
	return allowedDays[strings.ToLower(day)]
}

// Validate checks a candidate session against the academic-week rules and
// against the group's existing sessions. When editing an existing session,
// pass its id as excludeID so it does not conflict with itself; pass ""
// when adding a new session.
func Validate(candidate models.Session, existing []models.Session, excludeID string) Result {
	var errs []string

	if !AllowedDay(candidate.Day) {
		errs = append(errs, "sessions may only be scheduled Sunday through Thursday")
	}
	if !sessiontime.Before(candidate.StartTime, candidate.EndTime) {
		errs = append(errs, "session start time must be before its end time")
	}
	if sessiontime.Duration(candidate.StartTime, candidate.EndTime) < MinDurationMinutes {
		errs = append(errs, fmt.Sprintf("sessions must be at least %d minutes long", MinDurationMinutes))
	}
	if HasConflict(candidate, existing, excludeID) {
		errs = append(errs, fmt.Sprintf("another session already exists on %s", strings.ToLower(candidate.Day)))
	}

	return Result{Valid: len(errs) == 0, Errors: errs}
}

// HasConflict reports whether any other session in the group falls on the
// same weekday as the candidate. This is a one-slot-per-day rule: two
// sessions on the same day conflict even when their times do not overlap.
func HasConflict(candidate models.Session, existing []models.Session, excludeID string) bool {
	day := strings.ToLower(candidate.Day)
	for _, s := range existing {
		if excludeID != "" && s.ID == excludeID {
			continue
		}
		if strings.ToLower(s.Day) == day {
			return true
		}
	}
	return false
}

// ValidationError carries the full violation list across an error return,
// so stores can refuse an invalid mutation without losing the individual
// messages the caller needs to display.
type ValidationError struct {
	Errors []string
}

func (e *ValidationError) Error() string {
	return "invalid session: " + strings.Join(e.Errors, "; ")
}
