// internal/app/system/groupname/groupname.go

// Package groupname derives a group's canonical display name from its
// weekly session set. The function is pure and idempotent: identical
// session sets always produce byte-identical names. The store re-invokes
// it whenever a group's sessions, courses, or total lecture count change.
package groupname

import (
	"fmt"
	"sort"
	"strings"

	"github.com/cohortlab/cohorthub/internal/app/system/sessiontime"
	"github.com/cohortlab/cohorthub/internal/domain/models"
)

// Fallback is the name used for a group with no sessions yet.
const Fallback = "New Group"

// dayOrder fixes the weekday sort: Sunday first through Thursday.
// Days outside the academic week sort last. Import paths may carry such
// values past the validator, so they are ordered rather than rejected.
var dayOrder = map[string]int{
	models.Sunday:    0,
	models.Monday:    1,
	models.Tuesday:   2,
	models.Wednesday: 3,
	models.Thursday:  4,
}

const unknownDayOrder = 5

// Generate returns the canonical display name for the given session set:
//
//	0 sessions:  the Fallback string
//	1 session:   "Sun [ 9:00 AM - 11:00 AM ]"
//	2 sessions:  "Sun [ 9:00 AM - 11:00 AM ] ~ Tue [ 2:00 PM - 4:00 PM ]"
//	3+ sessions: "Multiple (3 Sessions)"
func Generate(sessions []models.Session) string {
	if len(sessions) == 0 {
		return Fallback
	}
	if len(sessions) > 2 {
		return fmt.Sprintf("Multiple (%d Sessions)", len(sessions))
	}

	sorted := make([]models.Session, len(sessions))
	copy(sorted, sessions)
	sort.SliceStable(sorted, func(i, j int) bool {
		return orderOf(sorted[i].Day) < orderOf(sorted[j].Day)
	})

	parts := make([]string, 0, len(sorted))
	for _, s := range sorted {
		parts = append(parts, fmt.Sprintf("%s [ %s ]", Abbreviate(s.Day), sessiontime.Range(s.StartTime, s.EndTime)))
	}
	return strings.Join(parts, " ~ ")
}

// Abbreviate returns the three-letter display form of a weekday:
// Sun, Mon, Tue, Wed, Thu. Any other value gets its first three letters,
// title-cased.
func Abbreviate(day string) string {
	d := strings.ToLower(day)
	if len(d) > 3 {
		d = d[:3]
	}
	if d == "" {
		return ""
	}
	return strings.ToUpper(d[:1]) + d[1:]
}

func orderOf(day string) int {
	if n, ok := dayOrder[strings.ToLower(day)]; ok {
		return n
	}
	return unknownDayOrder
}
