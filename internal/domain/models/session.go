// internal/domain/models/session.go
package models

import "time"

// Weekday values for sessions. The academic week runs Sunday through
// Thursday; Friday and Saturday are never valid for new sessions.
// Values are stored lowercase to match what the dashboard sends.
const (
	Sunday    = "sunday"
	Monday    = "monday"
	Tuesday   = "tuesday"
	Wednesday = "wednesday"
	Thursday  = "thursday"
)

// Session is a single recurring weekly time slot belonging to a group.
// Only the hour/minute component of StartTime and EndTime is meaningful;
// the date part is incidental and never compared.
type Session struct {
	ID        string    `bson:"id" json:"id"` // stable across edits; assigned on insert
	Day       string    `bson:"day" json:"day"`
	StartTime time.Time `bson:"start_time" json:"start_time"`
	EndTime   time.Time `bson:"end_time" json:"end_time"`
}
