// internal/domain/models/lectureassignment.go
package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Lecture lifecycle statuses. There is no enforced transition graph; any
// status may be set directly. Intended meaning:
//   - completed: the lecture is in the past
//   - current:   the lecture in progress
//   - next:      the lecture immediately following current
//   - upcoming:  further-future lectures
//   - dismissed: a lecture that will not occur (e.g. cancellation)
//   - scheduled: default for a freshly assigned lecture
const (
	LectureScheduled = "scheduled"
	LectureCompleted = "completed"
	LectureCurrent   = "current"
	LectureNext      = "next"
	LectureUpcoming  = "upcoming"
	LectureDismissed = "dismissed"
)

// LectureAssignment records which teacher is responsible for a specific
// numbered lecture within a group's course run, and that lecture's status.
type LectureAssignment struct {
	LectureNumber int                `bson:"lecture_number" json:"lecture_number"`
	TeacherID     primitive.ObjectID `bson:"teacher_id" json:"teacher_id"`
	Status        string             `bson:"status" json:"status"`
	Notes         string             `bson:"notes,omitempty" json:"notes,omitempty"`
}

// ValidLectureStatus reports whether s is one of the defined statuses.
func ValidLectureStatus(s string) bool {
	switch s {
	case LectureScheduled, LectureCompleted, LectureCurrent, LectureNext, LectureUpcoming, LectureDismissed:
		return true
	}
	return false
}
