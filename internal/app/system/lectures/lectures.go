// internal/app/system/lectures/lectures.go

// Package lectures maintains per-lecture teacher-assignment records for a
// group. The functions here are pure transformations over assignment
// slices; the group store applies them inside its atomic mutation so the
// aggregate is never observed mid-update.
//
// Lecture-number range checks against the owning group's total lecture
// count belong to the aggregate boundary (the store), not here.
package lectures

import (
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/cohortlab/cohorthub/internal/domain/models"
)

// Update describes one assignment change, keyed by lecture number.
// Status and Notes are merged only when non-nil; existing values are kept
// otherwise. TeacherID is required for single updates and optional in
// bulk updates.
type Update struct {
	LectureNumber int                `json:"lecture_number"`
	TeacherID     primitive.ObjectID `json:"teacher_id"`
	Status        *string            `json:"status,omitempty"`
	Notes         *string            `json:"notes,omitempty"`
}

// Apply merges a single update into the assignment list. When a record
// for the lecture number exists, the supplied fields are merged into it;
// otherwise a new record is inserted with status defaulting to scheduled.
// The input slice is not modified.
func Apply(assignments []models.LectureAssignment, u Update) []models.LectureAssignment {
	out := make([]models.LectureAssignment, len(assignments))
	copy(out, assignments)

	for i := range out {
		if out[i].LectureNumber == u.LectureNumber {
			merge(&out[i], u)
			return out
		}
	}
	return append(out, newAssignment(u))
}

// ApplyBulk merges a batch of updates. Each update either merges into an
// existing record or, only when it carries a teacher id, inserts a new one
// defaulting to scheduled. Updates lacking both an existing match and a
// teacher id are silently skipped.
func ApplyBulk(assignments []models.LectureAssignment, updates []Update) []models.LectureAssignment {
	out := make([]models.LectureAssignment, len(assignments))
	copy(out, assignments)

	for _, u := range updates {
		matched := false
		for i := range out {
			if out[i].LectureNumber == u.LectureNumber {
				merge(&out[i], u)
				matched = true
				break
			}
		}
		if !matched && !u.TeacherID.IsZero() {
			out = append(out, newAssignment(u))
		}
	}
	return out
}

// ByTeacher returns the assignments held by the given teacher, in stored
// (lecture-number) order.
func ByTeacher(assignments []models.LectureAssignment, teacherID primitive.ObjectID) []models.LectureAssignment {
	var out []models.LectureAssignment
	for _, a := range assignments {
		if a.TeacherID == teacherID {
			out = append(out, a)
		}
	}
	return out
}

func merge(a *models.LectureAssignment, u Update) {
	if !u.TeacherID.IsZero() {
		a.TeacherID = u.TeacherID
	}
	if u.Status != nil {
		a.Status = *u.Status
	}
	if u.Notes != nil {
		a.Notes = *u.Notes
	}
}

func newAssignment(u Update) models.LectureAssignment {
	a := models.LectureAssignment{
		LectureNumber: u.LectureNumber,
		TeacherID:     u.TeacherID,
		Status:        models.LectureScheduled,
	}
	if u.Status != nil {
		a.Status = *u.Status
	}
	if u.Notes != nil {
		a.Notes = *u.Notes
	}
	return a
}
