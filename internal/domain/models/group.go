// internal/domain/models/group.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Group is the aggregate root for a scheduled cohort inside an organization.
//
// Name, StartDate, EndDate, and Price are derived fields: they are
// recomputed by the store in the same operation as any mutation of the
// fields that determine them (Sessions for the name and dates,
// Subscriptions for the price). A group whose derived
// fields are stale relative to its source fields is a correctness bug,
// never an acceptable transient state.
//
// Version backs the optimistic concurrency check in the group store so
// that a mutation and its derived-field refresh commit as one atomic unit.
type Group struct {
	ID             primitive.ObjectID `bson:"_id" json:"id"`
	OrganizationID primitive.ObjectID `bson:"organization_id" json:"organization_id"`

	Name        string `bson:"name" json:"name"`       // derived from Sessions
	NameCI      string `bson:"name_ci" json:"name_ci"` // folded for search/sort
	Description string `bson:"description" json:"description"`

	CourseIDs []primitive.ObjectID `bson:"course_ids,omitempty" json:"course_ids,omitempty"`

	Sessions  []Session `bson:"sessions" json:"sessions"`
	StartDate time.Time `bson:"start_date" json:"start_date"` // derived: earliest session start
	EndDate   time.Time `bson:"end_date" json:"end_date"`     // derived: latest session end

	TotalLectures         int `bson:"total_lectures" json:"total_lectures"`
	CurrentLectureNumber  int `bson:"current_lecture_number" json:"current_lecture_number"`
	UpcomingLectureNumber int `bson:"upcoming_lecture_number" json:"upcoming_lecture_number"`

	TeacherAssignments []LectureAssignment `bson:"teacher_assignments" json:"teacher_assignments"`

	Subscriptions []Subscription `bson:"subscriptions" json:"subscriptions"` // at most one per type
	Price         Money          `bson:"price" json:"price"`                 // derived from Subscriptions

	Status string `bson:"status" json:"status"`

	Version   int64     `bson:"version" json:"-"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
