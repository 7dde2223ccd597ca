package groups

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/cohortlab/cohorthub/internal/app/system/inputval"
	"github.com/cohortlab/cohorthub/internal/app/system/lectures"
	"github.com/cohortlab/cohorthub/internal/app/system/sessiontime"
	"github.com/cohortlab/cohorthub/internal/domain/models"
)

type sessionInput struct {
	Day       string    `json:"day" validate:"required,oneof=sunday monday tuesday wednesday thursday"`
	StartTime time.Time `json:"start_time" validate:"required"`
	EndTime   time.Time `json:"end_time" validate:"required"`
}

// toModel keeps only the time of day from the submitted timestamps.
func (in sessionInput) toModel() models.Session {
	return models.Session{
		Day:       in.Day,
		StartTime: sessiontime.At(in.StartTime.Hour(), in.StartTime.Minute()),
		EndTime:   sessiontime.At(in.EndTime.Hour(), in.EndTime.Minute()),
	}
}

type subscriptionInput struct {
	Type             string  `json:"type" validate:"required,oneof=monthly level"`
	Amount           float64 `json:"amount" validate:"gte=0"`
	Currency         string  `json:"currency"`
	LecturesIncluded int     `json:"lectures_included" validate:"gte=0"`
}

func (in subscriptionInput) toModel() models.Subscription {
	return models.Subscription{
		Type:             in.Type,
		Cost:             models.Money{Amount: in.Amount, Currency: in.Currency},
		LecturesIncluded: in.LecturesIncluded,
	}
}

type createGroupInput struct {
	OrganizationID string              `json:"organization_id" validate:"required"`
	Description    string              `json:"description" validate:"max=2000"`
	CourseIDs      []string            `json:"course_ids"`
	TotalLectures  int                 `json:"total_lectures" validate:"gte=0"`
	Sessions       []sessionInput      `json:"sessions" validate:"dive"`
	Subscriptions  []subscriptionInput `json:"subscriptions" validate:"dive"`
}

type updateGroupInput struct {
	Description           *string         `json:"description" validate:"omitempty,max=2000"`
	CourseIDs             *[]string       `json:"course_ids"`
	TotalLectures         *int            `json:"total_lectures" validate:"omitempty,gte=0"`
	CurrentLectureNumber  *int            `json:"current_lecture_number" validate:"omitempty,gte=0"`
	UpcomingLectureNumber *int            `json:"upcoming_lecture_number" validate:"omitempty,gte=0"`
	Status                *string         `json:"status" validate:"omitempty,oneof=active archived"`
	Sessions              *[]sessionInput `json:"sessions" validate:"omitempty,dive"`
}

type assignmentInput struct {
	TeacherID string  `json:"teacher_id" validate:"required"`
	Status    *string `json:"status" validate:"omitempty,oneof=scheduled completed current next upcoming dismissed"`
	Notes     *string `json:"notes" validate:"omitempty,max=2000"`
}

type bulkAssignmentEntry struct {
	LectureNumber int     `json:"lecture_number" validate:"required,gte=1"`
	TeacherID     string  `json:"teacher_id"`
	Status        *string `json:"status" validate:"omitempty,oneof=scheduled completed current next upcoming dismissed"`
	Notes         *string `json:"notes" validate:"omitempty,max=2000"`
}

type bulkAssignmentInput struct {
	Updates []bulkAssignmentEntry `json:"updates" validate:"required,min=1,dive"`
}

func sessionsToModels(ins []sessionInput) []models.Session {
	out := make([]models.Session, 0, len(ins))
	for _, in := range ins {
		out = append(out, in.toModel())
	}
	return out
}

func subscriptionsToModels(ins []subscriptionInput) []models.Subscription {
	out := make([]models.Subscription, 0, len(ins))
	for _, in := range ins {
		out = append(out, in.toModel())
	}
	return out
}

func assignmentUpdate(lectureNumber int, teacherID primitive.ObjectID, status, notes *string) lectures.Update {
	u := lectures.Update{
		LectureNumber: lectureNumber,
		TeacherID:     teacherID,
		Status:        status,
	}
	if notes != nil {
		clean := inputval.SanitizeText(*notes)
		u.Notes = &clean
	}
	return u
}
