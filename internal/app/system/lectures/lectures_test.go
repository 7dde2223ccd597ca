package lectures_test

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/cohortlab/cohorthub/internal/app/system/lectures"
	"github.com/cohortlab/cohorthub/internal/domain/models"
)

func strptr(s string) *string { return &s }

func TestApply_InsertDefaultsToScheduled(t *testing.T) {
	teacher := primitive.NewObjectID()
	out := lectures.Apply(nil, lectures.Update{LectureNumber: 3, TeacherID: teacher})

	if len(out) != 1 {
		t.Fatalf("expected 1 assignment, got %d", len(out))
	}
	a := out[0]
	if a.LectureNumber != 3 {
		t.Errorf("lecture number: got %d, want 3", a.LectureNumber)
	}
	if a.TeacherID != teacher {
		t.Errorf("teacher: got %v, want %v", a.TeacherID, teacher)
	}
	if a.Status != models.LectureScheduled {
		t.Errorf("status: got %q, want %q", a.Status, models.LectureScheduled)
	}
}

func TestApply_MergeKeepsUnsuppliedFields(t *testing.T) {
	teacher := primitive.NewObjectID()
	existing := []models.LectureAssignment{
		{LectureNumber: 1, TeacherID: teacher, Status: models.LectureCurrent, Notes: "bring handouts"},
	}

	// Update with a new teacher but no status/notes: both must survive.
	replacement := primitive.NewObjectID()
	out := lectures.Apply(existing, lectures.Update{LectureNumber: 1, TeacherID: replacement})

	if len(out) != 1 {
		t.Fatalf("expected 1 assignment, got %d", len(out))
	}
	a := out[0]
	if a.TeacherID != replacement {
		t.Errorf("teacher not replaced")
	}
	if a.Status != models.LectureCurrent {
		t.Errorf("status overwritten: got %q", a.Status)
	}
	if a.Notes != "bring handouts" {
		t.Errorf("notes overwritten: got %q", a.Notes)
	}
}

func TestApply_MergeOverwritesSuppliedFields(t *testing.T) {
	teacher := primitive.NewObjectID()
	existing := []models.LectureAssignment{
		{LectureNumber: 2, TeacherID: teacher, Status: models.LectureUpcoming, Notes: "old"},
	}

	out := lectures.Apply(existing, lectures.Update{
		LectureNumber: 2,
		TeacherID:     teacher,
		Status:        strptr(models.LectureDismissed),
		Notes:         strptr("cancelled for holiday"),
	})

	a := out[0]
	if a.Status != models.LectureDismissed {
		t.Errorf("status: got %q, want %q", a.Status, models.LectureDismissed)
	}
	if a.Notes != "cancelled for holiday" {
		t.Errorf("notes: got %q", a.Notes)
	}
}

func TestApply_DoesNotMutateInput(t *testing.T) {
	teacher := primitive.NewObjectID()
	existing := []models.LectureAssignment{
		{LectureNumber: 1, TeacherID: teacher, Status: models.LectureScheduled},
	}
	lectures.Apply(existing, lectures.Update{
		LectureNumber: 1,
		TeacherID:     teacher,
		Status:        strptr(models.LectureCompleted),
	})
	if existing[0].Status != models.LectureScheduled {
		t.Error("input slice was mutated")
	}
}

func TestApplyBulk_MergeAndInsert(t *testing.T) {
	t1 := primitive.NewObjectID()
	t2 := primitive.NewObjectID()
	existing := []models.LectureAssignment{
		{LectureNumber: 1, TeacherID: t1, Status: models.LectureCompleted},
	}

	out := lectures.ApplyBulk(existing, []lectures.Update{
		{LectureNumber: 1, Status: strptr(models.LectureDismissed)}, // merge, no teacher supplied
		{LectureNumber: 2, TeacherID: t2},                          // insert
	})

	if len(out) != 2 {
		t.Fatalf("expected 2 assignments, got %d", len(out))
	}
	if out[0].Status != models.LectureDismissed {
		t.Errorf("merge failed: got %q", out[0].Status)
	}
	if out[0].TeacherID != t1 {
		t.Errorf("merge must keep the existing teacher when none supplied")
	}
	if out[1].LectureNumber != 2 || out[1].TeacherID != t2 || out[1].Status != models.LectureScheduled {
		t.Errorf("insert wrong: %+v", out[1])
	}
}

func TestApplyBulk_SkipsInsertWithoutTeacher(t *testing.T) {
	out := lectures.ApplyBulk(nil, []lectures.Update{
		{LectureNumber: 5, Status: strptr(models.LectureUpcoming)}, // no match, no teacher
	})
	if len(out) != 0 {
		t.Errorf("expected the update to be skipped, got %d records", len(out))
	}
}

func TestByTeacher(t *testing.T) {
	t1 := primitive.NewObjectID()
	t2 := primitive.NewObjectID()
	assignments := []models.LectureAssignment{
		{LectureNumber: 1, TeacherID: t1},
		{LectureNumber: 2, TeacherID: t2},
		{LectureNumber: 3, TeacherID: t1},
	}

	got := lectures.ByTeacher(assignments, t1)
	if len(got) != 2 {
		t.Fatalf("expected 2 assignments, got %d", len(got))
	}
	if got[0].LectureNumber != 1 || got[1].LectureNumber != 3 {
		t.Errorf("stored order not preserved: %+v", got)
	}

	if got := lectures.ByTeacher(assignments, primitive.NewObjectID()); len(got) != 0 {
		t.Errorf("unknown teacher should match nothing, got %d", len(got))
	}
}
