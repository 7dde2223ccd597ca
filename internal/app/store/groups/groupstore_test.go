package groupstore_test

import (
	"errors"
	"testing"

	groupstore "github.com/cohortlab/cohorthub/internal/app/store/groups"
	"github.com/cohortlab/cohorthub/internal/app/system/lectures"
	"github.com/cohortlab/cohorthub/internal/app/system/paging"
	"github.com/cohortlab/cohorthub/internal/app/system/sessionrules"
	"github.com/cohortlab/cohorthub/internal/app/system/sessiontime"
	"github.com/cohortlab/cohorthub/internal/domain/models"
	"github.com/cohortlab/cohorthub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

func newStore(t *testing.T) (*groupstore.Store, *testutil.Fixtures) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	return groupstore.New(db, "egp", zap.NewNop()), testutil.NewFixtures(t, db)
}

func strptr(s string) *string { return &s }

func TestStore_Create(t *testing.T) {
	store, fixtures := newStore(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	org := fixtures.CreateOrganization(ctx, "Test School")

	created, err := store.Create(ctx, groupstore.NewGroup{
		OrganizationID: org.ID,
		Description:    "Beginner cohort",
		TotalLectures:  12,
		Sessions: []models.Session{
			testutil.Session(models.Tuesday, 14, 16),
			testutil.Session(models.Sunday, 9, 11),
		},
		Subscriptions: []models.Subscription{
			testutil.MonthlySubscription(800, "egp", 8),
		},
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if created.ID == primitive.NilObjectID {
		t.Error("expected ID to be assigned")
	}
	if created.CreatedAt.IsZero() || created.UpdatedAt.IsZero() {
		t.Error("expected timestamps to be set")
	}
	if created.Status != "active" {
		t.Errorf("status: got %q, want %q", created.Status, "active")
	}
	if created.Version != 1 {
		t.Errorf("version: got %d, want 1", created.Version)
	}

	// Derived name: two sessions, day-sorted.
	wantName := "Sun [ 9:00 AM - 11:00 AM ] ~ Tue [ 2:00 PM - 4:00 PM ]"
	if created.Name != wantName {
		t.Errorf("name: got %q, want %q", created.Name, wantName)
	}
	if created.NameCI == "" {
		t.Error("expected NameCI to be set")
	}

	// Derived dates: envelope of the session times.
	if sessiontime.MinuteOfDay(created.StartDate) != 9*60 {
		t.Errorf("start date: got %s", sessiontime.Clock(created.StartDate))
	}
	if sessiontime.MinuteOfDay(created.EndDate) != 16*60 {
		t.Errorf("end date: got %s", sessiontime.Clock(created.EndDate))
	}

	// Derived price: 800 × ceil(8/4) = 1600 egp.
	if created.Price.Amount != 1600 || created.Price.Currency != "egp" {
		t.Errorf("price: got %+v", created.Price)
	}
}

func TestStore_Create_RejectsInvalidSession(t *testing.T) {
	store, fixtures := newStore(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	org := fixtures.CreateOrganization(ctx, "Test School")

	_, err := store.Create(ctx, groupstore.NewGroup{
		OrganizationID: org.ID,
		Sessions: []models.Session{
			testutil.Session(models.Sunday, 9, 11),
			testutil.Session(models.Sunday, 18, 20), // same-day conflict
		},
	})

	var verr *sessionrules.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if len(verr.Errors) == 0 {
		t.Error("expected at least one violation message")
	}
}

func TestStore_Create_RejectsDuplicateSubscriptionType(t *testing.T) {
	store, fixtures := newStore(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	org := fixtures.CreateOrganization(ctx, "Test School")

	_, err := store.Create(ctx, groupstore.NewGroup{
		OrganizationID: org.ID,
		Subscriptions: []models.Subscription{
			testutil.MonthlySubscription(800, "egp", 8),
			testutil.MonthlySubscription(400, "egp", 4),
		},
	})
	if !errors.Is(err, groupstore.ErrDuplicateSubscriptionType) {
		t.Errorf("expected ErrDuplicateSubscriptionType, got %v", err)
	}
}

func TestStore_GetByID_NotFound(t *testing.T) {
	store, _ := newStore(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	_, err := store.GetByID(ctx, primitive.NewObjectID())
	if !errors.Is(err, groupstore.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestStore_Update_SessionsRefreshDerivedFields(t *testing.T) {
	store, fixtures := newStore(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	org := fixtures.CreateOrganization(ctx, "Test School")
	created, err := store.Create(ctx, groupstore.NewGroup{
		OrganizationID: org.ID,
		Sessions:       []models.Session{testutil.Session(models.Sunday, 9, 11)},
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	next := []models.Session{
		testutil.Session(models.Monday, 8, 10),
		testutil.Session(models.Wednesday, 17, 19),
	}
	updated, err := store.Update(ctx, created.ID, groupstore.Update{Sessions: &next})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	wantName := "Mon [ 8:00 AM - 10:00 AM ] ~ Wed [ 5:00 PM - 7:00 PM ]"
	if updated.Name != wantName {
		t.Errorf("name: got %q, want %q", updated.Name, wantName)
	}
	if sessiontime.MinuteOfDay(updated.StartDate) != 8*60 {
		t.Errorf("start date not refreshed: %s", sessiontime.Clock(updated.StartDate))
	}
	if sessiontime.MinuteOfDay(updated.EndDate) != 19*60 {
		t.Errorf("end date not refreshed: %s", sessiontime.Clock(updated.EndDate))
	}
	if updated.Version != created.Version+1 {
		t.Errorf("version: got %d, want %d", updated.Version, created.Version+1)
	}

	// Idempotent on a repeated identical update.
	again, err := store.Update(ctx, created.ID, groupstore.Update{Sessions: &next})
	if err != nil {
		t.Fatalf("second Update failed: %v", err)
	}
	if again.Name != updated.Name {
		t.Errorf("repeated update changed the name: %q vs %q", again.Name, updated.Name)
	}
}

func TestStore_Update_NotFound(t *testing.T) {
	store, _ := newStore(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	_, err := store.Update(ctx, primitive.NewObjectID(), groupstore.Update{Description: strptr("x")})
	if !errors.Is(err, groupstore.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestStore_AddSession_Validates(t *testing.T) {
	store, fixtures := newStore(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	org := fixtures.CreateOrganization(ctx, "Test School")
	created, err := store.Create(ctx, groupstore.NewGroup{
		OrganizationID: org.ID,
		Sessions:       []models.Session{testutil.Session(models.Sunday, 9, 11)},
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	// Another Sunday session conflicts even though the times are disjoint.
	_, err = store.AddSession(ctx, created.ID, testutil.Session(models.Sunday, 18, 20))
	var verr *sessionrules.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}

	// A Monday session is fine, and the name becomes the two-session form.
	updated, err := store.AddSession(ctx, created.ID, testutil.Session(models.Monday, 18, 20))
	if err != nil {
		t.Fatalf("AddSession failed: %v", err)
	}
	wantName := "Sun [ 9:00 AM - 11:00 AM ] ~ Mon [ 6:00 PM - 8:00 PM ]"
	if updated.Name != wantName {
		t.Errorf("name: got %q, want %q", updated.Name, wantName)
	}
}

func TestStore_UpdateSession_ExcludesSelfFromConflict(t *testing.T) {
	store, fixtures := newStore(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	org := fixtures.CreateOrganization(ctx, "Test School")
	sess := testutil.Session(models.Sunday, 9, 11)
	created, err := store.Create(ctx, groupstore.NewGroup{
		OrganizationID: org.ID,
		Sessions:       []models.Session{sess},
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	// Shift the same session later on the same day: no self-conflict.
	sess.StartTime = sessiontime.At(10, 0)
	sess.EndTime = sessiontime.At(12, 0)
	updated, err := store.UpdateSession(ctx, created.ID, sess)
	if err != nil {
		t.Fatalf("UpdateSession failed: %v", err)
	}
	if updated.Name != "Sun [ 10:00 AM - 12:00 PM ]" {
		t.Errorf("name: got %q", updated.Name)
	}

	// Unknown session id.
	missing := testutil.Session(models.Monday, 9, 11)
	if _, err := store.UpdateSession(ctx, created.ID, missing); !errors.Is(err, groupstore.ErrSessionNotFound) {
		t.Errorf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestStore_RemoveSession_RefreshesName(t *testing.T) {
	store, fixtures := newStore(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	org := fixtures.CreateOrganization(ctx, "Test School")
	s1 := testutil.Session(models.Sunday, 9, 11)
	s2 := testutil.Session(models.Tuesday, 14, 16)
	created, err := store.Create(ctx, groupstore.NewGroup{
		OrganizationID: org.ID,
		Sessions:       []models.Session{s1, s2},
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	updated, err := store.RemoveSession(ctx, created.ID, s2.ID)
	if err != nil {
		t.Fatalf("RemoveSession failed: %v", err)
	}
	if updated.Name != "Sun [ 9:00 AM - 11:00 AM ]" {
		t.Errorf("name: got %q", updated.Name)
	}

	if _, err := store.RemoveSession(ctx, created.ID, "no-such-session"); !errors.Is(err, groupstore.ErrSessionNotFound) {
		t.Errorf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestStore_Subscriptions(t *testing.T) {
	store, fixtures := newStore(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	org := fixtures.CreateOrganization(ctx, "Test School")
	created, err := store.Create(ctx, groupstore.NewGroup{OrganizationID: org.ID})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if created.Price.Amount != 0 || created.Price.Currency != "egp" {
		t.Errorf("empty price: got %+v", created.Price)
	}

	monthly := testutil.MonthlySubscription(800, "egp", 8)
	updated, err := store.AddSubscription(ctx, created.ID, monthly)
	if err != nil {
		t.Fatalf("AddSubscription failed: %v", err)
	}
	if updated.Price.Amount != 1600 {
		t.Errorf("price after monthly: got %v, want 1600", updated.Price.Amount)
	}

	// Second monthly is a constraint violation, not a silent no-op.
	_, err = store.AddSubscription(ctx, created.ID, testutil.MonthlySubscription(400, "egp", 4))
	if !errors.Is(err, groupstore.ErrDuplicateSubscriptionType) {
		t.Errorf("expected ErrDuplicateSubscriptionType, got %v", err)
	}

	// A level subscription stacks on top.
	updated, err = store.AddSubscription(ctx, created.ID, testutil.LevelSubscription(300, "egp"))
	if err != nil {
		t.Fatalf("AddSubscription(level) failed: %v", err)
	}
	if updated.Price.Amount != 1900 {
		t.Errorf("price after level: got %v, want 1900", updated.Price.Amount)
	}

	// Repricing follows an update.
	monthly.Cost.Amount = 1000
	updated, err = store.UpdateSubscription(ctx, created.ID, monthly)
	if err != nil {
		t.Fatalf("UpdateSubscription failed: %v", err)
	}
	if updated.Price.Amount != 2300 {
		t.Errorf("price after update: got %v, want 2300", updated.Price.Amount)
	}

	// And a removal.
	updated, err = store.RemoveSubscription(ctx, created.ID, monthly.ID)
	if err != nil {
		t.Fatalf("RemoveSubscription failed: %v", err)
	}
	if updated.Price.Amount != 300 {
		t.Errorf("price after removal: got %v, want 300", updated.Price.Amount)
	}

	if _, err := store.RemoveSubscription(ctx, created.ID, "no-such-sub"); !errors.Is(err, groupstore.ErrSubscriptionNotFound) {
		t.Errorf("expected ErrSubscriptionNotFound, got %v", err)
	}
}

func TestStore_Assignments(t *testing.T) {
	store, fixtures := newStore(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	org := fixtures.CreateOrganization(ctx, "Test School")
	created, err := store.Create(ctx, groupstore.NewGroup{
		OrganizationID: org.ID,
		TotalLectures:  8,
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	teacher := primitive.NewObjectID()
	updated, err := store.UpdateAssignment(ctx, created.ID, lectures.Update{
		LectureNumber: 1,
		TeacherID:     teacher,
	})
	if err != nil {
		t.Fatalf("UpdateAssignment failed: %v", err)
	}
	if len(updated.TeacherAssignments) != 1 {
		t.Fatalf("expected 1 assignment, got %d", len(updated.TeacherAssignments))
	}
	if updated.TeacherAssignments[0].Status != models.LectureScheduled {
		t.Errorf("status: got %q, want scheduled", updated.TeacherAssignments[0].Status)
	}

	// Out-of-range lecture numbers never reach the tracker.
	_, err = store.UpdateAssignment(ctx, created.ID, lectures.Update{LectureNumber: 9, TeacherID: teacher})
	if !errors.Is(err, groupstore.ErrLectureOutOfRange) {
		t.Errorf("expected ErrLectureOutOfRange, got %v", err)
	}
	_, err = store.UpdateAssignment(ctx, created.ID, lectures.Update{LectureNumber: 0, TeacherID: teacher})
	if !errors.Is(err, groupstore.ErrLectureOutOfRange) {
		t.Errorf("expected ErrLectureOutOfRange for 0, got %v", err)
	}

	// Bulk: one merge, one insert, one skipped (no teacher, no match).
	other := primitive.NewObjectID()
	updated, err = store.BulkUpdateAssignments(ctx, created.ID, []lectures.Update{
		{LectureNumber: 1, Status: strptr(models.LectureCompleted)},
		{LectureNumber: 2, TeacherID: other},
		{LectureNumber: 3},
	})
	if err != nil {
		t.Fatalf("BulkUpdateAssignments failed: %v", err)
	}
	if len(updated.TeacherAssignments) != 2 {
		t.Fatalf("expected 2 assignments, got %d", len(updated.TeacherAssignments))
	}
	if updated.TeacherAssignments[0].Status != models.LectureCompleted {
		t.Errorf("bulk merge: status %q", updated.TeacherAssignments[0].Status)
	}

	// A bad entry rejects the whole batch, leaving the group untouched.
	_, err = store.BulkUpdateAssignments(ctx, created.ID, []lectures.Update{
		{LectureNumber: 4, TeacherID: other},
		{LectureNumber: 99, TeacherID: other},
	})
	if !errors.Is(err, groupstore.ErrLectureOutOfRange) {
		t.Fatalf("expected ErrLectureOutOfRange, got %v", err)
	}
	after, err := store.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if len(after.TeacherAssignments) != 2 {
		t.Errorf("rejected batch must not change the group: got %d assignments", len(after.TeacherAssignments))
	}

	// Filter by teacher.
	byTeacher, err := store.AssignmentsByTeacher(ctx, created.ID, teacher)
	if err != nil {
		t.Fatalf("AssignmentsByTeacher failed: %v", err)
	}
	if len(byTeacher) != 1 || byTeacher[0].LectureNumber != 1 {
		t.Errorf("by teacher: got %+v", byTeacher)
	}
}

func TestStore_Delete(t *testing.T) {
	store, fixtures := newStore(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	org := fixtures.CreateOrganization(ctx, "Test School")
	created, err := store.Create(ctx, groupstore.NewGroup{OrganizationID: org.ID})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if err := store.Delete(ctx, created.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if err := store.Delete(ctx, created.ID); !errors.Is(err, groupstore.ErrNotFound) {
		t.Errorf("expected ErrNotFound on second delete, got %v", err)
	}
}

func TestStore_List(t *testing.T) {
	store, fixtures := newStore(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	orgA := fixtures.CreateOrganization(ctx, "School A")
	orgB := fixtures.CreateOrganization(ctx, "School B")

	mk := func(orgID primitive.ObjectID, day string) models.Group {
		g, err := store.Create(ctx, groupstore.NewGroup{
			OrganizationID: orgID,
			Sessions:       []models.Session{testutil.Session(day, 9, 11)},
		})
		if err != nil {
			t.Fatalf("Create failed: %v", err)
		}
		return g
	}
	mk(orgA.ID, models.Sunday)
	mk(orgA.ID, models.Monday)
	mk(orgB.ID, models.Tuesday)

	all, err := store.List(ctx, groupstore.ListFilter{}, paging.ConfigureKeyset("", ""))
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("len(all) = %d, want 3", len(all))
	}
	for i := 1; i < len(all); i++ {
		if all[i-1].NameCI > all[i].NameCI {
			t.Errorf("list not sorted by folded name: %q before %q", all[i-1].NameCI, all[i].NameCI)
		}
	}

	scoped, err := store.List(ctx, groupstore.ListFilter{OrgID: &orgA.ID}, paging.ConfigureKeyset("", ""))
	if err != nil {
		t.Fatalf("List by org failed: %v", err)
	}
	if len(scoped) != 2 {
		t.Errorf("len(scoped) = %d, want 2", len(scoped))
	}

	// Prefix search on the derived name.
	found, err := store.List(ctx, groupstore.ListFilter{SearchQuery: "Sun"}, paging.ConfigureKeyset("", ""))
	if err != nil {
		t.Fatalf("List by prefix failed: %v", err)
	}
	if len(found) != 1 {
		t.Errorf("len(found) = %d, want 1", len(found))
	}

	count, err := store.CountByOrg(ctx, orgA.ID)
	if err != nil {
		t.Fatalf("CountByOrg failed: %v", err)
	}
	if count != 2 {
		t.Errorf("CountByOrg = %d, want 2", count)
	}
}
