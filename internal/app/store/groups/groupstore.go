// internal/app/store/groups/groupstore.go
package groupstore

import (
	"context"
	"errors"
	"time"

	"github.com/cohortlab/cohorthub/internal/app/system/datespan"
	"github.com/cohortlab/cohorthub/internal/app/system/groupname"
	"github.com/cohortlab/cohorthub/internal/app/system/lectures"
	"github.com/cohortlab/cohorthub/internal/app/system/paging"
	"github.com/cohortlab/cohorthub/internal/app/system/pricing"
	"github.com/cohortlab/cohorthub/internal/app/system/sessionrules"
	"github.com/cohortlab/cohorthub/internal/app/system/status"
	"github.com/cohortlab/cohorthub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/text"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// Store mutates Group aggregates. Every mutation loads the group, applies
// the change, recomputes the derived fields (name, start/end dates, price),
// and persists the whole document behind an optimistic version check, so
// no reader ever sees derived fields computed from a different session or
// subscription set than the one stored.
type Store struct {
	c               *mongo.Collection
	defaultCurrency string
	log             *zap.Logger
}

var (
	ErrNotFound                  = errors.New("group not found")
	ErrSessionNotFound           = errors.New("session not found in group")
	ErrDuplicateSubscriptionType = errors.New("group already has a subscription of this type")
	ErrSubscriptionNotFound      = errors.New("subscription not found in group")
	ErrLectureOutOfRange         = errors.New("lecture number is outside the group's lecture range")
	ErrConcurrentUpdate          = errors.New("group was modified concurrently")
)

// mutateRetries bounds the optimistic-concurrency retry loop. Contention
// on a single group is rare (one admin edits a cohort at a time), so a
// small bound is enough.
const mutateRetries = 3

func New(db *mongo.Database, defaultCurrency string, logger *zap.Logger) *Store {
	return &Store{
		c:               db.Collection("groups"),
		defaultCurrency: defaultCurrency,
		log:             logger,
	}
}

// NewGroup carries the caller-supplied fields for Create. Derived fields
// (name, dates, price) are computed here, never accepted from the caller.
type NewGroup struct {
	OrganizationID primitive.ObjectID
	Description    string
	CourseIDs      []primitive.ObjectID
	TotalLectures  int
	Sessions       []models.Session
	Subscriptions  []models.Subscription
}

// Create inserts a new group with its derived fields populated. Sessions
// are validated against each other (day whitelist, ordering, duration,
// one slot per day); a duplicate subscription type is rejected.
func (s *Store) Create(ctx context.Context, in NewGroup) (models.Group, error) {
	for i, sess := range in.Sessions {
		if res := sessionrules.Validate(sess, in.Sessions[:i], ""); !res.Valid {
			return models.Group{}, &sessionrules.ValidationError{Errors: res.Errors}
		}
	}

	seen := make(map[string]bool, len(in.Subscriptions))
	for _, sub := range in.Subscriptions {
		if seen[sub.Type] {
			s.log.Warn("duplicate subscription type on create rejected",
				zap.String("type", sub.Type))
			return models.Group{}, ErrDuplicateSubscriptionType
		}
		seen[sub.Type] = true
	}

	now := time.Now().UTC()
	g := models.Group{
		ID:                 primitive.NewObjectID(),
		OrganizationID:     in.OrganizationID,
		Description:        in.Description,
		CourseIDs:          in.CourseIDs,
		TotalLectures:      in.TotalLectures,
		Sessions:           withSessionIDs(in.Sessions),
		Subscriptions:      withSubscriptionIDs(in.Subscriptions),
		TeacherAssignments: []models.LectureAssignment{},
		Status:             status.Active,
		Version:            1,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	s.refreshDerived(&g)

	if _, err := s.c.InsertOne(ctx, g); err != nil {
		return models.Group{}, err
	}
	return g, nil
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Group, error) {
	var g models.Group
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&g); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.Group{}, ErrNotFound
		}
		return models.Group{}, err
	}
	return g, nil
}

// Update describes a partial group update. Nil fields are left untouched;
// when Sessions is supplied the whole session set is replaced (after
// validation) and the derived fields follow in the same operation.
type Update struct {
	Description           *string
	Status                *string
	CourseIDs             *[]primitive.ObjectID
	TotalLectures         *int
	CurrentLectureNumber  *int
	UpcomingLectureNumber *int
	Sessions              *[]models.Session
}

func (s *Store) Update(ctx context.Context, id primitive.ObjectID, upd Update) (models.Group, error) {
	return s.mutate(ctx, id, func(g *models.Group) error {
		if upd.Sessions != nil {
			next := *upd.Sessions
			for i, sess := range next {
				if res := sessionrules.Validate(sess, next[:i], sess.ID); !res.Valid {
					return &sessionrules.ValidationError{Errors: res.Errors}
				}
			}
			g.Sessions = withSessionIDs(next)
		}
		if upd.Description != nil {
			g.Description = *upd.Description
		}
		if upd.Status != nil {
			g.Status = *upd.Status
		}
		if upd.CourseIDs != nil {
			g.CourseIDs = *upd.CourseIDs
		}
		if upd.TotalLectures != nil {
			g.TotalLectures = *upd.TotalLectures
		}
		if upd.CurrentLectureNumber != nil {
			g.CurrentLectureNumber = *upd.CurrentLectureNumber
		}
		if upd.UpcomingLectureNumber != nil {
			g.UpcomingLectureNumber = *upd.UpcomingLectureNumber
		}
		return nil
	})
}

// Delete removes a group. Returns ErrNotFound when no document matched.
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

/* ---------------------------- sessions ---------------------------- */

// AddSession validates a new weekly session against the group's existing
// set and appends it. Validation failures come back as a
// *sessionrules.ValidationError carrying every violation.
func (s *Store) AddSession(ctx context.Context, id primitive.ObjectID, sess models.Session) (models.Group, error) {
	return s.mutate(ctx, id, func(g *models.Group) error {
		if res := sessionrules.Validate(sess, g.Sessions, ""); !res.Valid {
			return &sessionrules.ValidationError{Errors: res.Errors}
		}
		if sess.ID == "" {
			sess.ID = uuid.NewString()
		}
		g.Sessions = append(g.Sessions, sess)
		return nil
	})
}

// UpdateSession replaces the session with sess.ID. The session being
// edited is excluded from the day-conflict check so it cannot collide
// with itself.
func (s *Store) UpdateSession(ctx context.Context, id primitive.ObjectID, sess models.Session) (models.Group, error) {
	return s.mutate(ctx, id, func(g *models.Group) error {
		idx := -1
		for i, existing := range g.Sessions {
			if existing.ID == sess.ID {
				idx = i
				break
			}
		}
		if idx < 0 {
			return ErrSessionNotFound
		}
		if res := sessionrules.Validate(sess, g.Sessions, sess.ID); !res.Valid {
			return &sessionrules.ValidationError{Errors: res.Errors}
		}
		g.Sessions[idx] = sess
		return nil
	})
}

func (s *Store) RemoveSession(ctx context.Context, id primitive.ObjectID, sessionID string) (models.Group, error) {
	return s.mutate(ctx, id, func(g *models.Group) error {
		for i, existing := range g.Sessions {
			if existing.ID == sessionID {
				g.Sessions = append(g.Sessions[:i], g.Sessions[i+1:]...)
				return nil
			}
		}
		return ErrSessionNotFound
	})
}

/* -------------------------- subscriptions -------------------------- */

// AddSubscription attaches a subscription and reprices the group. A group
// holds at most one subscription per type; duplicates are rejected with
// an explicit error and a warning log.
func (s *Store) AddSubscription(ctx context.Context, id primitive.ObjectID, sub models.Subscription) (models.Group, error) {
	return s.mutate(ctx, id, func(g *models.Group) error {
		for _, existing := range g.Subscriptions {
			if existing.Type == sub.Type {
				s.log.Warn("duplicate subscription type rejected",
					zap.String("group_id", id.Hex()),
					zap.String("type", sub.Type))
				return ErrDuplicateSubscriptionType
			}
		}
		if sub.ID == "" {
			sub.ID = uuid.NewString()
		}
		g.Subscriptions = append(g.Subscriptions, sub)
		return nil
	})
}

// UpdateSubscription replaces the subscription with sub.ID. Changing its
// type to one already held by another subscription is rejected.
func (s *Store) UpdateSubscription(ctx context.Context, id primitive.ObjectID, sub models.Subscription) (models.Group, error) {
	return s.mutate(ctx, id, func(g *models.Group) error {
		idx := -1
		for i, existing := range g.Subscriptions {
			if existing.ID == sub.ID {
				idx = i
				break
			}
		}
		if idx < 0 {
			return ErrSubscriptionNotFound
		}
		for i, existing := range g.Subscriptions {
			if i != idx && existing.Type == sub.Type {
				return ErrDuplicateSubscriptionType
			}
		}
		g.Subscriptions[idx] = sub
		return nil
	})
}

func (s *Store) RemoveSubscription(ctx context.Context, id primitive.ObjectID, subscriptionID string) (models.Group, error) {
	return s.mutate(ctx, id, func(g *models.Group) error {
		for i, existing := range g.Subscriptions {
			if existing.ID == subscriptionID {
				g.Subscriptions = append(g.Subscriptions[:i], g.Subscriptions[i+1:]...)
				return nil
			}
		}
		return ErrSubscriptionNotFound
	})
}

/* --------------------------- assignments --------------------------- */

// UpdateAssignment merges a single per-lecture teacher assignment. The
// lecture number must fall inside [1, TotalLectures]; the range invariant
// is enforced here at the aggregate boundary, not in the tracker.
func (s *Store) UpdateAssignment(ctx context.Context, id primitive.ObjectID, u lectures.Update) (models.Group, error) {
	return s.mutate(ctx, id, func(g *models.Group) error {
		if err := checkLectureRange(g, u); err != nil {
			return err
		}
		g.TeacherAssignments = lectures.Apply(g.TeacherAssignments, u)
		return nil
	})
}

// BulkUpdateAssignments merges a batch of assignment updates. The whole
// batch is range-checked up front so an invalid entry leaves the group
// untouched.
func (s *Store) BulkUpdateAssignments(ctx context.Context, id primitive.ObjectID, updates []lectures.Update) (models.Group, error) {
	return s.mutate(ctx, id, func(g *models.Group) error {
		for _, u := range updates {
			if err := checkLectureRange(g, u); err != nil {
				return err
			}
		}
		g.TeacherAssignments = lectures.ApplyBulk(g.TeacherAssignments, updates)
		return nil
	})
}

// AssignmentsByTeacher returns the group's assignment records held by one
// teacher, in stored order.
func (s *Store) AssignmentsByTeacher(ctx context.Context, id, teacherID primitive.ObjectID) ([]models.LectureAssignment, error) {
	g, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return lectures.ByTeacher(g.TeacherAssignments, teacherID), nil
}

func checkLectureRange(g *models.Group, u lectures.Update) error {
	if u.LectureNumber < 1 || (g.TotalLectures > 0 && u.LectureNumber > g.TotalLectures) {
		return ErrLectureOutOfRange
	}
	return nil
}

/* ------------------------------ list ------------------------------ */

// ListFilter narrows the group list.
type ListFilter struct {
	OrgID       *primitive.ObjectID // nil means all organizations
	Status      string              // "" means any status
	SearchQuery string              // prefix search on name_ci
}

// List returns groups sorted by folded name with keyset pagination.
func (s *Store) List(ctx context.Context, filter ListFilter, cfg paging.KeysetConfig) ([]models.Group, error) {
	clauses := []bson.M{}
	if filter.OrgID != nil {
		clauses = append(clauses, bson.M{"organization_id": *filter.OrgID})
	}
	if filter.Status != "" {
		clauses = append(clauses, bson.M{"status": filter.Status})
	}
	if filter.SearchQuery != "" {
		q := text.Fold(filter.SearchQuery)
		clauses = append(clauses, bson.M{"name_ci": bson.M{"$gte": q, "$lt": q + "￿"}})
	}
	if ks := cfg.KeysetWindow("name_ci"); ks != nil {
		clauses = append(clauses, ks)
	}

	query := bson.M{}
	if len(clauses) > 0 {
		query = bson.M{"$and": clauses}
	}

	find := options.Find()
	cfg.ApplyToFind(find, "name_ci")

	cur, err := s.c.Find(ctx, query, find)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var groups []models.Group
	if err := cur.All(ctx, &groups); err != nil {
		return nil, err
	}
	return groups, nil
}

// CountByOrg returns the number of groups in an organization.
func (s *Store) CountByOrg(ctx context.Context, orgID primitive.ObjectID) (int64, error) {
	return s.c.CountDocuments(ctx, bson.M{"organization_id": orgID})
}

/* ----------------------------- helpers ----------------------------- */

// mutate runs one load-apply-derive-replace cycle behind an optimistic
// version check, retrying when another writer got there first. The apply
// function sees the freshest copy on each attempt.
func (s *Store) mutate(ctx context.Context, id primitive.ObjectID, apply func(*models.Group) error) (models.Group, error) {
	for attempt := 1; attempt <= mutateRetries; attempt++ {
		var g models.Group
		if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&g); err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) {
				return models.Group{}, ErrNotFound
			}
			return models.Group{}, err
		}

		prev := g.Version
		if err := apply(&g); err != nil {
			return models.Group{}, err
		}
		s.refreshDerived(&g)
		g.Version = prev + 1
		g.UpdatedAt = time.Now().UTC()

		res, err := s.c.ReplaceOne(ctx, bson.M{"_id": id, "version": prev}, g)
		if err != nil {
			return models.Group{}, err
		}
		if res.MatchedCount == 1 {
			return g, nil
		}
		s.log.Warn("group changed underneath mutation; retrying",
			zap.String("group_id", id.Hex()),
			zap.Int("attempt", attempt))
	}
	return models.Group{}, ErrConcurrentUpdate
}

// refreshDerived recomputes every derived field from the current source
// fields. It runs on every mutation; all derivations are pure and
// idempotent, so recomputing unchanged fields is harmless.
func (s *Store) refreshDerived(g *models.Group) {
	g.Name = groupname.Generate(g.Sessions)
	g.NameCI = text.Fold(g.Name)
	g.StartDate = datespan.Start(g.Sessions)
	g.EndDate = datespan.End(g.Sessions)
	g.Price = pricing.Total(g.Subscriptions, s.defaultCurrency)
}

func withSessionIDs(sessions []models.Session) []models.Session {
	out := make([]models.Session, len(sessions))
	copy(out, sessions)
	for i := range out {
		if out[i].ID == "" {
			out[i].ID = uuid.NewString()
		}
	}
	return out
}

func withSubscriptionIDs(subs []models.Subscription) []models.Subscription {
	out := make([]models.Subscription, len(subs))
	copy(out, subs)
	for i := range out {
		if out[i].ID == "" {
			out[i].ID = uuid.NewString()
		}
	}
	return out
}
