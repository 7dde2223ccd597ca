package testutil

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/cohortlab/cohorthub/internal/app/system/sessiontime"
	"github.com/cohortlab/cohorthub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/text"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// WithChiURLParam adds a chi URL parameter to the request context.
// Use this in handler tests that need to access chi.URLParam values.
func WithChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// Fixtures provides helper methods for creating test data.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

// NewFixtures creates a new Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

// CreateOrganization creates a test organization (school) with the given name.
func (f *Fixtures) CreateOrganization(ctx context.Context, name string) models.Organization {
	f.t.Helper()

	now := time.Now().UTC()
	org := models.Organization{
		ID:        primitive.NewObjectID(),
		Name:      name,
		NameCI:    text.Fold(name),
		City:      "Test City",
		TimeZone:  "Africa/Cairo",
		Status:    "active",
		CreatedAt: now,
		UpdatedAt: now,
	}

	if _, err := f.db.Collection("organizations").InsertOne(ctx, org); err != nil {
		f.t.Fatalf("failed to create test organization: %v", err)
	}
	return org
}

// Session builds a weekly session on the given day with whole-hour bounds.
func Session(day string, startHour, endHour int) models.Session {
	return models.Session{
		ID:        uuid.NewString(),
		Day:       day,
		StartTime: sessiontime.At(startHour, 0),
		EndTime:   sessiontime.At(endHour, 0),
	}
}

// MonthlySubscription builds a monthly subscription fixture.
func MonthlySubscription(amount float64, currency string, lectures int) models.Subscription {
	return models.Subscription{
		ID:               uuid.NewString(),
		Type:             models.SubscriptionMonthly,
		Cost:             models.Money{Amount: amount, Currency: currency},
		LecturesIncluded: lectures,
	}
}

// LevelSubscription builds a flat level subscription fixture.
func LevelSubscription(amount float64, currency string) models.Subscription {
	return models.Subscription{
		ID:   uuid.NewString(),
		Type: models.SubscriptionLevel,
		Cost: models.Money{Amount: amount, Currency: currency},
	}
}
