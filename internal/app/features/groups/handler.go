// Package groups exposes the JSON API for group scheduling, pricing,
// and lecture assignment.
package groups

import (
	"errors"
	"net/http"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	groupstore "github.com/cohortlab/cohorthub/internal/app/store/groups"
	"github.com/cohortlab/cohorthub/internal/app/system/respond"
	"github.com/cohortlab/cohorthub/internal/app/system/sessionrules"
)

type Handler struct {
	DB    *mongo.Database
	Store *groupstore.Store
	Log   *zap.Logger
}

func NewHandler(db *mongo.Database, defaultCurrency string, log *zap.Logger) *Handler {
	return &Handler{
		DB:    db,
		Store: groupstore.New(db, defaultCurrency, log),
		Log:   log,
	}
}

// writeStoreError translates store errors into API responses.
func (h *Handler) writeStoreError(w http.ResponseWriter, err error) {
	var verr *sessionrules.ValidationError
	switch {
	case errors.As(err, &verr):
		respond.ValidationFailed(w, verr.Errors)
	case errors.Is(err, groupstore.ErrNotFound):
		respond.Error(w, http.StatusNotFound, "group not found")
	case errors.Is(err, groupstore.ErrSessionNotFound):
		respond.Error(w, http.StatusNotFound, "session not found")
	case errors.Is(err, groupstore.ErrSubscriptionNotFound):
		respond.Error(w, http.StatusNotFound, "subscription not found")
	case errors.Is(err, groupstore.ErrDuplicateSubscriptionType):
		respond.Error(w, http.StatusConflict, "a subscription of that type already exists")
	case errors.Is(err, groupstore.ErrLectureOutOfRange):
		respond.Error(w, http.StatusUnprocessableEntity, "lecture number is out of range")
	case errors.Is(err, groupstore.ErrConcurrentUpdate):
		respond.Error(w, http.StatusConflict, "the group was modified concurrently; retry the request")
	default:
		h.Log.Error("group store operation failed", zap.Error(err))
		respond.Error(w, http.StatusInternalServerError, "a database error occurred")
	}
}
