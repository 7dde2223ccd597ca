// Package organizations exposes the JSON API for managing tenant schools.
package organizations

import (
	"errors"
	"net/http"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	groupstore "github.com/cohortlab/cohorthub/internal/app/store/groups"
	organizationstore "github.com/cohortlab/cohorthub/internal/app/store/organizations"
	"github.com/cohortlab/cohorthub/internal/app/system/respond"
)

type Handler struct {
	Store  *organizationstore.Store
	Groups *groupstore.Store
	Log    *zap.Logger
}

func NewHandler(db *mongo.Database, defaultCurrency string, log *zap.Logger) *Handler {
	return &Handler{
		Store:  organizationstore.New(db),
		Groups: groupstore.New(db, defaultCurrency, log),
		Log:    log,
	}
}

func (h *Handler) writeStoreError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, organizationstore.ErrNotFound):
		respond.Error(w, http.StatusNotFound, "organization not found")
	case errors.Is(err, organizationstore.ErrDuplicateOrganization):
		respond.Error(w, http.StatusConflict, "an organization with this name already exists")
	default:
		h.Log.Error("organization store operation failed", zap.Error(err))
		respond.Error(w, http.StatusInternalServerError, "a database error occurred")
	}
}
