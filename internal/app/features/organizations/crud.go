package organizations

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/cohortlab/cohorthub/internal/app/system/inputval"
	"github.com/cohortlab/cohorthub/internal/app/system/respond"
	"github.com/cohortlab/cohorthub/internal/app/system/timeouts"
	"github.com/cohortlab/cohorthub/internal/domain/models"
)

type organizationInput struct {
	Name     string `json:"name" validate:"required,max=200"`
	City     string `json:"city" validate:"max=200"`
	TimeZone string `json:"time_zone" validate:"max=100"`
	Status   string `json:"status" validate:"omitempty,oneof=active archived"`
}

func (h *Handler) HandleCreateOrganization(w http.ResponseWriter, r *http.Request) {
	var in organizationInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if errs := inputval.Validate(in); len(errs) > 0 {
		respond.ValidationFailed(w, errs)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	org, err := h.Store.Create(ctx, models.Organization{
		Name:     inputval.SanitizeText(in.Name),
		City:     inputval.SanitizeText(in.City),
		TimeZone: in.TimeZone,
		Status:   in.Status,
	})
	if err != nil {
		h.writeStoreError(w, err)
		return
	}
	respond.JSON(w, http.StatusCreated, org)
}

func (h *Handler) ServeOrganizationList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	orgs, err := h.Store.List(ctx, r.URL.Query().Get("q"))
	if err != nil {
		h.Log.Error("organization list failed", zap.Error(err))
		respond.Error(w, http.StatusInternalServerError, "a database error occurred")
		return
	}
	if orgs == nil {
		orgs = []models.Organization{}
	}
	respond.JSON(w, http.StatusOK, map[string]any{"organizations": orgs})
}

func (h *Handler) ServeOrganization(w http.ResponseWriter, r *http.Request) {
	id, ok := h.orgID(w, r)
	if !ok {
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	org, err := h.Store.GetByID(ctx, id)
	if err != nil {
		h.writeStoreError(w, err)
		return
	}
	groupCount, err := h.Groups.CountByOrg(ctx, id)
	if err != nil {
		h.Log.Error("group count failed", zap.Error(err))
		respond.Error(w, http.StatusInternalServerError, "a database error occurred")
		return
	}
	respond.JSON(w, http.StatusOK, map[string]any{
		"organization": org,
		"group_count":  groupCount,
	})
}

func (h *Handler) HandleUpdateOrganization(w http.ResponseWriter, r *http.Request) {
	id, ok := h.orgID(w, r)
	if !ok {
		return
	}

	var in organizationInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	// Name is optional here; empty fields are left unchanged.
	if in.Status != "" && in.Status != "active" && in.Status != "archived" {
		respond.ValidationFailed(w, []string{"status must be one of: active archived"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	err := h.Store.Update(ctx, id, models.Organization{
		Name:     inputval.SanitizeText(in.Name),
		City:     inputval.SanitizeText(in.City),
		TimeZone: in.TimeZone,
		Status:   in.Status,
	})
	if err != nil {
		h.writeStoreError(w, err)
		return
	}

	org, err := h.Store.GetByID(ctx, id)
	if err != nil {
		h.writeStoreError(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, org)
}

func (h *Handler) HandleDeleteOrganization(w http.ResponseWriter, r *http.Request) {
	id, ok := h.orgID(w, r)
	if !ok {
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if err := h.Store.Delete(ctx, id); err != nil {
		h.writeStoreError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) orgID(w http.ResponseWriter, r *http.Request) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "orgID"))
	if err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid organization id")
		return primitive.NilObjectID, false
	}
	return id, true
}
