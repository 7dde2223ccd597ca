package groups

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/cohortlab/cohorthub/internal/app/system/inputval"
	"github.com/cohortlab/cohorthub/internal/app/system/respond"
	"github.com/cohortlab/cohorthub/internal/app/system/timeouts"
)

func (h *Handler) HandleAddSubscription(w http.ResponseWriter, r *http.Request) {
	id, ok := h.groupID(w, r)
	if !ok {
		return
	}

	var in subscriptionInput
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

	g, err := h.Store.AddSubscription(ctx, id, in.toModel())
	if err != nil {
		h.writeStoreError(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, g)
}

func (h *Handler) HandleUpdateSubscription(w http.ResponseWriter, r *http.Request) {
	id, ok := h.groupID(w, r)
	if !ok {
		return
	}
	subscriptionID := chi.URLParam(r, "subscriptionID")

	var in subscriptionInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if errs := inputval.Validate(in); len(errs) > 0 {
		respond.ValidationFailed(w, errs)
		return
	}

	sub := in.toModel()
	sub.ID = subscriptionID
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	g, err := h.Store.UpdateSubscription(ctx, id, sub)
	if err != nil {
		h.writeStoreError(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, g)
}

func (h *Handler) HandleRemoveSubscription(w http.ResponseWriter, r *http.Request) {
	id, ok := h.groupID(w, r)
	if !ok {
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	g, err := h.Store.RemoveSubscription(ctx, id, chi.URLParam(r, "subscriptionID"))
	if err != nil {
		h.writeStoreError(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, g)
}
