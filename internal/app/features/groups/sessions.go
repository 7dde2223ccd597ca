package groups

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/cohortlab/cohorthub/internal/app/system/inputval"
	"github.com/cohortlab/cohorthub/internal/app/system/respond"
	"github.com/cohortlab/cohorthub/internal/app/system/sessiontime"
	"github.com/cohortlab/cohorthub/internal/app/system/timeouts"
)

func (h *Handler) HandleAddSession(w http.ResponseWriter, r *http.Request) {
	id, ok := h.groupID(w, r)
	if !ok {
		return
	}

	var in sessionInput
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

	g, err := h.Store.AddSession(ctx, id, in.toModel())
	if err != nil {
		h.writeStoreError(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, g)
}

func (h *Handler) HandleUpdateSession(w http.ResponseWriter, r *http.Request) {
	id, ok := h.groupID(w, r)
	if !ok {
		return
	}
	sessionID := chi.URLParam(r, "sessionID")

	var in sessionInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if errs := inputval.Validate(in); len(errs) > 0 {
		respond.ValidationFailed(w, errs)
		return
	}

	sess := in.toModel()
	sess.ID = sessionID
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	g, err := h.Store.UpdateSession(ctx, id, sess)
	if err != nil {
		h.writeStoreError(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, g)
}

func (h *Handler) HandleRemoveSession(w http.ResponseWriter, r *http.Request) {
	id, ok := h.groupID(w, r)
	if !ok {
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	g, err := h.Store.RemoveSession(ctx, id, chi.URLParam(r, "sessionID"))
	if err != nil {
		h.writeStoreError(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, g)
}

// ServeTimeOptions returns the selectable session start and end times for
// the scheduling form. An optional step query param sets the interval in
// minutes; the default is half an hour.
func (h *Handler) ServeTimeOptions(w http.ResponseWriter, r *http.Request) {
	step := 30 * time.Minute
	if raw := r.URL.Query().Get("step"); raw != "" {
		mins, err := strconv.Atoi(raw)
		if err != nil || mins < 1 {
			respond.Error(w, http.StatusBadRequest, "step must be a positive number of minutes")
			return
		}
		step = time.Duration(mins) * time.Minute
	}
	respond.JSON(w, http.StatusOK, map[string]any{
		"options": sessiontime.Options(step),
	})
}
