package groups

import (
	"context"
	"encoding/json"
	"net/http"

	groupstore "github.com/cohortlab/cohorthub/internal/app/store/groups"
	"github.com/cohortlab/cohorthub/internal/app/system/inputval"
	"github.com/cohortlab/cohorthub/internal/app/system/respond"
	"github.com/cohortlab/cohorthub/internal/app/system/timeouts"
)

// HandleUpdateGroup applies a partial update. When sessions are replaced
// the returned group carries the recomputed name, dates, and price.
func (h *Handler) HandleUpdateGroup(w http.ResponseWriter, r *http.Request) {
	id, ok := h.groupID(w, r)
	if !ok {
		return
	}

	var in updateGroupInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if errs := inputval.Validate(in); len(errs) > 0 {
		respond.ValidationFailed(w, errs)
		return
	}

	upd := groupstore.Update{
		Status:                in.Status,
		TotalLectures:         in.TotalLectures,
		CurrentLectureNumber:  in.CurrentLectureNumber,
		UpcomingLectureNumber: in.UpcomingLectureNumber,
	}
	if in.Description != nil {
		clean := inputval.SanitizeText(*in.Description)
		upd.Description = &clean
	}
	if in.CourseIDs != nil {
		ids, err := parseObjectIDs(*in.CourseIDs)
		if err != nil {
			respond.Error(w, http.StatusBadRequest, "invalid course id")
			return
		}
		upd.CourseIDs = &ids
	}
	if in.Sessions != nil {
		sessions := sessionsToModels(*in.Sessions)
		upd.Sessions = &sessions
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	g, err := h.Store.Update(ctx, id, upd)
	if err != nil {
		h.writeStoreError(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, g)
}

func (h *Handler) HandleDeleteGroup(w http.ResponseWriter, r *http.Request) {
	id, ok := h.groupID(w, r)
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
