package groups

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/cohortlab/cohorthub/internal/app/system/inputval"
	"github.com/cohortlab/cohorthub/internal/app/system/lectures"
	"github.com/cohortlab/cohorthub/internal/app/system/respond"
	"github.com/cohortlab/cohorthub/internal/app/system/timeouts"
	"github.com/cohortlab/cohorthub/internal/domain/models"
)

// HandleUpdateAssignment assigns a teacher to one lecture, or adjusts the
// status or notes of an existing assignment.
func (h *Handler) HandleUpdateAssignment(w http.ResponseWriter, r *http.Request) {
	id, ok := h.groupID(w, r)
	if !ok {
		return
	}
	lectureNumber, err := strconv.Atoi(chi.URLParam(r, "lectureNumber"))
	if err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid lecture number")
		return
	}

	var in assignmentInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if errs := inputval.Validate(in); len(errs) > 0 {
		respond.ValidationFailed(w, errs)
		return
	}
	teacherID, err := primitive.ObjectIDFromHex(in.TeacherID)
	if err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid teacher id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	g, err := h.Store.UpdateAssignment(ctx, id,
		assignmentUpdate(lectureNumber, teacherID, in.Status, in.Notes))
	if err != nil {
		h.writeStoreError(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, g)
}

// HandleBulkUpdateAssignments applies a batch of assignment updates in one
// atomic group mutation. Every lecture number is range-checked before any
// entry is applied.
func (h *Handler) HandleBulkUpdateAssignments(w http.ResponseWriter, r *http.Request) {
	id, ok := h.groupID(w, r)
	if !ok {
		return
	}

	var in bulkAssignmentInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if errs := inputval.Validate(in); len(errs) > 0 {
		respond.ValidationFailed(w, errs)
		return
	}

	updates := make([]lectures.Update, 0, len(in.Updates))
	for _, entry := range in.Updates {
		var teacherID primitive.ObjectID
		if entry.TeacherID != "" {
			tid, err := primitive.ObjectIDFromHex(entry.TeacherID)
			if err != nil {
				respond.Error(w, http.StatusBadRequest, "invalid teacher id")
				return
			}
			teacherID = tid
		}
		updates = append(updates,
			assignmentUpdate(entry.LectureNumber, teacherID, entry.Status, entry.Notes))
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	g, err := h.Store.BulkUpdateAssignments(ctx, id, updates)
	if err != nil {
		h.writeStoreError(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, g)
}

// ServeAssignments returns a group's assignments, optionally filtered to
// one teacher via the teacher query param.
func (h *Handler) ServeAssignments(w http.ResponseWriter, r *http.Request) {
	id, ok := h.groupID(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	if raw := r.URL.Query().Get("teacher"); raw != "" {
		teacherID, err := primitive.ObjectIDFromHex(raw)
		if err != nil {
			respond.Error(w, http.StatusBadRequest, "invalid teacher id")
			return
		}
		assignments, err := h.Store.AssignmentsByTeacher(ctx, id, teacherID)
		if err != nil {
			h.writeStoreError(w, err)
			return
		}
		writeAssignments(w, assignments)
		return
	}

	g, err := h.Store.GetByID(ctx, id)
	if err != nil {
		h.writeStoreError(w, err)
		return
	}
	writeAssignments(w, g.TeacherAssignments)
}

func writeAssignments(w http.ResponseWriter, assignments []models.LectureAssignment) {
	if assignments == nil {
		assignments = []models.LectureAssignment{}
	}
	respond.JSON(w, http.StatusOK, map[string]any{"assignments": assignments})
}
