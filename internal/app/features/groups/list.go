package groups

import (
	"context"
	"net/http"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	groupstore "github.com/cohortlab/cohorthub/internal/app/store/groups"
	"github.com/cohortlab/cohorthub/internal/app/system/paging"
	"github.com/cohortlab/cohorthub/internal/app/system/respond"
	"github.com/cohortlab/cohorthub/internal/app/system/timeouts"
	"github.com/cohortlab/cohorthub/internal/domain/models"
)

type groupListResponse struct {
	Groups     []models.Group `json:"groups"`
	HasPrev    bool           `json:"has_prev"`
	HasNext    bool           `json:"has_next"`
	PrevCursor string         `json:"prev_cursor,omitempty"`
	NextCursor string         `json:"next_cursor,omitempty"`
}

// ServeGroupList lists groups sorted by name with keyset pagination.
// Supported query params: org, status, q, before, after.
func (h *Handler) ServeGroupList(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	filter := groupstore.ListFilter{
		Status:      q.Get("status"),
		SearchQuery: q.Get("q"),
	}
	if raw := q.Get("org"); raw != "" {
		orgID, err := primitive.ObjectIDFromHex(raw)
		if err != nil {
			respond.Error(w, http.StatusBadRequest, "invalid organization id")
			return
		}
		filter.OrgID = &orgID
	}

	before, after := q.Get("before"), q.Get("after")
	cfg := paging.ConfigureKeyset(before, after)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	rows, err := h.Store.List(ctx, filter, cfg)
	if err != nil {
		h.Log.Error("group list failed", zap.Error(err))
		respond.Error(w, http.StatusInternalServerError, "a database error occurred")
		return
	}

	res := paging.TrimPage(&rows, before, after)
	if cfg.Direction == paging.Backward {
		paging.Reverse(rows)
	}
	prev, next := paging.BuildCursors(rows,
		func(g models.Group) string { return g.NameCI },
		func(g models.Group) primitive.ObjectID { return g.ID })

	out := groupListResponse{
		Groups:  rows,
		HasPrev: res.HasPrev,
		HasNext: res.HasNext,
	}
	if res.HasPrev {
		out.PrevCursor = prev
	}
	if res.HasNext {
		out.NextCursor = next
	}
	if out.Groups == nil {
		out.Groups = []models.Group{}
	}
	respond.JSON(w, http.StatusOK, out)
}
