package groups

import (
	"context"
	"encoding/json"
	"net/http"

	"go.mongodb.org/mongo-driver/bson/primitive"

	groupstore "github.com/cohortlab/cohorthub/internal/app/store/groups"
	"github.com/cohortlab/cohorthub/internal/app/system/inputval"
	"github.com/cohortlab/cohorthub/internal/app/system/respond"
	"github.com/cohortlab/cohorthub/internal/app/system/timeouts"
)

// HandleCreateGroup creates a group from the submitted sessions and
// subscriptions. Name, date span, and price come back derived; the
// client never supplies them.
func (h *Handler) HandleCreateGroup(w http.ResponseWriter, r *http.Request) {
	var in createGroupInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if errs := inputval.Validate(in); len(errs) > 0 {
		respond.ValidationFailed(w, errs)
		return
	}

	orgID, err := primitive.ObjectIDFromHex(in.OrganizationID)
	if err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid organization id")
		return
	}
	courseIDs, err := parseObjectIDs(in.CourseIDs)
	if err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid course id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	g, err := h.Store.Create(ctx, groupstore.NewGroup{
		OrganizationID: orgID,
		Description:    inputval.SanitizeText(in.Description),
		CourseIDs:      courseIDs,
		TotalLectures:  in.TotalLectures,
		Sessions:       sessionsToModels(in.Sessions),
		Subscriptions:  subscriptionsToModels(in.Subscriptions),
	})
	if err != nil {
		h.writeStoreError(w, err)
		return
	}
	respond.JSON(w, http.StatusCreated, g)
}

func parseObjectIDs(hexes []string) ([]primitive.ObjectID, error) {
	out := make([]primitive.ObjectID, 0, len(hexes))
	for _, hx := range hexes {
		id, err := primitive.ObjectIDFromHex(hx)
		if err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, nil
}
