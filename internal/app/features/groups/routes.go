package groups

import "github.com/go-chi/chi/v5"

func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Get("/time-options", h.ServeTimeOptions)

	r.Post("/", h.HandleCreateGroup)
	r.Get("/", h.ServeGroupList)

	r.Route("/{groupID}", func(r chi.Router) {
		r.Get("/", h.ServeGroup)
		r.Patch("/", h.HandleUpdateGroup)
		r.Delete("/", h.HandleDeleteGroup)

		r.Post("/sessions", h.HandleAddSession)
		r.Put("/sessions/{sessionID}", h.HandleUpdateSession)
		r.Delete("/sessions/{sessionID}", h.HandleRemoveSession)

		r.Post("/subscriptions", h.HandleAddSubscription)
		r.Put("/subscriptions/{subscriptionID}", h.HandleUpdateSubscription)
		r.Delete("/subscriptions/{subscriptionID}", h.HandleRemoveSubscription)

		r.Put("/assignments/{lectureNumber}", h.HandleUpdateAssignment)
		r.Post("/assignments/bulk", h.HandleBulkUpdateAssignments)
		r.Get("/assignments", h.ServeAssignments)
	})

	return r
}
