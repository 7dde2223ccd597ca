package organizations

import "github.com/go-chi/chi/v5"

func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Post("/", h.HandleCreateOrganization)
	r.Get("/", h.ServeOrganizationList)

	r.Route("/{orgID}", func(r chi.Router) {
		r.Get("/", h.ServeOrganization)
		r.Patch("/", h.HandleUpdateOrganization)
		r.Delete("/", h.HandleDeleteOrganization)
	})

	return r
}
