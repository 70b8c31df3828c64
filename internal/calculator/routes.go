package calculator

import "github.com/go-chi/chi/v5"

// RegisterRoutes mounts the BREAD endpoints under /calculations.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/calculations", func(r chi.Router) {
		r.Get("/", h.Browse)
		r.Post("/", h.Add)
		r.Get("/{id}", h.Read)
		r.Put("/{id}", h.Edit)
		r.Delete("/{id}", h.Delete)
	})
}
