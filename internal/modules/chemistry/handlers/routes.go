package handlers

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers all chemistry routes
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/chemistry", func(r chi.Router) {
		r.Post("/molecular", h.HandleMolecular)
		r.Post("/quadratic", h.HandleQuadratic)
	})
}
