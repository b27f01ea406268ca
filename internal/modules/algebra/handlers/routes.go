package handlers

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers all algebra routes
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/algebra", func(r chi.Router) {
		r.Post("/add", h.HandleAdd)
		r.Post("/multiply", h.HandleMultiply)
		r.Post("/scale", h.HandleScale)
		r.Post("/conjugate", h.HandleConjugate)
		r.Post("/transform", h.HandleTransform)
	})
}
