package handlers

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers all spectra routes
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/spectra", func(r chi.Router) {
		r.Post("/compute", h.HandleCompute)
		r.Get("/stats", h.HandleStats)
	})
}
