package handlers

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers all trotter routes
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/trotter", func(r chi.Router) {
		r.Post("/decompose", h.HandleDecompose)
	})
}
