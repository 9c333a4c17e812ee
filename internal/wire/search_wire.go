package wire

import (
	"fairway-booking/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireSearch(r chi.Router, searchHandler *adaptor.SearchHandler) {
	r.Get("/api/search", searchHandler.SearchGet)
	r.Post("/api/search", searchHandler.SearchPost)
	r.Head("/api/search", searchHandler.Health)
}
