package wire

import (
	"fairway-booking/internal/adaptor"
	"fairway-booking/internal/data/entity"

	"github.com/go-chi/chi/v5"
)

func wireCatalog(r chi.Router, catalogHandler *adaptor.CatalogHandler) {
	r.Get("/api/hotels", catalogHandler.List(entity.DocHotel))
	r.Get("/api/hotels/{slug}", catalogHandler.Detail(entity.DocHotel))
	r.Get("/api/tours", catalogHandler.List(entity.DocTour))
	r.Get("/api/tours/{slug}", catalogHandler.Detail(entity.DocTour))
	r.Get("/api/posts/{slug}", catalogHandler.Detail(entity.DocPost))
}
