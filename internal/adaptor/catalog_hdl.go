package adaptor

import (
	"net/http"

	"fairway-booking/internal/data/entity"
	"fairway-booking/internal/usecase"
	"fairway-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type CatalogHandler struct {
	service usecase.CatalogService
	log     *zap.Logger
}

func NewCatalogHandler(service usecase.CatalogService, log *zap.Logger) *CatalogHandler {
	return &CatalogHandler{
		service: service,
		log:     log.With(zap.String("handler", "catalog")),
	}
}

// List returns a handler for GET /api/hotels and GET /api/tours.
func (h *CatalogHandler) List(docType entity.DocType) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()

		resp, err := h.service.List(r.Context(), docType,
			query.Get("locale"), utils.ParseInt(query.Get("limit"), 0), query.Get("currency"))
		if err != nil {
			handleServiceError(w, h.log, err, "list "+string(docType)+"s")
			return
		}

		utils.ResponseSuccess(w, "success", resp)
	}
}

// Detail returns a handler for GET /api/{hotels,tours,posts}/{slug}.
func (h *CatalogHandler) Detail(docType entity.DocType) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()

		resp, err := h.service.Get(r.Context(), docType,
			chi.URLParam(r, "slug"), query.Get("locale"), query.Get("currency"))
		if err != nil {
			handleServiceError(w, h.log, err, "get "+string(docType))
			return
		}

		utils.ResponseSuccess(w, "success", resp)
	}
}
