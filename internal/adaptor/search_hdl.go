package adaptor

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"fairway-booking/internal/usecase"
	"fairway-booking/pkg/search"
	"fairway-booking/pkg/utils"

	"go.uber.org/zap"
)

type SearchHandler struct {
	service usecase.SearchService
	log     *zap.Logger
}

func NewSearchHandler(service usecase.SearchService, log *zap.Logger) *SearchHandler {
	return &SearchHandler{
		service: service,
		log:     log.With(zap.String("handler", "search")),
	}
}

// SearchGet handles GET /api/search with filters in the query string.
func (h *SearchHandler) SearchGet(w http.ResponseWriter, r *http.Request) {
	h.respond(w, r, queryFromValues(r.URL.Query()))
}

// SearchPost handles POST /api/search with a JSON body.
func (h *SearchHandler) SearchPost(w http.ResponseWriter, r *http.Request) {
	var q search.Query
	if err := json.NewDecoder(r.Body).Decode(&q); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}
	h.respond(w, r, q)
}

// Health handles HEAD /api/search.
func (h *SearchHandler) Health(w http.ResponseWriter, r *http.Request) {
	if !h.service.Healthy(r.Context()) {
		w.WriteHeader(http.StatusServiceUnavailable)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *SearchHandler) respond(w http.ResponseWriter, r *http.Request, q search.Query) {
	resp, err := h.service.Search(r.Context(), q)
	if err != nil {
		handleServiceError(w, h.log, err, "search")
		return
	}
	utils.WriteJSON(w, http.StatusOK, resp)
}

func queryFromValues(v url.Values) search.Query {
	return search.Query{
		Text: v.Get("q"),
		Filters: search.Filters{
			Type:      v.Get("type"),
			City:      v.Get("city"),
			Region:    v.Get("region"),
			Country:   v.Get("country"),
			MinRating: utils.ParseFloat(v.Get("rating")),
			MinPrice:  utils.ParseFloat(v.Get("minPrice")),
			MaxPrice:  utils.ParseFloat(v.Get("maxPrice")),
			Duration:  optionalInt(v.Get("duration")),
			Tags:      splitList(v.Get("tags")),
			Amenities: splitList(v.Get("amenities")),
		},
		Sort:  v.Get("sort"),
		Page:  utils.ParseInt(v.Get("page"), 1),
		Limit: utils.ParseInt(v.Get("limit"), search.DefaultLimit),
	}
}

func optionalInt(value string) *int {
	n, err := strconv.Atoi(value)
	if err != nil {
		return nil
	}
	return &n
}

// splitList reads a comma separated list, dropping blanks.
func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
