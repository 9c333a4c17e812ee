package usecase

import (
	"context"
	"fmt"
	"strings"

	"fairway-booking/internal/dto/response"
	"fairway-booking/pkg/search"
	"fairway-booking/pkg/utils"

	"go.uber.org/zap"
)

// SearchEngine runs translated queries against the hosted index.
type SearchEngine interface {
	Execute(ctx context.Context, req search.Request) (*search.Result, error)
	Healthy(ctx context.Context) bool
}

type SearchService interface {
	Search(ctx context.Context, q search.Query) (*response.SearchResponse, error)
	Healthy(ctx context.Context) bool
}

type searchService struct {
	engine SearchEngine
	log    *zap.Logger
}

// NewSearchService accepts a nil engine; every query then fails with ErrUnavailable.
func NewSearchService(engine SearchEngine, log *zap.Logger) SearchService {
	return &searchService{
		engine: engine,
		log:    log.With(zap.String("service", "search")),
	}
}

func (s *searchService) Search(ctx context.Context, q search.Query) (*response.SearchResponse, error) {
	if s.engine == nil {
		return nil, fmt.Errorf("%w: search engine not configured", ErrUnavailable)
	}

	f := q.Filters
	if f.MinPrice != nil && f.MaxPrice != nil && *f.MinPrice > *f.MaxPrice {
		return nil, validationError("minPrice must not exceed maxPrice")
	}

	page, limit, offset := search.Paginate(q.Page, q.Limit)
	req := search.Request{
		Text:   strings.TrimSpace(q.Text),
		Filter: search.BuildFilter(f),
		Sort:   search.SortClause(q.Sort),
		Limit:  limit,
		Offset: offset,
		Facets: search.Facets,
	}

	result, err := s.engine.Execute(ctx, req)
	if err != nil {
		s.log.Error("Search query failed",
			zap.Error(err),
			zap.String("q", req.Text),
			zap.String("filter", req.Filter))
		return nil, fmt.Errorf("search: %w", err)
	}

	totalPages := utils.CalculateTotalPages(result.EstimatedTotal, limit)

	hits := result.Hits
	if hits == nil {
		hits = []map[string]any{}
	}
	facets := result.Facets
	if facets == nil {
		facets = map[string]map[string]int64{}
	}

	return &response.SearchResponse{
		Results: hits,
		Pagination: response.SearchPagination{
			Page:       page,
			Limit:      limit,
			Total:      result.EstimatedTotal,
			TotalPages: totalPages,
			HasNext:    page < totalPages,
			HasPrev:    page > 1,
		},
		Facets:         facets,
		ProcessingTime: result.ProcessingTimeMs,
	}, nil
}

func (s *searchService) Healthy(ctx context.Context) bool {
	if s.engine == nil {
		return false
	}
	return s.engine.Healthy(ctx)
}
