package usecase

import (
	"context"
	"errors"
	"testing"

	"fairway-booking/pkg/search"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestSearchService_ColomboPriceLow(t *testing.T) {
	engine := &mockEngine{}
	svc := NewSearchService(engine, zap.NewNop())

	rating := 4.0
	want := search.Request{
		Text:   "beach",
		Filter: `city = "Colombo" AND rating >= 4`,
		Sort:   []string{"priceFrom:asc"},
		Limit:  12,
		Offset: 0,
		Facets: search.Facets,
	}
	engine.On("Execute", mock.Anything, want).Return(&search.Result{
		Hits:             []map[string]any{{"id": "hotel-cinnamon-grand", "city": "Colombo"}},
		EstimatedTotal:   30,
		Facets:           map[string]map[string]int64{"city": {"Colombo": 30}},
		ProcessingTimeMs: 3,
	}, nil).Once()

	resp, err := svc.Search(context.Background(), search.Query{
		Text:    "  beach ",
		Filters: search.Filters{City: "Colombo", MinRating: &rating},
		Sort:    "price-low",
	})
	require.NoError(t, err)
	engine.AssertExpectations(t)

	assert.Len(t, resp.Results, 1)
	assert.Equal(t, int64(3), resp.ProcessingTime)
	assert.Equal(t, int64(30), resp.Facets["city"]["Colombo"])
	assert.Equal(t, 1, resp.Pagination.Page)
	assert.Equal(t, 12, resp.Pagination.Limit)
	assert.Equal(t, int64(30), resp.Pagination.Total)
	assert.Equal(t, 3, resp.Pagination.TotalPages)
	assert.True(t, resp.Pagination.HasNext)
	assert.False(t, resp.Pagination.HasPrev)
}

func TestSearchService_LastPage(t *testing.T) {
	engine := &mockEngine{}
	svc := NewSearchService(engine, zap.NewNop())

	engine.On("Execute", mock.Anything, mock.MatchedBy(func(r search.Request) bool {
		return r.Offset == 20 && r.Limit == 10 && r.Sort == nil && r.Filter == ""
	})).Return(&search.Result{EstimatedTotal: 25}, nil).Once()

	resp, err := svc.Search(context.Background(), search.Query{Page: 3, Limit: 10, Sort: "relevance"})
	require.NoError(t, err)

	assert.NotNil(t, resp.Results)
	assert.NotNil(t, resp.Facets)
	assert.False(t, resp.Pagination.HasNext)
	assert.True(t, resp.Pagination.HasPrev)
	assert.Equal(t, 3, resp.Pagination.TotalPages)
}

func TestSearchService_Errors(t *testing.T) {
	t.Run("engine not configured", func(t *testing.T) {
		svc := NewSearchService(nil, zap.NewNop())
		_, err := svc.Search(context.Background(), search.Query{Text: "kandy"})
		assert.ErrorIs(t, err, ErrUnavailable)
		assert.False(t, svc.Healthy(context.Background()))
	})

	t.Run("inverted price range", func(t *testing.T) {
		lo, hi := 300.0, 100.0
		svc := NewSearchService(&mockEngine{}, zap.NewNop())
		_, err := svc.Search(context.Background(), search.Query{Filters: search.Filters{MinPrice: &lo, MaxPrice: &hi}})
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("engine failure", func(t *testing.T) {
		engine := &mockEngine{}
		engine.On("Execute", mock.Anything, mock.Anything).Return(nil, errors.New("connection refused")).Once()

		_, err := NewSearchService(engine, zap.NewNop()).Search(context.Background(), search.Query{})
		require.Error(t, err)
		assert.NotErrorIs(t, err, ErrValidation)
	})
}

func TestSearchService_Healthy(t *testing.T) {
	engine := &mockEngine{}
	engine.On("Healthy", mock.Anything).Return(true).Once()

	assert.True(t, NewSearchService(engine, zap.NewNop()).Healthy(context.Background()))
	engine.AssertExpectations(t)
}
