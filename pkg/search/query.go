// Package search translates catalog search input into Meilisearch filter
// and sort expressions and relays queries to the hosted index.
package search

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	DefaultLimit = 12
	MaxLimit     = 100
)

// Sort keys accepted from clients.
const (
	SortRelevance = "relevance"
	SortPriceLow  = "price-low"
	SortPriceHigh = "price-high"
	SortRating    = "rating"
	SortNewest    = "newest"
	SortOldest    = "oldest"
)

var sortClauses = map[string]string{
	SortPriceLow:  "priceFrom:asc",
	SortPriceHigh: "priceFrom:desc",
	SortRating:    "rating:desc",
	SortNewest:    "createdAt:desc",
	SortOldest:    "createdAt:asc",
}

// Facets requested on every query.
var Facets = []string{"type", "city", "region", "tags", "amenities", "rating"}

type Filters struct {
	Type      string   `json:"type,omitempty"`
	City      string   `json:"city,omitempty"`
	Region    string   `json:"region,omitempty"`
	Country   string   `json:"country,omitempty"`
	MinRating *float64 `json:"rating,omitempty"`
	MinPrice  *float64 `json:"minPrice,omitempty"`
	MaxPrice  *float64 `json:"maxPrice,omitempty"`
	Duration  *int     `json:"duration,omitempty"`
	Tags      []string `json:"tags,omitempty"`
	Amenities []string `json:"amenities,omitempty"`
}

type Query struct {
	Text    string  `json:"q"`
	Filters Filters `json:"filters"`
	Sort    string  `json:"sort,omitempty"`
	Page    int     `json:"page,omitempty"`
	Limit   int     `json:"limit,omitempty"`
}

// BuildFilter joins every present filter into one conjunctive expression.
func BuildFilter(f Filters) string {
	var parts []string

	eq := func(field, value string) {
		if v := strings.TrimSpace(value); v != "" {
			parts = append(parts, fmt.Sprintf("%s = %s", field, quote(v)))
		}
	}

	eq("type", f.Type)
	eq("city", f.City)
	eq("region", f.Region)
	eq("country", f.Country)

	if f.MinRating != nil {
		parts = append(parts, "rating >= "+number(*f.MinRating))
	}
	if f.MinPrice != nil {
		parts = append(parts, "priceFrom >= "+number(*f.MinPrice))
	}
	if f.MaxPrice != nil {
		parts = append(parts, "priceFrom <= "+number(*f.MaxPrice))
	}
	if f.Duration != nil {
		parts = append(parts, "duration = "+strconv.Itoa(*f.Duration))
	}

	if tags := nonEmpty(f.Tags); len(tags) > 0 {
		quoted := make([]string, len(tags))
		for i, t := range tags {
			quoted[i] = quote(t)
		}
		parts = append(parts, fmt.Sprintf("tags IN [%s]", strings.Join(quoted, ", ")))
	}

	for _, a := range nonEmpty(f.Amenities) {
		parts = append(parts, "amenities = "+quote(a))
	}

	return strings.Join(parts, " AND ")
}

// SortClause maps a client sort key to the engine's sort syntax. Relevance
// and unknown keys yield nil so the engine ranks by relevance.
func SortClause(key string) []string {
	clause, ok := sortClauses[strings.ToLower(strings.TrimSpace(key))]
	if !ok {
		return nil
	}
	return []string{clause}
}

// Paginate normalises page/limit and returns the engine offset.
func Paginate(page, limit int) (int, int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return page, limit, (page - 1) * limit
}

var filterEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`)

func quote(s string) string {
	return `"` + filterEscaper.Replace(s) + `"`
}

func number(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func nonEmpty(in []string) []string {
	var out []string
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
