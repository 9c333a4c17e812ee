package response

import (
	"fairway-booking/internal/data/entity"
	"fairway-booking/pkg/seo"
)

// CatalogItemResponse is a content document with prices in the requested
// currency and, on detail pages, its SEO metadata.
type CatalogItemResponse struct {
	*entity.CatalogItem
	DisplayPrice string        `json:"displayPrice,omitempty"`
	SEO          *seo.Metadata `json:"seo,omitempty"`
}

type CatalogListResponse struct {
	Items []CatalogItemResponse `json:"items"`
	SEO   seo.Metadata          `json:"seo"`
}
