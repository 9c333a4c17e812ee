package usecase

import (
	"context"
	"fmt"
	"strings"

	"fairway-booking/internal/data/content"
	"fairway-booking/internal/data/entity"
	"fairway-booking/internal/dto/response"
	"fairway-booking/pkg/pricing"
	"fairway-booking/pkg/seo"
	"fairway-booking/pkg/utils"

	"go.uber.org/zap"
)

const (
	defaultCatalogLimit = 24
	maxCatalogLimit     = 100
)

type CatalogService interface {
	List(ctx context.Context, docType entity.DocType, locale string, limit int, currency string) (*response.CatalogListResponse, error)
	Get(ctx context.Context, docType entity.DocType, slug, locale, currency string) (*response.CatalogItemResponse, error)
}

type catalogService struct {
	store content.CatalogStore
	site  seo.Site
	log   *zap.Logger
}

func NewCatalogService(store content.CatalogStore, config *utils.Config, log *zap.Logger) CatalogService {
	return &catalogService{
		store: store,
		site: seo.Site{
			Name:    config.App.Name,
			BaseURL: config.App.BaseURL,
			Locale:  config.App.Locale,
		},
		log: log.With(zap.String("service", "catalog")),
	}
}

var listTitles = map[entity.DocType]string{
	entity.DocHotel: "Hotels in Sri Lanka",
	entity.DocTour:  "Sri Lanka Tours",
	entity.DocPost:  "Travel Journal",
}

func (s *catalogService) List(ctx context.Context, docType entity.DocType, locale string, limit int, currency string) (*response.CatalogListResponse, error) {
	if err := checkCurrency(currency); err != nil {
		return nil, err
	}
	if limit < 1 {
		limit = defaultCatalogLimit
	}
	limit = min(limit, maxCatalogLimit)
	locale = normalizeLocale(locale)

	items, err := s.store.ListByType(ctx, docType, locale, limit)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", docType, err)
	}

	out := make([]response.CatalogItemResponse, 0, len(items))
	for _, item := range items {
		resp, err := s.present(item, currency)
		if err != nil {
			return nil, err
		}
		out = append(out, *resp)
	}

	meta := s.site.Build(seo.Page{
		Title:       listTitles[docType],
		Description: fmt.Sprintf("Browse %d %ss across Sri Lanka.", len(out), docType),
		Path:        localePath(locale, sectionPath(docType)),
		Locale:      locale,
	}, nil)

	return &response.CatalogListResponse{Items: out, SEO: meta}, nil
}

func (s *catalogService) Get(ctx context.Context, docType entity.DocType, slug, locale, currency string) (*response.CatalogItemResponse, error) {
	if err := checkCurrency(currency); err != nil {
		return nil, err
	}
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return nil, validationError("slug is required")
	}
	locale = normalizeLocale(locale)

	item, err := s.store.FindBySlug(ctx, docType, slug, locale)
	if err != nil {
		return nil, fmt.Errorf("find %s %s: %w", docType, slug, err)
	}
	if item == nil {
		return nil, notFound(string(docType))
	}

	resp, err := s.present(item, currency)
	if err != nil {
		return nil, err
	}

	meta := s.metadata(resp.CatalogItem, locale)
	resp.SEO = &meta
	return resp, nil
}

// present copies the item and converts its prices when a currency is requested.
func (s *catalogService) present(src *entity.CatalogItem, currency string) (*response.CatalogItemResponse, error) {
	item := *src

	from := strings.ToUpper(item.Currency)
	if from == "" {
		from = pricing.DefaultCurrency
	}
	to := strings.ToUpper(strings.TrimSpace(currency))
	if to == "" {
		to = from
	}

	if to != from {
		var err error
		if item.PricePerNight, err = pricing.Convert(item.PricePerNight, from, to); err != nil {
			return nil, s.conversionError(src, err)
		}
		if item.PricePerPerson, err = pricing.Convert(item.PricePerPerson, from, to); err != nil {
			return nil, s.conversionError(src, err)
		}
	}
	item.Currency = to

	resp := &response.CatalogItemResponse{CatalogItem: &item}
	switch item.Type {
	case entity.DocHotel:
		if item.PricePerNight > 0 {
			resp.DisplayPrice = pricing.Format(item.PricePerNight, to)
		}
	case entity.DocTour:
		if item.PricePerPerson > 0 {
			resp.DisplayPrice = pricing.Format(item.PricePerPerson, to)
		}
	}
	return resp, nil
}

func (s *catalogService) conversionError(item *entity.CatalogItem, err error) error {
	s.log.Error("Catalog item has an unsupported currency",
		zap.Error(err), zap.String("item_id", item.ID), zap.String("currency", item.Currency))
	return fmt.Errorf("convert prices for %s: %w", item.ID, err)
}

func (s *catalogService) metadata(item *entity.CatalogItem, locale string) seo.Metadata {
	path := localePath(locale, sectionPath(item.Type)+"/"+item.Slug)
	url := s.site.URL(path)

	description := item.Summary
	if description == "" {
		description = item.Description
	}
	var image string
	if len(item.Images) > 0 {
		image = item.Images[0]
	}

	page := seo.Page{
		Title:       item.Name,
		Description: description,
		Path:        path,
		Image:       image,
		Locale:      locale,
	}

	var jsonLD map[string]any
	switch item.Type {
	case entity.DocHotel:
		data := seo.HotelData{
			Name:          item.Name,
			Description:   seo.Truncate(description, seo.MaxDescription),
			URL:           url,
			Images:        item.Images,
			Address:       seo.Address{Locality: item.City, Region: item.Region, Country: item.Country},
			StarRating:    item.Rating,
			PricePerNight: item.PricePerNight,
			Currency:      item.Currency,
			Amenities:     item.Amenities,
		}
		if item.Location != nil {
			data.Geo = &seo.Geo{Lat: item.Location.Lat, Lng: item.Location.Lng}
		}
		jsonLD = seo.HotelJSONLD(data)
	case entity.DocTour:
		jsonLD = seo.TourJSONLD(seo.TourData{
			Name:           item.Name,
			Description:    seo.Truncate(description, seo.MaxDescription),
			URL:            url,
			Images:         item.Images,
			DurationDays:   item.DurationDays,
			PricePerPerson: item.PricePerPerson,
			Currency:       item.Currency,
			Destinations:   item.Destinations,
		})
	case entity.DocPost:
		page.Type = "article"
		jsonLD = seo.ArticleJSONLD(seo.ArticleData{
			Headline:    item.Name,
			Description: seo.Truncate(description, seo.MaxDescription),
			URL:         url,
			Image:       image,
			Author:      item.Author,
			Published:   item.PublishedAt,
			Modified:    item.UpdatedAt,
		}, s.site.Name)
	}

	return s.site.Build(page, jsonLD)
}

func checkCurrency(currency string) error {
	if c := strings.TrimSpace(currency); c != "" && !pricing.Supported(c) {
		return validationError("unsupported currency %s (supported: %s)", c, strings.Join(pricing.Currencies(), ", "))
	}
	return nil
}

func normalizeLocale(locale string) string {
	locale = strings.ToLower(strings.TrimSpace(locale))
	if locale == "" {
		return content.DefaultLocale
	}
	return locale
}

func sectionPath(docType entity.DocType) string {
	switch docType {
	case entity.DocHotel:
		return "/hotels"
	case entity.DocTour:
		return "/tours"
	case entity.DocPost:
		return "/blog"
	default:
		return "/" + string(docType) + "s"
	}
}

// localePath prefixes non-default locales, e.g. /de/hotels/galle-fort.
func localePath(locale, path string) string {
	if locale == "" || locale == content.DefaultLocale {
		return path
	}
	return "/" + locale + path
}
