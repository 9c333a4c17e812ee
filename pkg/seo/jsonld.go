package seo

import (
	"fmt"
	"strings"
	"time"
)

const schemaContext = "https://schema.org"

type Address struct {
	Locality string
	Region   string
	Country  string
}

type Geo struct {
	Lat float64
	Lng float64
}

type HotelData struct {
	Name          string
	Description   string
	URL           string
	Images        []string
	Address       Address
	Geo           *Geo
	StarRating    float64
	PricePerNight float64
	Currency      string
	Amenities     []string
}

type TourData struct {
	Name           string
	Description    string
	URL            string
	Images         []string
	DurationDays   int
	PricePerPerson float64
	Currency       string
	Destinations   []string
}

type ArticleData struct {
	Headline    string
	Description string
	URL         string
	Image       string
	Author      string
	Published   time.Time
	Modified    time.Time
}

func HotelJSONLD(h HotelData) map[string]any {
	out := map[string]any{
		"@context":    schemaContext,
		"@type":       "Hotel",
		"name":        h.Name,
		"description": h.Description,
		"url":         h.URL,
		"address":     postalAddress(h.Address),
	}
	if len(h.Images) > 0 {
		out["image"] = h.Images
	}
	if h.Geo != nil {
		out["geo"] = map[string]any{
			"@type":     "GeoCoordinates",
			"latitude":  h.Geo.Lat,
			"longitude": h.Geo.Lng,
		}
	}
	if h.StarRating > 0 {
		out["starRating"] = map[string]any{"@type": "Rating", "ratingValue": h.StarRating}
	}
	if h.PricePerNight > 0 {
		out["priceRange"] = fmt.Sprintf("From %s %.2f per night", strings.ToUpper(h.Currency), h.PricePerNight)
	}
	if len(h.Amenities) > 0 {
		features := make([]map[string]any, 0, len(h.Amenities))
		for _, a := range h.Amenities {
			features = append(features, map[string]any{
				"@type": "LocationFeatureSpecification",
				"name":  a,
				"value": true,
			})
		}
		out["amenityFeature"] = features
	}
	return out
}

func TourJSONLD(t TourData) map[string]any {
	out := map[string]any{
		"@context":    schemaContext,
		"@type":       "TouristTrip",
		"name":        t.Name,
		"description": t.Description,
		"url":         t.URL,
	}
	if len(t.Images) > 0 {
		out["image"] = t.Images
	}
	if t.DurationDays > 0 {
		out["duration"] = fmt.Sprintf("P%dD", t.DurationDays)
	}
	if t.PricePerPerson > 0 {
		out["offers"] = map[string]any{
			"@type":         "Offer",
			"price":         fmt.Sprintf("%.2f", t.PricePerPerson),
			"priceCurrency": strings.ToUpper(t.Currency),
			"availability":  "https://schema.org/InStock",
			"url":           t.URL,
		}
	}
	if len(t.Destinations) > 0 {
		places := make([]map[string]any, 0, len(t.Destinations))
		for _, d := range t.Destinations {
			places = append(places, map[string]any{"@type": "Place", "name": d})
		}
		out["itinerary"] = map[string]any{"@type": "ItemList", "itemListElement": places}
	}
	return out
}

func ArticleJSONLD(a ArticleData, publisher string) map[string]any {
	out := map[string]any{
		"@context":    schemaContext,
		"@type":       "BlogPosting",
		"headline":    a.Headline,
		"description": a.Description,
		"url":         a.URL,
		"publisher":   map[string]any{"@type": "Organization", "name": publisher},
	}
	if a.Image != "" {
		out["image"] = a.Image
	}
	if a.Author != "" {
		out["author"] = map[string]any{"@type": "Person", "name": a.Author}
	}
	if !a.Published.IsZero() {
		out["datePublished"] = a.Published.Format(time.RFC3339)
	}
	if !a.Modified.IsZero() {
		out["dateModified"] = a.Modified.Format(time.RFC3339)
	}
	return out
}

func postalAddress(a Address) map[string]any {
	out := map[string]any{"@type": "PostalAddress"}
	if a.Locality != "" {
		out["addressLocality"] = a.Locality
	}
	if a.Region != "" {
		out["addressRegion"] = a.Region
	}
	if a.Country != "" {
		out["addressCountry"] = a.Country
	}
	return out
}
