package entity

import "time"

// DocType is the content store document kind.
type DocType string

const (
	DocHotel    DocType = "hotel"
	DocTour     DocType = "tour"
	DocPost     DocType = "post"
	DocLocation DocType = "location"
)

type GeoPoint struct {
	Lat float64 `bson:"lat" json:"lat"`
	Lng float64 `bson:"lng" json:"lng"`
}

// CatalogItem is a read-only content store document. Hotel and tour
// documents carry prices; posts and locations only use the shared fields.
type CatalogItem struct {
	ID             string    `bson:"_id" json:"id"`
	Type           DocType   `bson:"type" json:"type"`
	Name           string    `bson:"name" json:"name"`
	Slug           string    `bson:"slug" json:"slug"`
	Locale         string    `bson:"locale" json:"locale"`
	Summary        string    `bson:"summary,omitempty" json:"summary,omitempty"`
	Description    string    `bson:"description,omitempty" json:"description,omitempty"`
	City           string    `bson:"city,omitempty" json:"city,omitempty"`
	Region         string    `bson:"region,omitempty" json:"region,omitempty"`
	Country        string    `bson:"country,omitempty" json:"country,omitempty"`
	Rating         float64   `bson:"rating,omitempty" json:"rating,omitempty"`
	PricePerNight  float64   `bson:"pricePerNight,omitempty" json:"pricePerNight,omitempty"`
	PricePerPerson float64   `bson:"pricePerPerson,omitempty" json:"pricePerPerson,omitempty"`
	Currency       string    `bson:"currency,omitempty" json:"currency,omitempty"`
	DurationDays   int       `bson:"durationDays,omitempty" json:"durationDays,omitempty"`
	Images         []string  `bson:"images,omitempty" json:"images,omitempty"`
	Amenities      []string  `bson:"amenities,omitempty" json:"amenities,omitempty"`
	Tags           []string  `bson:"tags,omitempty" json:"tags,omitempty"`
	Destinations   []string  `bson:"destinations,omitempty" json:"destinations,omitempty"`
	Location       *GeoPoint `bson:"location,omitempty" json:"location,omitempty"`
	Author         string    `bson:"author,omitempty" json:"author,omitempty"`
	PublishedAt    time.Time `bson:"publishedAt,omitempty" json:"publishedAt,omitempty"`
	UpdatedAt      time.Time `bson:"updatedAt,omitempty" json:"updatedAt,omitempty"`
}
