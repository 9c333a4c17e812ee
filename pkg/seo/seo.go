// Package seo builds page metadata and schema.org structured data for
// catalog pages.
package seo

import (
	"strings"
	"unicode/utf8"
)

const MaxDescription = 160

type Site struct {
	Name    string
	BaseURL string
	Locale  string
}

type OpenGraph struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	URL         string `json:"url"`
	Type        string `json:"type"`
	Image       string `json:"image,omitempty"`
	SiteName    string `json:"siteName"`
	Locale      string `json:"locale"`
}

type Metadata struct {
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Canonical   string         `json:"canonical"`
	OpenGraph   OpenGraph      `json:"openGraph"`
	JSONLD      map[string]any `json:"jsonLd,omitempty"`
}

// Page is the input for a single page's metadata.
type Page struct {
	Title       string
	Description string
	Path        string
	Image       string
	Type        string
	Locale      string
}

func (s Site) Build(p Page, jsonLD map[string]any) Metadata {
	title := s.Name
	if p.Title != "" {
		title = p.Title + " | " + s.Name
	}
	ogType := p.Type
	if ogType == "" {
		ogType = "website"
	}
	locale := p.Locale
	if locale == "" {
		locale = s.Locale
	}

	desc := Truncate(p.Description, MaxDescription)
	canonical := s.URL(p.Path)

	return Metadata{
		Title:       title,
		Description: desc,
		Canonical:   canonical,
		OpenGraph: OpenGraph{
			Title:       title,
			Description: desc,
			URL:         canonical,
			Type:        ogType,
			Image:       p.Image,
			SiteName:    s.Name,
			Locale:      locale,
		},
		JSONLD: jsonLD,
	}
}

func (s Site) URL(path string) string {
	base := strings.TrimRight(s.BaseURL, "/")
	if path == "" || path == "/" {
		return base + "/"
	}
	return base + "/" + strings.TrimLeft(path, "/")
}

// Truncate shortens s to at most max runes, cutting on a word boundary and
// appending an ellipsis when it had to cut.
func Truncate(s string, max int) string {
	s = strings.Join(strings.Fields(s), " ")
	if utf8.RuneCountInString(s) <= max {
		return s
	}

	runes := []rune(s)
	cut := string(runes[:max-1])
	if i := strings.LastIndex(cut, " "); i > 0 {
		cut = cut[:i]
	}
	return strings.TrimRight(cut, " ,.;:") + "…"
}
