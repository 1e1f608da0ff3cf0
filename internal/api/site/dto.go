package siteapi

import (
	"time"

	"corporate-site/internal/domain/categories"
	"corporate-site/internal/domain/pages"
	"corporate-site/internal/tags"
)

type PageDTO struct {
	tags.PageLink
	SeoTitle          string     `json:"seo_title"`
	SearchDescription string     `json:"search_description"`
	Depth             int        `json:"depth"`
	FirstPublishedAt  *time.Time `json:"first_published_at,omitempty"`
	LastPublishedAt   *time.Time `json:"last_published_at,omitempty"`

	Body    *string        `json:"body,omitempty"`
	Content *string        `json:"content,omitempty"`
	Type    *int           `json:"type,omitempty"`
	Image   *tags.ImageDTO `json:"image,omitempty"`

	Contact   *pages.ContactFields `json:"contact,omitempty"`
	FeedImage *tags.ImageDTO       `json:"feed_image,omitempty"`
}

type PageResponse struct {
	Page        PageDTO             `json:"page"`
	Args        []string            `json:"args,omitempty"`
	Category    *int                `json:"category,omitempty"`
	Types       []categories.Choice `json:"types,omitempty"`
	BaseURL     string              `json:"base_url,omitempty"`
	Listing     []tags.Card         `json:"listing"`
	Breadcrumbs []tags.PageLink     `json:"breadcrumbs"`
	Adverts     []tags.AdvertDTO    `json:"adverts"`
	Lang        string              `json:"lang"`
}

type MenuResponse struct {
	Items []tags.MenuItem `json:"items"`
}

type LinksResponse struct {
	Pages []tags.PageLink `json:"pages"`
}

type SettingsResponse struct {
	SiteName      string         `json:"site_name"`
	SiteRoot      *tags.PageLink `json:"site_root"`
	GoogleMapsKey string         `json:"google_maps_key"`
}
