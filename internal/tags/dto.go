package tags

import (
	"time"

	"corporate-site/internal/domain/media"
	"corporate-site/internal/domain/pages"
)

type PageLink struct {
	ID    uint   `json:"id"`
	Title string `json:"title"`
	Kind  string `json:"kind"`
	URL   string `json:"url"`
}

type MenuItem struct {
	PageLink
	ShowDropdown bool `json:"show_dropdown"`
	Active       bool `json:"active"`
}

type ImageDTO struct {
	ID      uint   `json:"id"`
	Title   string `json:"title"`
	URL     string `json:"url"`
	WebpURL string `json:"webp_url,omitempty"`
	AvifURL string `json:"avif_url,omitempty"`
}

type AdvertDTO struct {
	ID   uint      `json:"id"`
	Text string    `json:"text"`
	URL  *string   `json:"url,omitempty"`
	Page *PageLink `json:"page,omitempty"`
}

type CarouselDTO struct {
	ID       uint      `json:"id"`
	Caption  string    `json:"caption"`
	EmbedURL string    `json:"embed_url,omitempty"`
	Image    *ImageDTO `json:"image,omitempty"`
	Link     string    `json:"link"`
}

type HeadImageDTO struct {
	ID      uint      `json:"id"`
	Caption string    `json:"caption"`
	Image   *ImageDTO `json:"image,omitempty"`
}

// Card is a page teaser used by listings and blocks.
type Card struct {
	PageLink
	Type        int        `json:"type"`
	Image       *ImageDTO  `json:"image,omitempty"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
}

type NewsTechs struct {
	News  []Card `json:"news"`
	Techs []Card `json:"techs"`
}

type IntroBlock struct {
	PageLink
	Content string    `json:"content"`
	Image   *ImageDTO `json:"image,omitempty"`
}

type ContactBlock struct {
	PageLink
	Body string `json:"body"`
	pages.ContactFields
	FeedImage *ImageDTO `json:"feed_image,omitempty"`
}

// Image converts a stored image into its public form.
func (h *Helpers) Image(img *media.Image) *ImageDTO {
	if img == nil {
		return nil
	}
	out := &ImageDTO{ID: img.ID, Title: img.Title, URL: img.URL(h.opts.MediaURL)}
	if img.WebpPath != nil {
		out.WebpURL = media.URL(h.opts.MediaURL, *img.WebpPath)
	}
	if img.AvifPath != nil {
		out.AvifURL = media.URL(h.opts.MediaURL, *img.AvifPath)
	}
	return out
}

// Link converts a page into a link on the current site.
func (h *Helpers) Link(p *pages.Page) PageLink {
	return PageLink{ID: p.ID, Title: p.Title, Kind: p.Kind, URL: h.PageURL(p)}
}

func (h *Helpers) links(ps []pages.Page) []PageLink {
	out := make([]PageLink, 0, len(ps))
	for i := range ps {
		out = append(out, h.Link(&ps[i]))
	}
	return out
}

func (h *Helpers) card(p *pages.Page, typ int, img *media.Image) Card {
	return Card{PageLink: h.Link(p), Type: typ, Image: h.Image(img), PublishedAt: p.FirstPublishedAt}
}

// ProductCards converts product rows into cards.
func (h *Helpers) ProductCards(rows []pages.ProductPage) []Card {
	out := make([]Card, 0, len(rows))
	for i := range rows {
		out = append(out, h.card(&rows[i].Page, rows[i].Type, rows[i].Image))
	}
	return out
}

// NewsCards converts news rows into cards.
func (h *Helpers) NewsCards(rows []pages.NewsPage) []Card {
	out := make([]Card, 0, len(rows))
	for i := range rows {
		out = append(out, h.card(&rows[i].Page, rows[i].Type, rows[i].Image))
	}
	return out
}
