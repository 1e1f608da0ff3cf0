package siteapi

import (
	"corporate-site/internal/domain/categories"
	"corporate-site/internal/domain/pages"
	"corporate-site/internal/domain/routing"
	"corporate-site/internal/tags"

	"golang.org/x/text/language"
	"gorm.io/gorm"
)

// pageDTO flattens p and its specific row. An intro content override from
// routing replaces the stored content.
func pageDTO(db *gorm.DB, h *tags.Helpers, res *routing.Result) (PageDTO, error) {
	p := res.Page
	dto := PageDTO{
		PageLink:          h.Link(p),
		SeoTitle:          p.SeoTitle,
		SearchDescription: p.SearchDescription,
		Depth:             p.Depth,
		FirstPublishedAt:  p.FirstPublishedAt,
		LastPublishedAt:   p.LastPublishedAt,
	}

	specific, err := pages.LoadSpecific(db, p)
	if err != nil {
		return dto, err
	}
	switch s := specific.(type) {
	case *pages.HomePage:
		dto.Body = &s.Body
	case *pages.ProductPage:
		dto.Content, dto.Type, dto.Image = &s.Content, &s.Type, h.Image(s.Image)
	case *pages.NewsPage:
		dto.Content, dto.Type, dto.Image = &s.Content, &s.Type, h.Image(s.Image)
	case *pages.IntroPage:
		dto.Content, dto.Type, dto.Image = &s.Content, &s.Type, h.Image(s.Image)
	case *pages.ContactPage:
		dto.Body = &s.Body
		fields := s.ContactFields
		dto.Contact = &fields
		dto.FeedImage = h.Image(s.FeedImage)
	}
	if res.ContentOverride != nil {
		content := *res.ContentOverride
		dto.Content = &content
	}
	return dto, nil
}

// listing fills the index-specific parts of resp.
func listing(db *gorm.DB, h *tags.Helpers, res *routing.Result, lang language.Tag, resp *PageResponse) error {
	switch res.Page.Kind {
	case pages.KindProductIndex:
		rows, err := pages.ProductListing(db, res.Page, res.Category)
		if err != nil {
			return err
		}
		resp.Listing = h.ProductCards(rows)
		types, err := categories.ProductTypes(db)
		if err != nil {
			return err
		}
		resp.Types = types
	case pages.KindNewsIndex:
		rows, err := pages.NewsListing(db, res.Page, res.Category)
		if err != nil {
			return err
		}
		resp.Listing = h.NewsCards(rows)
		resp.Types = categories.NewsTypes.Choices(lang)
	case pages.KindIntro:
		resp.Types = categories.IntroTypes.Choices(lang)
	}
	if resp.Listing == nil && (res.Page.Kind == pages.KindProductIndex || res.Page.Kind == pages.KindNewsIndex) {
		resp.Listing = []tags.Card{}
	}
	return nil
}
