package tags

import (
	"errors"
	"strings"

	"corporate-site/internal/domain/categories"
	"corporate-site/internal/domain/pages"
	"corporate-site/internal/domain/snippets"

	"gorm.io/gorm"
)

const newsTechsLimit = 8

type Options struct {
	GoogleMapsKey string
	MediaURL      string
}

// Helpers assemble the view models shared by page layouts for one site.
type Helpers struct {
	db   *gorm.DB
	site *pages.Site
	opts Options
}

func New(db *gorm.DB, site *pages.Site, opts Options) *Helpers {
	return &Helpers{db: db, site: site, opts: opts}
}

// PageURL is the public URL of p on the helper's site.
func (h *Helpers) PageURL(p *pages.Page) string {
	if h.site == nil {
		return p.URLPath
	}
	return h.site.URL(p)
}

func (h *Helpers) SiteRoot() *PageLink {
	if h.site == nil {
		return nil
	}
	link := h.Link(&h.site.RootPage)
	return &link
}

func (h *Helpers) GoogleMapsKey() string {
	return h.opts.GoogleMapsKey
}

// TopMenu lists the live menu children of parent. An item is active when the
// calling page's URL starts with the item's URL.
func (h *Helpers) TopMenu(parent, calling *pages.Page) ([]MenuItem, error) {
	var children []pages.Page
	if err := pages.Children(h.db, parent).Scopes(pages.Live, pages.InMenu).Find(&children).Error; err != nil {
		return nil, err
	}

	callingURL := ""
	if calling != nil {
		callingURL = h.PageURL(calling)
	}

	out := make([]MenuItem, 0, len(children))
	for i := range children {
		child := &children[i]
		dropdown, err := pages.HasMenuChildren(h.db, child)
		if err != nil {
			return nil, err
		}
		item := MenuItem{PageLink: h.Link(child), ShowDropdown: dropdown}
		item.Active = calling != nil && strings.HasPrefix(callingURL, item.URL)
		out = append(out, item)
	}
	return out, nil
}

func (h *Helpers) TopMenuChildren(parent *pages.Page) ([]PageLink, error) {
	var children []pages.Page
	if err := pages.Children(h.db, parent).Scopes(pages.Live, pages.InMenu).Find(&children).Error; err != nil {
		return nil, err
	}
	return h.links(children), nil
}

// StandardIndexListing lists every live child of the calling page.
func (h *Helpers) StandardIndexListing(calling *pages.Page) ([]PageLink, error) {
	var children []pages.Page
	if err := pages.Children(h.db, calling).Scopes(pages.Live).Find(&children).Error; err != nil {
		return nil, err
	}
	return h.links(children), nil
}

func (h *Helpers) Adverts() ([]AdvertDTO, error) {
	rows, err := snippets.ListAdverts(h.db)
	if err != nil {
		return nil, err
	}
	return h.adverts(rows), nil
}

// PlacedAdverts lists the adverts placed on one page.
func (h *Helpers) PlacedAdverts(pageID uint) ([]AdvertDTO, error) {
	placements, err := snippets.Placements(h.db, pageID)
	if err != nil {
		return nil, err
	}
	rows := make([]snippets.Advert, 0, len(placements))
	for _, pl := range placements {
		rows = append(rows, pl.Advert)
	}
	return h.adverts(rows), nil
}

func (h *Helpers) adverts(rows []snippets.Advert) []AdvertDTO {
	out := make([]AdvertDTO, 0, len(rows))
	for _, a := range rows {
		dto := AdvertDTO{ID: a.ID, Text: a.Text, URL: a.URL}
		if a.Page != nil {
			link := h.Link(a.Page)
			dto.Page = &link
		}
		out = append(out, dto)
	}
	return out
}

func (h *Helpers) Carousels() ([]CarouselDTO, error) {
	rows, err := snippets.ListCarousels(h.db)
	if err != nil {
		return nil, err
	}
	out := make([]CarouselDTO, 0, len(rows))
	for i := range rows {
		c := &rows[i]
		out = append(out, CarouselDTO{
			ID:       c.ID,
			Caption:  c.Caption,
			EmbedURL: c.EmbedURL,
			Image:    h.Image(c.Image),
			Link:     c.Link(h.PageURL, h.opts.MediaURL),
		})
	}
	return out, nil
}

func (h *Helpers) HeadImages() ([]HeadImageDTO, error) {
	rows, err := snippets.ListHeadImages(h.db)
	if err != nil {
		return nil, err
	}
	out := make([]HeadImageDTO, 0, len(rows))
	for i := range rows {
		out = append(out, HeadImageDTO{ID: rows[i].ID, Caption: rows[i].Caption, Image: h.Image(rows[i].Image)})
	}
	return out, nil
}

// Breadcrumbs lists the ancestors of p below the home page, p included.
// Home and the tree root get none.
func (h *Helpers) Breadcrumbs(p *pages.Page) ([]PageLink, error) {
	if p == nil || p.Depth <= 2 {
		return []PageLink{}, nil
	}
	var ancestors []pages.Page
	if err := pages.Ancestors(h.db, p, true).Where("pages.depth > ?", 2).Find(&ancestors).Error; err != nil {
		return nil, err
	}
	return h.links(ancestors), nil
}

// NewsTechs returns the latest live news of each news type.
func (h *Helpers) NewsTechs() (*NewsTechs, error) {
	news, err := h.latestNews(categories.NewsIndustry)
	if err != nil {
		return nil, err
	}
	techs, err := h.latestNews(categories.NewsTechnology)
	if err != nil {
		return nil, err
	}
	return &NewsTechs{News: news, Techs: techs}, nil
}

func (h *Helpers) latestNews(typ int) ([]Card, error) {
	var rows []pages.NewsPage
	err := h.db.Model(&pages.NewsPage{}).
		Joins("JOIN pages ON pages.id = news_pages.page_id").
		Scopes(pages.Live).
		Where("news_pages.type = ?", typ).
		Order("COALESCE(pages.first_published_at, pages.created_at) DESC").
		Order("pages.id DESC").
		Limit(newsTechsLimit).
		Preload("Page").
		Preload("Image").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return h.NewsCards(rows), nil
}

// Intro returns the last live company profile page, or nil.
func (h *Helpers) Intro() (*IntroBlock, error) {
	var row pages.IntroPage
	err := h.db.Model(&pages.IntroPage{}).
		Joins("JOIN pages ON pages.id = intro_pages.page_id").
		Scopes(pages.Live).
		Where("intro_pages.type = ?", categories.IntroProfile).
		Order("pages.path DESC").
		Preload("Page").
		Preload("Image").
		Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &IntroBlock{PageLink: h.Link(&row.Page), Content: row.Content, Image: h.Image(row.Image)}, nil
}

// Contact returns the last live contact page, or nil.
func (h *Helpers) Contact() (*ContactBlock, error) {
	var row pages.ContactPage
	err := h.db.Model(&pages.ContactPage{}).
		Joins("JOIN pages ON pages.id = contact_pages.page_id").
		Scopes(pages.Live).
		Order("pages.path DESC").
		Preload("Page").
		Preload("FeedImage").
		Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &ContactBlock{
		PageLink:      h.Link(&row.Page),
		Body:          row.Body,
		ContactFields: row.ContactFields,
		FeedImage:     h.Image(row.FeedImage),
	}, nil
}

// ScrollProduct lists the live product pages that have an image.
func (h *Helpers) ScrollProduct() ([]Card, error) {
	var rows []pages.ProductPage
	err := h.db.Model(&pages.ProductPage{}).
		Joins("JOIN pages ON pages.id = product_pages.page_id").
		Scopes(pages.Live).
		Where("product_pages.image_id IS NOT NULL").
		Order("pages.path ASC").
		Preload("Page").
		Preload("Image").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return h.ProductCards(rows), nil
}
