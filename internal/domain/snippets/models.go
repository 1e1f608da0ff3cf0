package snippets

import (
	"fmt"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"corporate-site/internal/domain/media"
	"corporate-site/internal/domain/pages"
)

const captionMax = 255

type CarouselItem struct {
	ID      uint         `gorm:"primaryKey" json:"id"`
	ImageID *uint        `json:"image_id,omitempty"`
	Image   *media.Image `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"image,omitempty"`

	EmbedURL string `gorm:"size:200;not null;default:''" json:"embed_url"`
	Caption  string `gorm:"size:255;not null" json:"caption"`

	// link target, resolved by Link
	LinkExternal   string          `gorm:"size:200;not null;default:''" json:"link_external"`
	LinkPageID     *uint           `gorm:"index" json:"link_page_id,omitempty"`
	LinkPage       *pages.Page     `gorm:"foreignKey:LinkPageID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"-"`
	LinkDocumentID *uint           `gorm:"index" json:"link_document_id,omitempty"`
	LinkDocument   *media.Document `gorm:"foreignKey:LinkDocumentID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (CarouselItem) TableName() string { return "carousel_items" }

func (c *CarouselItem) Validate() error {
	if err := validateCaption(c.Caption); err != nil {
		return err
	}
	if c.EmbedURL != "" {
		if err := validateURL("embed_url", c.EmbedURL); err != nil {
			return err
		}
	}
	if c.LinkExternal != "" {
		return validateURL("link_external", c.LinkExternal)
	}
	return nil
}

// Link resolves the target URL: the linked page first, then the document,
// then the external URL. pageURL maps a page to its public URL on the
// current site; documents are served below mediaURL.
func (c *CarouselItem) Link(pageURL func(*pages.Page) string, mediaURL string) string {
	switch {
	case c.LinkPage != nil:
		return pageURL(c.LinkPage)
	case c.LinkDocument != nil:
		return c.LinkDocument.URL(mediaURL)
	default:
		return c.LinkExternal
	}
}

// HeadImage is a banner shown at the top of content pages.
type HeadImage struct {
	ID      uint         `gorm:"primaryKey" json:"id"`
	ImageID *uint        `json:"image_id,omitempty"`
	Image   *media.Image `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"image,omitempty"`
	Caption string       `gorm:"size:255;not null" json:"caption"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (HeadImage) TableName() string { return "head_images" }

func (h *HeadImage) Validate() error {
	return validateCaption(h.Caption)
}

// ProductType is the lookup table behind ProductPage.Type.
type ProductType struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	TypeName string `gorm:"column:typename;size:255;not null" json:"typename"`
}

func (ProductType) TableName() string { return "product_types" }

func (p *ProductType) Validate() error {
	if strings.TrimSpace(p.TypeName) == "" {
		return fmt.Errorf("%w: typename is required", ErrInvalid)
	}
	if utf8.RuneCountInString(p.TypeName) > 255 {
		return fmt.Errorf("%w: typename longer than 255 characters", ErrInvalid)
	}
	return nil
}

type Advert struct {
	ID     uint        `gorm:"primaryKey" json:"id"`
	PageID *uint       `gorm:"index" json:"page_id,omitempty"`
	Page   *pages.Page `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"-"`
	URL    *string     `gorm:"size:200" json:"url,omitempty"`
	Text   string      `gorm:"size:255;not null" json:"text"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Advert) TableName() string { return "adverts" }

func (a *Advert) Validate() error {
	if strings.TrimSpace(a.Text) == "" {
		return fmt.Errorf("%w: text is required", ErrInvalid)
	}
	if utf8.RuneCountInString(a.Text) > 255 {
		return fmt.Errorf("%w: text longer than 255 characters", ErrInvalid)
	}
	if a.URL != nil && *a.URL != "" {
		return validateURL("url", *a.URL)
	}
	return nil
}

// AdvertPlacement attaches an advert to a page.
type AdvertPlacement struct {
	ID       uint       `gorm:"primaryKey" json:"id"`
	PageID   uint       `gorm:"not null;uniqueIndex:idx_advert_placements_page_advert,priority:1" json:"page_id"`
	Page     pages.Page `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	AdvertID uint       `gorm:"not null;uniqueIndex:idx_advert_placements_page_advert,priority:2;index" json:"advert_id"`
	Advert   Advert     `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"advert"`

	CreatedAt time.Time `json:"created_at"`
}

func (AdvertPlacement) TableName() string { return "advert_placements" }

func validateCaption(caption string) error {
	if strings.TrimSpace(caption) == "" {
		return fmt.Errorf("%w: caption is required", ErrInvalid)
	}
	if utf8.RuneCountInString(caption) > captionMax {
		return fmt.Errorf("%w: caption longer than %d characters", ErrInvalid, captionMax)
	}
	return nil
}

func validateURL(field, raw string) error {
	u, err := url.Parse(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%w: %s must be an absolute http(s) URL", ErrInvalid, field)
	}
	return nil
}
