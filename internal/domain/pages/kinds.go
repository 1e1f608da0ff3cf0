package pages

import (
	"fmt"
	"net/mail"
	"unicode/utf8"

	"corporate-site/internal/domain/media"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Specific is the per-kind row stored next to a Page. Index and project
// pages carry no extra fields and have no specific row.
type Specific interface {
	Kind() string
	setPageID(id uint)
	preloads() []string
}

type HomePage struct {
	PageID uint `gorm:"primaryKey;autoIncrement:false" json:"page_id"`
	Page   Page `gorm:"foreignKey:PageID;constraint:OnDelete:CASCADE;" json:"-"`

	Body string `gorm:"type:text;not null;default:''" json:"body"`
}

func (HomePage) TableName() string { return "home_pages" }
func (HomePage) Kind() string { return KindHome }
func (h *HomePage) setPageID(id uint) { h.PageID = id }
func (HomePage) preloads() []string { return nil }

type ProductPage struct {
	PageID uint `gorm:"primaryKey;autoIncrement:false" json:"page_id"`
	Page   Page `gorm:"foreignKey:PageID;constraint:OnDelete:CASCADE;" json:"-"`

	ImageID *uint        `json:"image_id,omitempty"`
	Image   *media.Image `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"image,omitempty"`
	Content string       `gorm:"type:text;not null;default:''" json:"content"`
	// Type references a ProductType snippet.
	Type int `gorm:"not null;index" json:"type"`
}

func (ProductPage) TableName() string { return "product_pages" }
func (ProductPage) Kind() string { return KindProduct }
func (p *ProductPage) setPageID(id uint) { p.PageID = id }
func (ProductPage) preloads() []string { return []string{"Image"} }

type NewsPage struct {
	PageID uint `gorm:"primaryKey;autoIncrement:false" json:"page_id"`
	Page   Page `gorm:"foreignKey:PageID;constraint:OnDelete:CASCADE;" json:"-"`

	ImageID *uint        `json:"image_id,omitempty"`
	Image   *media.Image `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"image,omitempty"`
	Content string       `gorm:"type:text;not null;default:''" json:"content"`
	Type    int          `gorm:"not null;index" json:"type"`
}

func (NewsPage) TableName() string { return "news_pages" }
func (NewsPage) Kind() string { return KindNews }
func (n *NewsPage) setPageID(id uint) { n.PageID = id }
func (NewsPage) preloads() []string { return []string{"Image"} }

type IntroPage struct {
	PageID uint `gorm:"primaryKey;autoIncrement:false" json:"page_id"`
	Page   Page `gorm:"foreignKey:PageID;constraint:OnDelete:CASCADE;" json:"-"`

	ImageID *uint        `json:"image_id,omitempty"`
	Image   *media.Image `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"image,omitempty"`
	Content string       `gorm:"type:text;not null;default:''" json:"content"`
	Type    int          `gorm:"not null;index" json:"type"`
}

func (IntroPage) TableName() string { return "intro_pages" }
func (IntroPage) Kind() string { return KindIntro }
func (i *IntroPage) setPageID(id uint) { i.PageID = id }
func (IntroPage) preloads() []string { return []string{"Image"} }

// ContactFields is the address block shared by contact pages.
type ContactFields struct {
	Telephone string `gorm:"size:20;not null;default:''" json:"telephone" yaml:"telephone"`
	Mobile    string `gorm:"size:20;not null;default:''" json:"mobile" yaml:"mobile"`
	Email     string `gorm:"size:254;not null;default:''" json:"email" yaml:"email"`
	Address   string `gorm:"size:255;not null;default:''" json:"address" yaml:"address"`
	City      string `gorm:"size:255;not null;default:''" json:"city" yaml:"city"`
	Country   string `gorm:"size:255;not null;default:''" json:"country" yaml:"country"`
	PostCode  string `gorm:"size:10;not null;default:''" json:"post_code" yaml:"post_code"`
	Website   string `gorm:"size:20;not null;default:''" json:"website" yaml:"website"`
}

// Validate checks the column limits and the email format.
func (c ContactFields) Validate() error {
	limits := []struct {
		name  string
		value string
		max   int
	}{
		{"telephone", c.Telephone, 20},
		{"mobile", c.Mobile, 20},
		{"email", c.Email, 254},
		{"address", c.Address, 255},
		{"city", c.City, 255},
		{"country", c.Country, 255},
		{"post_code", c.PostCode, 10},
		{"website", c.Website, 20},
	}
	for _, l := range limits {
		if utf8.RuneCountInString(l.value) > l.max {
			return fmt.Errorf("%w: %s longer than %d characters", ErrInvalidField, l.name, l.max)
		}
	}
	if c.Email != "" {
		if _, err := mail.ParseAddress(c.Email); err != nil {
			return fmt.Errorf("%w: email is not valid", ErrInvalidField)
		}
	}
	return nil
}

type ContactPage struct {
	PageID uint `gorm:"primaryKey;autoIncrement:false" json:"page_id"`
	Page   Page `gorm:"foreignKey:PageID;constraint:OnDelete:CASCADE;" json:"-"`

	Body          string `gorm:"type:text;not null;default:''" json:"body"`
	ContactFields `gorm:"embedded"`
	FeedImageID   *uint        `json:"feed_image_id,omitempty"`
	FeedImage     *media.Image `gorm:"foreignKey:FeedImageID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"feed_image,omitempty"`
}

func (ContactPage) TableName() string { return "contact_pages" }
func (ContactPage) Kind() string { return KindContact }
func (c *ContactPage) setPageID(id uint) { c.PageID = id }
func (ContactPage) preloads() []string { return []string{"FeedImage"} }

// SpecificModels lists every per-kind model, for migrations and cleanup.
func SpecificModels() []any {
	return []any{&HomePage{}, &ProductPage{}, &NewsPage{}, &IntroPage{}, &ContactPage{}}
}

// NewSpecific returns an empty specific row for kind, or nil when the kind
// stores nothing beyond the page itself.
func NewSpecific(kind string) Specific {
	switch kind {
	case KindHome:
		return &HomePage{}
	case KindProduct:
		return &ProductPage{Type: 1}
	case KindNews:
		return &NewsPage{Type: 1}
	case KindIntro:
		return &IntroPage{Type: 1}
	case KindContact:
		return &ContactPage{}
	default:
		return nil
	}
}

// LoadSpecific fetches the specific row of p with its images.
func LoadSpecific(db *gorm.DB, p *Page) (Specific, error) {
	s := NewSpecific(p.Kind)
	if s == nil {
		return nil, nil
	}
	q := db
	for _, rel := range s.preloads() {
		q = q.Preload(rel)
	}
	if err := q.First(s, "page_id = ?", p.ID).Error; err != nil {
		return nil, err
	}
	return s, nil
}

// SaveSpecific upserts s for the page with the given id.
func SaveSpecific(tx *gorm.DB, pageID uint, s Specific) error {
	if s == nil {
		return nil
	}
	s.setPageID(pageID)
	return tx.Omit(clause.Associations).Save(s).Error
}

// ForgetImage clears every page reference to the image.
func ForgetImage(tx *gorm.DB, imageID uint) error {
	for _, m := range []any{&ProductPage{}, &NewsPage{}, &IntroPage{}} {
		if err := tx.Model(m).Where("image_id = ?", imageID).Update("image_id", nil).Error; err != nil {
			return err
		}
	}
	return tx.Model(&ContactPage{}).Where("feed_image_id = ?", imageID).Update("feed_image_id", nil).Error
}
