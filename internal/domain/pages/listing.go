package pages

import (
	"errors"

	"gorm.io/gorm"
)

// childListing joins a specific table onto the live children of index. A nil
// category keeps every child; otherwise only rows whose type matches remain.
func childListing(db *gorm.DB, model any, table string, index *Page, category *int) *gorm.DB {
	q := db.Model(model).
		Joins("JOIN pages ON pages.id = "+table+".page_id").
		Where("pages.path LIKE ? AND pages.depth = ?", index.Path+"%", index.Depth+1).
		Scopes(Live).
		Order("pages.path ASC")
	if category != nil {
		q = q.Where(table+".type = ?", *category)
	}
	return q
}

// ProductListing returns the live product pages below index.
func ProductListing(db *gorm.DB, index *Page, category *int) ([]ProductPage, error) {
	var out []ProductPage
	err := childListing(db, &ProductPage{}, "product_pages", index, category).
		Preload("Page").
		Preload("Image").
		Find(&out).Error
	return out, err
}

// NewsListing returns the live news pages below index.
func NewsListing(db *gorm.DB, index *Page, category *int) ([]NewsPage, error) {
	var out []NewsPage
	err := childListing(db, &NewsPage{}, "news_pages", index, category).
		Preload("Page").
		Preload("Image").
		Find(&out).Error
	return out, err
}

// FirstIntroOfType returns the first live intro page of the given type in
// tree order, or nil when there is none.
func FirstIntroOfType(db *gorm.DB, code int) (*IntroPage, error) {
	var intro IntroPage
	err := db.Model(&IntroPage{}).
		Joins("JOIN pages ON pages.id = intro_pages.page_id").
		Scopes(Live).
		Where("intro_pages.type = ?", code).
		Order("pages.path ASC").
		Preload("Page").
		Take(&intro).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &intro, nil
}
