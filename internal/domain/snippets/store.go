package snippets

import (
	"errors"

	"gorm.io/gorm"
)

var ErrInvalid = errors.New("invalid snippet")

// ListCarousels returns every carousel item with its image and link targets.
func ListCarousels(db *gorm.DB) ([]CarouselItem, error) {
	var out []CarouselItem
	err := db.Preload("Image").Preload("LinkPage").Preload("LinkDocument").
		Order("id ASC").Find(&out).Error
	return out, err
}

// ListHeadImages returns every head image with its image.
func ListHeadImages(db *gorm.DB) ([]HeadImage, error) {
	var out []HeadImage
	err := db.Preload("Image").Order("id ASC").Find(&out).Error
	return out, err
}

// ListAdverts returns every advert with its page.
func ListAdverts(db *gorm.DB) ([]Advert, error) {
	var out []Advert
	err := db.Preload("Page").Order("id ASC").Find(&out).Error
	return out, err
}

// ListProductTypes returns the product type lookup table ordered by id.
func ListProductTypes(db *gorm.DB) ([]ProductType, error) {
	var out []ProductType
	err := db.Order("id ASC").Find(&out).Error
	return out, err
}

// Placements returns the adverts placed on a page.
func Placements(db *gorm.DB, pageID uint) ([]AdvertPlacement, error) {
	var out []AdvertPlacement
	err := db.Preload("Advert").Preload("Advert.Page").
		Where("page_id = ?", pageID).Order("id ASC").Find(&out).Error
	return out, err
}

// Place attaches an advert to a page. Placing the same advert twice is a no-op.
func Place(db *gorm.DB, pageID, advertID uint) (*AdvertPlacement, error) {
	var existing AdvertPlacement
	err := db.Where("page_id = ? AND advert_id = ?", pageID, advertID).First(&existing).Error
	if err == nil {
		return &existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	pl := &AdvertPlacement{PageID: pageID, AdvertID: advertID}
	if err := db.Omit("Page", "Advert").Create(pl).Error; err != nil {
		return nil, err
	}
	return pl, nil
}

// ForgetPages drops placements on the given pages and clears links to them.
func ForgetPages(tx *gorm.DB, ids []uint) error {
	if len(ids) == 0 {
		return nil
	}
	if err := tx.Where("page_id IN ?", ids).Delete(&AdvertPlacement{}).Error; err != nil {
		return err
	}
	if err := tx.Model(&Advert{}).Where("page_id IN ?", ids).Update("page_id", nil).Error; err != nil {
		return err
	}
	return tx.Model(&CarouselItem{}).Where("link_page_id IN ?", ids).Update("link_page_id", nil).Error
}

// ForgetImage clears snippet references to an image.
func ForgetImage(tx *gorm.DB, imageID uint) error {
	if err := tx.Model(&CarouselItem{}).Where("image_id = ?", imageID).Update("image_id", nil).Error; err != nil {
		return err
	}
	return tx.Model(&HeadImage{}).Where("image_id = ?", imageID).Update("image_id", nil).Error
}

// ForgetDocument clears snippet links to a document.
func ForgetDocument(tx *gorm.DB, documentID uint) error {
	return tx.Model(&CarouselItem{}).Where("link_document_id = ?", documentID).Update("link_document_id", nil).Error
}
