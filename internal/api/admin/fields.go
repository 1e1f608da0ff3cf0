package admin

import (
	"corporate-site/internal/domain/categories"
	"corporate-site/internal/domain/media"
	"corporate-site/internal/domain/pages"
	"corporate-site/internal/infra/richtext"

	"gorm.io/gorm"
)

// applyFields copies the submitted kind-specific fields onto s and validates
// the result. Rich text is rendered to clean HTML.
func applyFields(tx *gorm.DB, s pages.Specific, f PageFields) error {
	switch v := s.(type) {
	case *pages.HomePage:
		return setRichText(&v.Body, f.Body, f.Format)

	case *pages.ProductPage:
		if err := applyArticle(tx, &v.Content, &v.Type, &v.ImageID, f); err != nil {
			return err
		}
		return categories.ValidateProductType(tx, v.Type)

	case *pages.NewsPage:
		if err := applyArticle(tx, &v.Content, &v.Type, &v.ImageID, f); err != nil {
			return err
		}
		return categories.NewsTypes.Validate(v.Type)

	case *pages.IntroPage:
		if err := applyArticle(tx, &v.Content, &v.Type, &v.ImageID, f); err != nil {
			return err
		}
		return categories.IntroTypes.Validate(v.Type)

	case *pages.ContactPage:
		if err := setRichText(&v.Body, f.Body, f.Format); err != nil {
			return err
		}
		if f.Contact != nil {
			v.ContactFields = *f.Contact
		}
		if err := v.ContactFields.Validate(); err != nil {
			return err
		}
		return setImage(tx, &v.FeedImageID, f.FeedImageID, f.ClearFeedImage)
	}
	return nil
}

func applyArticle(tx *gorm.DB, content *string, typ *int, imageID **uint, f PageFields) error {
	if err := setRichText(content, f.Content, f.Format); err != nil {
		return err
	}
	if f.Type != nil {
		*typ = *f.Type
	}
	return setImage(tx, imageID, f.ImageID, f.ClearImage)
}

func setRichText(dst *string, src *string, format string) error {
	if src == nil {
		return nil
	}
	html, err := richtext.Render(*src, format)
	if err != nil {
		return err
	}
	*dst = html
	return nil
}

func setImage(tx *gorm.DB, dst **uint, id *uint, clear bool) error {
	if clear {
		*dst = nil
		return nil
	}
	if id == nil {
		return nil
	}
	if err := mustExist(tx, &media.Image{}, id, "image"); err != nil {
		return err
	}
	v := *id
	*dst = &v
	return nil
}
