package admin

import (
	"fmt"
	"net/http"

	"corporate-site/database"
	"corporate-site/internal/domain/media"
	"corporate-site/internal/domain/pages"
	"corporate-site/internal/domain/snippets"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ---------- carousel items ----------

// GET /admin/carousels
func ListCarousels(c *gin.Context) {
	rows, err := snippets.ListCarousels(database.DB)
	if err != nil {
		respondError(c, "load carousels", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"carousels": rows})
}

// POST /admin/carousels
func CreateCarousel(c *gin.Context) {
	saveCarousel(c, 0)
}

// PUT /admin/carousels/:id
func UpdateCarousel(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	saveCarousel(c, id)
}

func saveCarousel(c *gin.Context, id uint) {
	var req CarouselRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	item := snippets.CarouselItem{
		ID:             id,
		ImageID:        req.ImageID,
		EmbedURL:       req.EmbedURL,
		Caption:        req.Caption,
		LinkExternal:   req.LinkExternal,
		LinkPageID:     req.LinkPageID,
		LinkDocumentID: req.LinkDocumentID,
	}
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := item.Validate(); err != nil {
			return err
		}
		if err := mustExist(tx, &media.Image{}, item.ImageID, "image"); err != nil {
			return err
		}
		if err := mustExist(tx, &pages.Page{}, item.LinkPageID, "page"); err != nil {
			return err
		}
		if err := mustExist(tx, &media.Document{}, item.LinkDocumentID, "document"); err != nil {
			return err
		}
		return saveRow(tx, &snippets.CarouselItem{}, id, &item, "Image", "LinkPage", "LinkDocument")
	})
	if err != nil {
		respondError(c, "save carousel item", err)
		return
	}
	c.JSON(statusFor(id), item)
}

// DELETE /admin/carousels/:id
func DeleteCarousel(c *gin.Context) {
	deleteRow(c, &snippets.CarouselItem{}, "carousel item")
}

// ---------- head images ----------

// GET /admin/head-images
func ListHeadImages(c *gin.Context) {
	rows, err := snippets.ListHeadImages(database.DB)
	if err != nil {
		respondError(c, "load head images", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"head_images": rows})
}

// POST /admin/head-images
func CreateHeadImage(c *gin.Context) {
	saveHeadImage(c, 0)
}

// PUT /admin/head-images/:id
func UpdateHeadImage(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	saveHeadImage(c, id)
}

func saveHeadImage(c *gin.Context, id uint) {
	var req HeadImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	row := snippets.HeadImage{ID: id, ImageID: req.ImageID, Caption: req.Caption}
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := row.Validate(); err != nil {
			return err
		}
		if err := mustExist(tx, &media.Image{}, row.ImageID, "image"); err != nil {
			return err
		}
		return saveRow(tx, &snippets.HeadImage{}, id, &row, "Image")
	})
	if err != nil {
		respondError(c, "save head image", err)
		return
	}
	c.JSON(statusFor(id), row)
}

// DELETE /admin/head-images/:id
func DeleteHeadImage(c *gin.Context) {
	deleteRow(c, &snippets.HeadImage{}, "head image")
}

// ---------- product types ----------

// GET /admin/product-types
func ListProductTypes(c *gin.Context) {
	rows, err := snippets.ListProductTypes(database.DB)
	if err != nil {
		respondError(c, "load product types", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"product_types": rows})
}

// POST /admin/product-types
func CreateProductType(c *gin.Context) {
	saveProductType(c, 0)
}

// PUT /admin/product-types/:id
func UpdateProductType(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	saveProductType(c, id)
}

func saveProductType(c *gin.Context, id uint) {
	var req ProductTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	row := snippets.ProductType{ID: id, TypeName: req.TypeName}
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := row.Validate(); err != nil {
			return err
		}
		return saveRow(tx, &snippets.ProductType{}, id, &row)
	})
	if err != nil {
		respondError(c, "save product type", err)
		return
	}
	c.JSON(statusFor(id), row)
}

// DELETE /admin/product-types/:id
// Types still used by product pages cannot be removed.
func DeleteProductType(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var used int64
	if err := database.DB.Model(&pages.ProductPage{}).Where("type = ?", id).Count(&used).Error; err != nil {
		respondError(c, "delete product type", err)
		return
	}
	if used > 0 {
		respondError(c, "delete product type", fmt.Errorf("%w: %d product pages use this type", errInUse, used))
		return
	}
	deleteRow(c, &snippets.ProductType{}, "product type")
}

// ---------- adverts ----------

// GET /admin/adverts
func ListAdverts(c *gin.Context) {
	rows, err := snippets.ListAdverts(database.DB)
	if err != nil {
		respondError(c, "load adverts", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"adverts": rows})
}

// POST /admin/adverts
func CreateAdvert(c *gin.Context) {
	saveAdvert(c, 0)
}

// PUT /admin/adverts/:id
func UpdateAdvert(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	saveAdvert(c, id)
}

func saveAdvert(c *gin.Context, id uint) {
	var req AdvertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	row := snippets.Advert{ID: id, PageID: req.PageID, URL: req.URL, Text: req.Text}
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := row.Validate(); err != nil {
			return err
		}
		if err := mustExist(tx, &pages.Page{}, row.PageID, "page"); err != nil {
			return err
		}
		return saveRow(tx, &snippets.Advert{}, id, &row, "Page")
	})
	if err != nil {
		respondError(c, "save advert", err)
		return
	}
	c.JSON(statusFor(id), row)
}

// DELETE /admin/adverts/:id
// Placements go with the advert.
func DeleteAdvert(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("advert_id = ?", id).Delete(&snippets.AdvertPlacement{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&snippets.Advert{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	if err != nil {
		respondError(c, "delete advert", err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ---------- shared ----------

// saveRow creates row when id is zero, otherwise replaces the existing record
// and reloads it so the stored timestamps are returned.
func saveRow(tx *gorm.DB, model any, id uint, row any, omit ...string) error {
	if id == 0 {
		return tx.Omit(omit...).Create(row).Error
	}
	var count int64
	if err := tx.Model(model).Where("id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return gorm.ErrRecordNotFound
	}
	if err := tx.Omit(append(omit, "CreatedAt")...).Save(row).Error; err != nil {
		return err
	}
	return tx.First(row, id).Error
}

func deleteRow(c *gin.Context, model any, what string) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	res := database.DB.Delete(model, id)
	if res.Error != nil {
		respondError(c, "delete "+what, res.Error)
		return
	}
	if res.RowsAffected == 0 {
		respondError(c, "delete "+what, gorm.ErrRecordNotFound)
		return
	}
	c.Status(http.StatusNoContent)
}

func statusFor(id uint) int {
	if id == 0 {
		return http.StatusCreated
	}
	return http.StatusOK
}
