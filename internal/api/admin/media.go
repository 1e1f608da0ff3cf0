package admin

import (
	"net/http"
	"path/filepath"
	"strings"

	"corporate-site/database"
	"corporate-site/internal/domain/media"
	"corporate-site/internal/domain/pages"
	"corporate-site/internal/domain/snippets"
	"corporate-site/internal/infra/logging"
	"corporate-site/internal/infra/uploads"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// MediaHandlers manage images and documents stored in Files.
type MediaHandlers struct {
	Files *uploads.Store
}

// ImageInput registers an image that already lives elsewhere, such as a CDN,
// or updates the paths of a stored one.
type ImageInput struct {
	Title        string  `json:"title"`
	OriginalPath string  `json:"original_path" binding:"required"`
	WebpPath     *string `json:"webp_path"`
	AvifPath     *string `json:"avif_path"`
}

// GET /admin/images
func (h *MediaHandlers) ListImages(c *gin.Context) {
	var rows []media.Image
	if err := database.DB.Order("created_at DESC").Find(&rows).Error; err != nil {
		respondError(c, "load images", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"images": rows})
}

// POST /admin/images/upload (multipart: file, title)
func (h *MediaHandlers) UploadImage(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file uploaded"})
		return
	}
	if !uploads.IsImage(file.Filename) {
		respondError(c, "upload image", uploads.ErrUnsupportedType)
		return
	}
	rel, err := h.Files.Save(file, "images")
	if err != nil {
		respondError(c, "upload image", err)
		return
	}

	img := media.Image{Title: titleOr(c.PostForm("title"), file.Filename), OriginalPath: rel}
	if err := database.DB.Create(&img).Error; err != nil {
		_ = h.Files.Remove(rel)
		respondError(c, "upload image", err)
		return
	}
	c.JSON(http.StatusCreated, img)
}

// POST /admin/images
func (h *MediaHandlers) RegisterImage(c *gin.Context) {
	var in ImageInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	img := media.Image{Title: in.Title, OriginalPath: in.OriginalPath, WebpPath: in.WebpPath, AvifPath: in.AvifPath}
	if err := database.DB.Create(&img).Error; err != nil {
		respondError(c, "register image", err)
		return
	}
	c.JSON(http.StatusCreated, img)
}

// PUT /admin/images/:id
func (h *MediaHandlers) UpdateImage(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var in ImageInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	res := database.DB.Model(&media.Image{}).Where("id = ?", id).Updates(map[string]interface{}{
		"title":         in.Title,
		"original_path": in.OriginalPath,
		"webp_path":     in.WebpPath,
		"avif_path":     in.AvifPath,
	})
	if res.Error != nil {
		respondError(c, "update image", res.Error)
		return
	}
	if res.RowsAffected == 0 {
		respondError(c, "update image", gorm.ErrRecordNotFound)
		return
	}
	var img media.Image
	if err := database.DB.First(&img, id).Error; err != nil {
		respondError(c, "update image", err)
		return
	}
	c.JSON(http.StatusOK, img)
}

// DELETE /admin/images/:id
// Pages and snippets using the image lose it; the stored files are removed.
func (h *MediaHandlers) DeleteImage(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var img media.Image
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&img, id).Error; err != nil {
			return err
		}
		if err := pages.ForgetImage(tx, id); err != nil {
			return err
		}
		if err := snippets.ForgetImage(tx, id); err != nil {
			return err
		}
		return tx.Delete(&media.Image{}, id).Error
	})
	if err != nil {
		respondError(c, "delete image", err)
		return
	}

	paths := []string{img.OriginalPath}
	if img.WebpPath != nil {
		paths = append(paths, *img.WebpPath)
	}
	if img.AvifPath != nil {
		paths = append(paths, *img.AvifPath)
	}
	h.removeFiles(c, paths...)
	c.Status(http.StatusNoContent)
}

// GET /admin/documents
func (h *MediaHandlers) ListDocuments(c *gin.Context) {
	var rows []media.Document
	if err := database.DB.Order("created_at DESC").Find(&rows).Error; err != nil {
		respondError(c, "load documents", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"documents": rows})
}

// POST /admin/documents/upload (multipart: file, title)
func (h *MediaHandlers) UploadDocument(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file uploaded"})
		return
	}
	rel, err := h.Files.Save(file, "documents")
	if err != nil {
		respondError(c, "upload document", err)
		return
	}

	doc := media.Document{Title: titleOr(c.PostForm("title"), file.Filename), FilePath: rel}
	if err := database.DB.Create(&doc).Error; err != nil {
		_ = h.Files.Remove(rel)
		respondError(c, "upload document", err)
		return
	}
	c.JSON(http.StatusCreated, doc)
}

// DELETE /admin/documents/:id
func (h *MediaHandlers) DeleteDocument(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var doc media.Document
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&doc, id).Error; err != nil {
			return err
		}
		if err := snippets.ForgetDocument(tx, id); err != nil {
			return err
		}
		return tx.Delete(&media.Document{}, id).Error
	})
	if err != nil {
		respondError(c, "delete document", err)
		return
	}
	h.removeFiles(c, doc.FilePath)
	c.Status(http.StatusNoContent)
}

func (h *MediaHandlers) removeFiles(c *gin.Context, paths ...string) {
	for _, p := range paths {
		if err := h.Files.Remove(p); err != nil {
			logging.From(c).Warn("remove media file failed", zap.String("file", p), zap.Error(err))
		}
	}
}

func titleOr(title, filename string) string {
	if t := strings.TrimSpace(title); t != "" {
		return t
	}
	return strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
}
