package admin

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"corporate-site/internal/domain/categories"
	"corporate-site/internal/domain/pages"
	"corporate-site/internal/domain/snippets"
	"corporate-site/internal/infra/logging"
	"corporate-site/internal/infra/richtext"
	"corporate-site/internal/infra/uploads"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	errBadReference = errors.New("referenced record does not exist")
	errInUse        = errors.New("record is still in use")
)

// respondError maps domain errors onto status codes. Unexpected errors are
// logged and hidden behind a 500.
func respondError(c *gin.Context, op string, err error) {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	case errors.Is(err, pages.ErrSlugInUse), errors.Is(err, errInUse):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, pages.ErrInvalidField),
		errors.Is(err, pages.ErrRootPage),
		errors.Is(err, categories.ErrInvalidCode),
		errors.Is(err, snippets.ErrInvalid),
		errors.Is(err, richtext.ErrUnknownFormat),
		errors.Is(err, uploads.ErrUnsupportedType),
		errors.Is(err, errBadReference):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		logging.From(c).Error(op+" failed", zap.Error(err), zap.String("path", c.Request.URL.Path))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to " + op})
	}
}

func idParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + name})
		return 0, false
	}
	return uint(id), true
}

// mustExist checks an optional foreign key before it is written.
func mustExist(tx *gorm.DB, model any, id *uint, field string) error {
	if id == nil {
		return nil
	}
	var count int64
	if err := tx.Model(model).Where("id = ?", *id).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return fmt.Errorf("%w: %s %d", errBadReference, field, *id)
	}
	return nil
}
