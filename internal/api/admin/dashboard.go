package admin

import (
	"net/http"

	"corporate-site/database"
	"corporate-site/internal/domain/categories"
	"corporate-site/internal/domain/media"
	"corporate-site/internal/domain/pages"
	"corporate-site/internal/domain/snippets"

	"github.com/gin-gonic/gin"
)

// GET /admin/dashboard
func Dashboard(c *gin.Context) {
	db := database.DB
	stats := Stats{PagesPerKind: map[string]int64{}, Snippets: map[string]int64{}}

	if err := db.Model(&pages.Page{}).Where("depth > ?", 1).Count(&stats.Pages).Error; err != nil {
		respondError(c, "load stats", err)
		return
	}
	if err := db.Model(&pages.Page{}).Where("depth > ? AND live = ?", 1, true).Count(&stats.LivePages).Error; err != nil {
		respondError(c, "load stats", err)
		return
	}

	var perKind []struct {
		Kind  string
		Count int64
	}
	if err := db.Model(&pages.Page{}).Select("kind, COUNT(*) AS count").
		Where("depth > ?", 1).Group("kind").Scan(&perKind).Error; err != nil {
		respondError(c, "load stats", err)
		return
	}
	for _, k := range perKind {
		stats.PagesPerKind[k.Kind] = k.Count
	}

	counts := []struct {
		key   string
		model any
		dst   *int64
	}{
		{"carousel_items", &snippets.CarouselItem{}, nil},
		{"head_images", &snippets.HeadImage{}, nil},
		{"adverts", &snippets.Advert{}, nil},
		{"product_types", &snippets.ProductType{}, nil},
		{"images", &media.Image{}, &stats.Images},
		{"documents", &media.Document{}, &stats.Documents},
	}
	for _, cnt := range counts {
		var n int64
		if err := db.Model(cnt.model).Count(&n).Error; err != nil {
			respondError(c, "load stats", err)
			return
		}
		if cnt.dst != nil {
			*cnt.dst = n
		} else {
			stats.Snippets[cnt.key] = n
		}
	}

	c.JSON(http.StatusOK, stats)
}

// GET /admin/kinds
// Creatable page kinds and the category choices editors pick from.
func Kinds(c *gin.Context) {
	lang := categories.MatchLanguage(c.GetHeader("Accept-Language"))
	productTypes, err := categories.ProductTypes(database.DB)
	if err != nil {
		respondError(c, "load kinds", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"kinds":         pages.VerboseNames,
		"news_types":    categories.NewsTypes.Choices(lang),
		"intro_types":   categories.IntroTypes.Choices(lang),
		"product_types": productTypes,
	})
}

// GET /admin/sites
func ListSites(c *gin.Context) {
	var sites []pages.Site
	if err := database.DB.Order("id ASC").Find(&sites).Error; err != nil {
		respondError(c, "load sites", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"sites": sites})
}
