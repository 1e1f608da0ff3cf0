package siteapi

import (
	"net/http"

	"corporate-site/internal/domain/pages"

	"github.com/gin-gonic/gin"
)

// GET /api/fragments/settings
func Settings(c *gin.Context) {
	site, h, ok := resolve(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, SettingsResponse{
		SiteName:      site.SiteName,
		SiteRoot:      h.SiteRoot(),
		GoogleMapsKey: h.GoogleMapsKey(),
	})
}

// GET /api/fragments/top-menu?parent=<id>&calling=<id>
// parent defaults to the site root.
func TopMenu(c *gin.Context) {
	site, h, ok := resolve(c)
	if !ok {
		return
	}
	parent := &site.RootPage
	if raw := c.Query("parent"); raw != "" {
		if parent, ok = pageParam(c, raw); !ok {
			return
		}
	}
	var calling *pages.Page
	if raw := c.Query("calling"); raw != "" {
		if calling, ok = pageParam(c, raw); !ok {
			return
		}
	}

	items, err := h.TopMenu(parent, calling)
	if err != nil {
		serverError(c, "load top menu", err)
		return
	}
	c.JSON(http.StatusOK, MenuResponse{Items: items})
}

// GET /api/fragments/top-menu/:id/children
func TopMenuChildren(c *gin.Context) {
	_, h, ok := resolve(c)
	if !ok {
		return
	}
	parent, ok := pageParam(c, c.Param("id"))
	if !ok {
		return
	}
	links, err := h.TopMenuChildren(parent)
	if err != nil {
		serverError(c, "load menu children", err)
		return
	}
	c.JSON(http.StatusOK, LinksResponse{Pages: links})
}

// GET /api/fragments/listing/:id
func StandardIndexListing(c *gin.Context) {
	_, h, ok := resolve(c)
	if !ok {
		return
	}
	calling, ok := pageParam(c, c.Param("id"))
	if !ok {
		return
	}
	links, err := h.StandardIndexListing(calling)
	if err != nil {
		serverError(c, "load index listing", err)
		return
	}
	c.JSON(http.StatusOK, LinksResponse{Pages: links})
}

// GET /api/fragments/breadcrumbs/:id
func Breadcrumbs(c *gin.Context) {
	_, h, ok := resolve(c)
	if !ok {
		return
	}
	p, ok := pageParam(c, c.Param("id"))
	if !ok {
		return
	}
	links, err := h.Breadcrumbs(p)
	if err != nil {
		serverError(c, "load breadcrumbs", err)
		return
	}
	c.JSON(http.StatusOK, LinksResponse{Pages: links})
}

// GET /api/fragments/adverts
func Adverts(c *gin.Context) {
	_, h, ok := resolve(c)
	if !ok {
		return
	}
	out, err := h.Adverts()
	if err != nil {
		serverError(c, "load adverts", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"adverts": out})
}

// GET /api/fragments/carousels
func Carousels(c *gin.Context) {
	_, h, ok := resolve(c)
	if !ok {
		return
	}
	out, err := h.Carousels()
	if err != nil {
		serverError(c, "load carousels", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"carousels": out})
}

// GET /api/fragments/head-images
func HeadImages(c *gin.Context) {
	_, h, ok := resolve(c)
	if !ok {
		return
	}
	out, err := h.HeadImages()
	if err != nil {
		serverError(c, "load head images", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"head_images": out})
}

// GET /api/fragments/news-techs
func NewsTechs(c *gin.Context) {
	_, h, ok := resolve(c)
	if !ok {
		return
	}
	out, err := h.NewsTechs()
	if err != nil {
		serverError(c, "load news", err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// GET /api/fragments/intro
func Intro(c *gin.Context) {
	_, h, ok := resolve(c)
	if !ok {
		return
	}
	out, err := h.Intro()
	if err != nil {
		serverError(c, "load intro", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"intro": out})
}

// GET /api/fragments/contact
func Contact(c *gin.Context) {
	_, h, ok := resolve(c)
	if !ok {
		return
	}
	out, err := h.Contact()
	if err != nil {
		serverError(c, "load contact", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"contact": out})
}

// GET /api/fragments/scroll-products
func ScrollProducts(c *gin.Context) {
	_, h, ok := resolve(c)
	if !ok {
		return
	}
	out, err := h.ScrollProduct()
	if err != nil {
		serverError(c, "load products", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"products": out})
}
