package siteapi

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"corporate-site/config"
	"corporate-site/database"
	"corporate-site/internal/domain/categories"
	"corporate-site/internal/domain/pages"
	"corporate-site/internal/domain/routing"
	"corporate-site/internal/infra/logging"
	"corporate-site/internal/tags"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/text/language"
	"gorm.io/gorm"
)

// GET /api/site/*path
func ServePage(c *gin.Context) {
	site, h, ok := resolve(c)
	if !ok {
		return
	}
	db := database.DB

	res, err := routing.Route(db, &site.RootPage, routing.SplitPath(c.Param("path")))
	if errors.Is(err, routing.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Page not found"})
		return
	}
	if err != nil {
		serverError(c, "route page", err)
		return
	}

	lang := requestLanguage(c)
	dto, err := pageDTO(db, h, res)
	if err != nil {
		serverError(c, "load page", err)
		return
	}

	resp := PageResponse{
		Page:     dto,
		Args:     res.Args,
		Category: res.Category,
		Lang:     lang.String(),
	}
	if err := listing(db, h, res, lang, &resp); err != nil {
		serverError(c, "load listing", err)
		return
	}
	if res.Page.Kind == pages.KindIntro {
		resp.BaseURL = config.Current.IntroBaseURL
	}
	if resp.Breadcrumbs, err = h.Breadcrumbs(res.Page); err != nil {
		serverError(c, "load breadcrumbs", err)
		return
	}
	if resp.Adverts, err = h.PlacedAdverts(res.Page.ID); err != nil {
		serverError(c, "load adverts", err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// resolve finds the site for the request host and builds its helpers.
func resolve(c *gin.Context) (*pages.Site, *tags.Helpers, bool) {
	site, err := pages.ResolveSite(database.DB, c.Request.Host)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Site not found"})
		return nil, nil, false
	}
	if err != nil {
		serverError(c, "resolve site", err)
		return nil, nil, false
	}
	h := tags.New(database.DB, site, tags.Options{
		GoogleMapsKey: config.Current.GoogleMapsKey,
		MediaURL:      config.Current.MediaURL,
	})
	return site, h, true
}

func requestLanguage(c *gin.Context) language.Tag {
	if lang := strings.TrimSpace(c.Query("lang")); lang != "" {
		return categories.MatchLanguage(lang)
	}
	return categories.MatchLanguage(c.GetHeader("Accept-Language"))
}

// pageParam loads the page named by a path or query parameter. Unpublished
// pages are hidden from the public API.
func pageParam(c *gin.Context, raw string) (*pages.Page, bool) {
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid page id"})
		return nil, false
	}
	p, err := pages.Get(database.DB, uint(id))
	if errors.Is(err, gorm.ErrRecordNotFound) || (err == nil && !p.Live) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Page not found"})
		return nil, false
	}
	if err != nil {
		serverError(c, "load page", err)
		return nil, false
	}
	return p, true
}

func serverError(c *gin.Context, op string, err error) {
	logging.From(c).Error(op+" failed", zap.Error(err), zap.String("path", c.Request.URL.Path))
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
}
