package admin

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"corporate-site/database"
	"corporate-site/internal/domain/pages"
	"corporate-site/internal/domain/snippets"
	"corporate-site/internal/tags"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func loadPage(c *gin.Context) (*pages.Page, bool) {
	id, ok := idParam(c, "id")
	if !ok {
		return nil, false
	}
	p, err := pages.Get(database.DB, id)
	if err != nil {
		respondError(c, "load page", err)
		return nil, false
	}
	return p, true
}

func pageDetail(db *gorm.DB, p *pages.Page) (PageDetail, error) {
	s, err := pages.LoadSpecific(db, p)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		s, err = pages.NewSpecific(p.Kind), nil
	}
	if err != nil {
		return PageDetail{}, err
	}
	return PageDetail{Page: *p, Fields: s}, nil
}

// GET /admin/pages/root
func GetRootPage(c *gin.Context) {
	root, err := pages.Root(database.DB)
	if err != nil {
		respondError(c, "load tree root", err)
		return
	}
	c.JSON(http.StatusOK, PageDetail{Page: *root})
}

// GET /admin/pages/:id
func GetPage(c *gin.Context) {
	p, ok := loadPage(c)
	if !ok {
		return
	}
	detail, err := pageDetail(database.DB, p)
	if err != nil {
		respondError(c, "load page", err)
		return
	}
	c.JSON(http.StatusOK, detail)
}

// GET /admin/pages/:id/children
// Drafts are included; editors see the whole tree.
func ListChildren(c *gin.Context) {
	p, ok := loadPage(c)
	if !ok {
		return
	}
	var children []pages.Page
	if err := pages.Children(database.DB, p).Find(&children).Error; err != nil {
		respondError(c, "load children", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"pages": children})
}

// GET /admin/pages/:id/ancestors
func PageAncestors(c *gin.Context) {
	p, ok := loadPage(c)
	if !ok {
		return
	}
	var ancestors []pages.Page
	if err := pages.Ancestors(database.DB, p, false).Find(&ancestors).Error; err != nil {
		respondError(c, "load ancestors", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"pages": ancestors})
}

// POST /admin/pages/:id/children
func CreateChild(c *gin.Context) {
	var req CreatePageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !pages.ValidKind(req.Kind) {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("Unknown page kind %q", req.Kind)})
		return
	}
	parent, ok := loadPage(c)
	if !ok {
		return
	}

	child := &pages.Page{Kind: req.Kind, Title: req.Title, Live: req.Live}
	applyPageFields(child, req.PageFields)

	var detail PageDetail
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		specific := pages.NewSpecific(req.Kind)
		if err := applyFields(tx, specific, req.PageFields); err != nil {
			return err
		}
		if err := pages.AddChild(tx, parent, child); err != nil {
			return err
		}
		if err := pages.SaveSpecific(tx, child.ID, specific); err != nil {
			return err
		}
		detail = PageDetail{Page: *child, Fields: specific}
		return nil
	})
	if err != nil {
		respondError(c, "create page", err)
		return
	}
	c.JSON(http.StatusCreated, detail)
}

func applyPageFields(p *pages.Page, f PageFields) {
	if f.Slug != nil {
		p.Slug = *f.Slug
	}
	if f.ShowInMenus != nil {
		p.ShowInMenus = *f.ShowInMenus
	}
	if f.SeoTitle != nil {
		p.SeoTitle = *f.SeoTitle
	}
	if f.SearchDescription != nil {
		p.SearchDescription = *f.SearchDescription
	}
}

// PUT /admin/pages/:id
func UpdatePage(c *gin.Context) {
	var req UpdatePageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	p, ok := loadPage(c)
	if !ok {
		return
	}
	if p.IsRoot() {
		respondError(c, "update page", pages.ErrRootPage)
		return
	}
	if req.Title != nil && strings.TrimSpace(*req.Title) == "" {
		respondError(c, "update page", fmt.Errorf("%w: title is required", pages.ErrInvalidField))
		return
	}

	var detail PageDetail
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		current, err := pageDetail(tx, p)
		if err != nil {
			return err
		}
		if err := applyFields(tx, current.Fields, req.PageFields); err != nil {
			return err
		}

		updates := map[string]interface{}{}
		if req.Title != nil {
			updates["title"] = *req.Title
			p.Title = *req.Title
		}
		if req.ShowInMenus != nil {
			updates["show_in_menus"] = *req.ShowInMenus
		}
		if req.SeoTitle != nil {
			updates["seo_title"] = *req.SeoTitle
		}
		if req.SearchDescription != nil {
			updates["search_description"] = *req.SearchDescription
		}
		if len(updates) > 0 {
			if err := tx.Model(&pages.Page{}).Where("id = ?", p.ID).Updates(updates).Error; err != nil {
				return err
			}
		}
		if req.Slug != nil {
			if err := pages.SetSlug(tx, p, *req.Slug); err != nil {
				return err
			}
		}
		if err := pages.SaveSpecific(tx, p.ID, current.Fields); err != nil {
			return err
		}

		fresh, err := pages.Get(tx, p.ID)
		if err != nil {
			return err
		}
		detail, err = pageDetail(tx, fresh)
		return err
	})
	if err != nil {
		respondError(c, "update page", err)
		return
	}
	c.JSON(http.StatusOK, detail)
}

// POST /admin/pages/:id/publish
func PublishPage(c *gin.Context) {
	setLive(c, true)
}

// POST /admin/pages/:id/unpublish
func UnpublishPage(c *gin.Context) {
	setLive(c, false)
}

func setLive(c *gin.Context, live bool) {
	p, ok := loadPage(c)
	if !ok {
		return
	}
	if p.IsRoot() {
		respondError(c, "publish page", pages.ErrRootPage)
		return
	}
	if err := pages.SetLive(database.DB, p, live); err != nil {
		respondError(c, "publish page", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"page": p})
}

// DELETE /admin/pages/:id
// Removes the whole subtree and releases snippet references to it.
func DeletePage(c *gin.Context) {
	p, ok := loadPage(c)
	if !ok {
		return
	}
	if p.IsRoot() {
		respondError(c, "delete page", pages.ErrRootPage)
		return
	}

	var removed []uint
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		ids, err := pages.SubtreeIDs(tx, p)
		if err != nil {
			return err
		}
		if err := snippets.ForgetPages(tx, ids); err != nil {
			return err
		}
		removed, err = pages.DeleteSubtree(tx, p)
		return err
	})
	if err != nil {
		respondError(c, "delete page", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": removed})
}

// GET /admin/pages/:id/adverts
func ListPlacements(c *gin.Context) {
	p, ok := loadPage(c)
	if !ok {
		return
	}
	h := tags.New(database.DB, nil, tags.Options{})
	out, err := h.PlacedAdverts(p.ID)
	if err != nil {
		respondError(c, "load placements", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"adverts": out})
}

// POST /admin/pages/:id/adverts
func PlaceAdvert(c *gin.Context) {
	var req PlacementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	p, ok := loadPage(c)
	if !ok {
		return
	}
	if err := mustExist(database.DB, &snippets.Advert{}, &req.AdvertID, "advert"); err != nil {
		respondError(c, "place advert", err)
		return
	}
	pl, err := snippets.Place(database.DB, p.ID, req.AdvertID)
	if err != nil {
		respondError(c, "place advert", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": pl.ID, "page_id": pl.PageID, "advert_id": pl.AdvertID})
}

// DELETE /admin/pages/:id/adverts/:advertId
func RemovePlacement(c *gin.Context) {
	pageID, ok := idParam(c, "id")
	if !ok {
		return
	}
	advertID, ok := idParam(c, "advertId")
	if !ok {
		return
	}
	res := database.DB.Where("page_id = ? AND advert_id = ?", pageID, advertID).Delete(&snippets.AdvertPlacement{})
	if res.Error != nil {
		respondError(c, "remove placement", res.Error)
		return
	}
	if res.RowsAffected == 0 {
		respondError(c, "remove placement", gorm.ErrRecordNotFound)
		return
	}
	c.Status(http.StatusNoContent)
}
