package admin

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"corporate-site/internal/domain/admins"
	"corporate-site/internal/domain/media"
	"corporate-site/internal/domain/pages"
	"corporate-site/internal/domain/snippets"
	"corporate-site/internal/infra/uploads"
	"corporate-site/internal/testutil"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type harness struct {
	db     *gorm.DB
	router *gin.Engine
	root   *pages.Page
	files  *uploads.Store
}

func newHarness(t *testing.T) harness {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testutil.NewDB(t)
	testutil.UseGlobalDB(t, db)
	files := uploads.New(t.TempDir())

	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("admin_id", uint(99))
		c.Next()
	})
	r.GET("/admin/dashboard", Dashboard)
	r.GET("/admin/kinds", Kinds)
	r.GET("/admin/pages/:id", GetPage)
	r.GET("/admin/pages/:id/children", ListChildren)
	r.POST("/admin/pages/:id/children", CreateChild)
	r.PUT("/admin/pages/:id", UpdatePage)
	r.POST("/admin/pages/:id/publish", PublishPage)
	r.POST("/admin/pages/:id/unpublish", UnpublishPage)
	r.DELETE("/admin/pages/:id", DeletePage)
	r.GET("/admin/pages/:id/adverts", ListPlacements)
	r.POST("/admin/pages/:id/adverts", PlaceAdvert)
	r.DELETE("/admin/pages/:id/adverts/:advertId", RemovePlacement)
	r.POST("/admin/carousels", CreateCarousel)
	r.PUT("/admin/carousels/:id", UpdateCarousel)
	r.DELETE("/admin/carousels/:id", DeleteCarousel)
	r.POST("/admin/product-types", CreateProductType)
	r.DELETE("/admin/product-types/:id", DeleteProductType)
	r.POST("/admin/adverts", CreateAdvert)
	r.DELETE("/admin/adverts/:id", DeleteAdvert)

	m := &MediaHandlers{Files: files}
	r.POST("/admin/images/upload", m.UploadImage)
	r.DELETE("/admin/images/:id", m.DeleteImage)
	r.POST("/admin/documents/upload", m.UploadDocument)
	r.DELETE("/admin/documents/:id", m.DeleteDocument)

	r.POST("/admin/accounts", CreateAccount)
	r.POST("/admin/accounts/:id/deactivate", DeactivateAccount)

	return harness{db: db, router: r, root: testutil.Root(t, db), files: files}
}

func (h harness) do(t *testing.T, method, path string, body any) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.router.ServeHTTP(w, req)

	out := map[string]any{}
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	}
	return w, out
}

func (h harness) upload(t *testing.T, path, filename, title string, content []byte) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField("title", title))
	fw, err := mw.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = fw.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	h.router.ServeHTTP(w, req)

	out := map[string]any{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return w, out
}

func pageID(t *testing.T, body map[string]any) uint {
	t.Helper()
	page, ok := body["page"].(map[string]any)
	require.True(t, ok, "response has no page: %v", body)
	return uint(page["id"].(float64))
}

func TestPageLifecycle(t *testing.T) {
	h := newHarness(t)

	w, body := h.do(t, http.MethodPost, fmt.Sprintf("/admin/pages/%d/children", h.root.ID), map[string]any{
		"kind": "home", "title": "Home", "live": true,
		"body": `<p>hello</p><script>alert(1)</script>`,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	homeID := pageID(t, body)
	fields := body["fields"].(map[string]any)
	assert.Equal(t, "<p>hello</p>", fields["body"])

	w, body = h.do(t, http.MethodPost, fmt.Sprintf("/admin/pages/%d/children", homeID), map[string]any{
		"kind": "news_index", "title": "News", "live": true,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	indexID := pageID(t, body)

	w, body = h.do(t, http.MethodPost, fmt.Sprintf("/admin/pages/%d/children", indexID), map[string]any{
		"kind": "news", "title": "Expo 2024", "type": 1,
		"format": "markdown", "content": "**big** news",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	newsID := pageID(t, body)
	page := body["page"].(map[string]any)
	assert.Equal(t, "/home/news/expo-2024/", page["url_path"])
	assert.Equal(t, false, page["live"])
	assert.Contains(t, body["fields"].(map[string]any)["content"], "<strong>big</strong>")

	w, body = h.do(t, http.MethodPut, fmt.Sprintf("/admin/pages/%d", indexID), map[string]any{
		"title": "Newsroom", "slug": "newsroom",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "Newsroom", body["page"].(map[string]any)["title"])

	news, err := pages.Get(h.db, newsID)
	require.NoError(t, err)
	assert.Equal(t, "/home/newsroom/expo-2024/", news.URLPath)

	w, body = h.do(t, http.MethodPost, fmt.Sprintf("/admin/pages/%d/publish", newsID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, body["page"].(map[string]any)["live"])

	w, _ = h.do(t, http.MethodPost, fmt.Sprintf("/admin/pages/%d/unpublish", newsID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	news, err = pages.Get(h.db, newsID)
	require.NoError(t, err)
	assert.False(t, news.Live)
	assert.NotNil(t, news.FirstPublishedAt)

	w, body = h.do(t, http.MethodDelete, fmt.Sprintf("/admin/pages/%d", indexID), nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Len(t, body["deleted"], 2)

	_, err = pages.Get(h.db, newsID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	var rows int64
	require.NoError(t, h.db.Model(&pages.NewsPage{}).Count(&rows).Error)
	assert.Zero(t, rows)
}

func TestCreatePageValidation(t *testing.T) {
	h := newHarness(t)
	home := testutil.AddPage(t, h.db, h.root, pages.KindHome, "Home", true, nil)
	url := fmt.Sprintf("/admin/pages/%d/children", home.ID)

	cases := []struct {
		name string
		body map[string]any
		want int
	}{
		{"unknown kind", map[string]any{"kind": "blog", "title": "Blog"}, http.StatusBadRequest},
		{"missing title", map[string]any{"kind": "news"}, http.StatusBadRequest},
		{"bad news type", map[string]any{"kind": "news", "title": "A", "type": 9}, http.StatusBadRequest},
		{"bad intro type", map[string]any{"kind": "intro", "title": "A", "type": 0}, http.StatusBadRequest},
		{"unknown product type", map[string]any{"kind": "product", "title": "A", "type": 3}, http.StatusBadRequest},
		{"unknown format", map[string]any{"kind": "news", "title": "A", "type": 1, "format": "rst", "content": "x"}, http.StatusBadRequest},
		{"missing image", map[string]any{"kind": "news", "title": "A", "type": 1, "image_id": 42}, http.StatusBadRequest},
		{"bad contact email", map[string]any{"kind": "contact", "title": "A", "contact": map[string]any{"email": "nope"}}, http.StatusBadRequest},
		{"missing parent", map[string]any{"kind": "news", "title": "A", "type": 1}, http.StatusNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			target := url
			if tc.want == http.StatusNotFound {
				target = "/admin/pages/999/children"
			}
			w, body := h.do(t, http.MethodPost, target, tc.body)
			assert.Equal(t, tc.want, w.Code, w.Body.String())
			assert.NotEmpty(t, body["error"])
		})
	}

	var count int64
	require.NoError(t, h.db.Model(&pages.Page{}).Count(&count).Error)
	assert.EqualValues(t, 2, count)
}

func TestUpdatePageRejectsBlankTitle(t *testing.T) {
	h := newHarness(t)
	home := testutil.AddPage(t, h.db, h.root, pages.KindHome, "Home", true, nil)

	for _, title := range []string{"", "   "} {
		w, body := h.do(t, http.MethodPut, fmt.Sprintf("/admin/pages/%d", home.ID), map[string]any{"title": title})
		assert.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
		assert.NotEmpty(t, body["error"])
	}

	stored, err := pages.Get(h.db, home.ID)
	require.NoError(t, err)
	assert.Equal(t, "Home", stored.Title)

	w, body := h.do(t, http.MethodPut, fmt.Sprintf("/admin/pages/%d", home.ID), map[string]any{"title": "Welcome"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "Welcome", body["page"].(map[string]any)["title"])
}

func TestUpdateHeadImageKeepsCreatedAt(t *testing.T) {
	h := newHarness(t)
	h.router.POST("/admin/head-images", CreateHeadImage)
	h.router.PUT("/admin/head-images/:id", UpdateHeadImage)

	w, body := h.do(t, http.MethodPost, "/admin/head-images", map[string]any{"caption": "产品中心"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	id := uint(body["id"].(float64))
	createdAt := body["created_at"]

	w, body = h.do(t, http.MethodPut, fmt.Sprintf("/admin/head-images/%d", id), map[string]any{"caption": "新闻中心"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "新闻中心", body["caption"])
	assertSameTime(t, createdAt, body["created_at"])
}

func assertSameTime(t *testing.T, want, got any) {
	t.Helper()
	wantT, err := time.Parse(time.RFC3339Nano, want.(string))
	require.NoError(t, err)
	gotT, err := time.Parse(time.RFC3339Nano, got.(string))
	require.NoError(t, err)
	assert.False(t, gotT.IsZero())
	assert.WithinDuration(t, wantT, gotT, time.Millisecond)
}

func TestSlugConflictAndRoot(t *testing.T) {
	h := newHarness(t)
	home := testutil.AddPage(t, h.db, h.root, pages.KindHome, "Home", true, nil)
	testutil.AddPage(t, h.db, home, pages.KindContact, "Contact", true, nil)
	other := testutil.AddPage(t, h.db, home, pages.KindProductIndex, "Products", true, nil)

	w, _ := h.do(t, http.MethodPost, fmt.Sprintf("/admin/pages/%d/children", home.ID), map[string]any{
		"kind": "contact", "title": "Contact",
	})
	assert.Equal(t, http.StatusConflict, w.Code)

	w, _ = h.do(t, http.MethodPut, fmt.Sprintf("/admin/pages/%d", other.ID), map[string]any{"slug": "contact"})
	assert.Equal(t, http.StatusConflict, w.Code)

	w, _ = h.do(t, http.MethodDelete, fmt.Sprintf("/admin/pages/%d", h.root.ID), nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = h.do(t, http.MethodGet, "/admin/pages/abc", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestProductTypeInUse(t *testing.T) {
	h := newHarness(t)
	home := testutil.AddPage(t, h.db, h.root, pages.KindHome, "Home", true, nil)
	index := testutil.AddPage(t, h.db, home, pages.KindProductIndex, "Products", true, nil)

	w, body := h.do(t, http.MethodPost, "/admin/product-types", map[string]any{"typename": "脱硝装备"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	typeID := int(body["id"].(float64))

	w, _ = h.do(t, http.MethodPost, fmt.Sprintf("/admin/pages/%d/children", index.ID), map[string]any{
		"kind": "product", "title": "SCR reactor", "type": typeID, "live": true,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w, _ = h.do(t, http.MethodDelete, fmt.Sprintf("/admin/product-types/%d", typeID), nil)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestAdvertPlacementReleasedOnPageDelete(t *testing.T) {
	h := newHarness(t)
	home := testutil.AddPage(t, h.db, h.root, pages.KindHome, "Home", true, nil)
	promo := testutil.AddPage(t, h.db, home, pages.KindProject, "Promo", true, nil)

	w, body := h.do(t, http.MethodPost, "/admin/adverts", map[string]any{
		"text": "See our projects", "page_id": promo.ID,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	advertID := uint(body["id"].(float64))

	w, _ = h.do(t, http.MethodPost, fmt.Sprintf("/admin/pages/%d/adverts", promo.ID), map[string]any{"advert_id": advertID})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	w, _ = h.do(t, http.MethodPost, fmt.Sprintf("/admin/pages/%d/adverts", promo.ID), map[string]any{"advert_id": 999})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, body = h.do(t, http.MethodGet, fmt.Sprintf("/admin/pages/%d/adverts", promo.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, body["adverts"], 1)

	w, _ = h.do(t, http.MethodDelete, fmt.Sprintf("/admin/pages/%d", promo.ID), nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var advert snippets.Advert
	require.NoError(t, h.db.First(&advert, advertID).Error)
	assert.Nil(t, advert.PageID)
	var placements int64
	require.NoError(t, h.db.Model(&snippets.AdvertPlacement{}).Count(&placements).Error)
	assert.Zero(t, placements)

	w, _ = h.do(t, http.MethodDelete, fmt.Sprintf("/admin/adverts/%d", advertID), nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestCarouselCRUD(t *testing.T) {
	h := newHarness(t)

	w, _ := h.do(t, http.MethodPost, "/admin/carousels", map[string]any{"caption": "Factory", "image_id": 7})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	img := media.Image{Title: "factory", OriginalPath: "images/factory.jpg"}
	require.NoError(t, h.db.Create(&img).Error)

	w, body := h.do(t, http.MethodPost, "/admin/carousels", map[string]any{
		"caption": "Factory", "image_id": img.ID, "link_external": "https://example.com",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	id := uint(body["id"].(float64))
	createdAt := body["created_at"]

	w, body = h.do(t, http.MethodPut, fmt.Sprintf("/admin/carousels/%d", id), map[string]any{
		"caption": "New factory", "image_id": img.ID,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "New factory", body["caption"])
	assertSameTime(t, createdAt, body["created_at"])

	w, _ = h.do(t, http.MethodPut, "/admin/carousels/999", map[string]any{"caption": "x"})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, _ = h.do(t, http.MethodDelete, fmt.Sprintf("/admin/carousels/%d", id), nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestImageUploadAndDelete(t *testing.T) {
	h := newHarness(t)
	home := testutil.AddPage(t, h.db, h.root, pages.KindHome, "Home", true, nil)

	w, _ := h.upload(t, "/admin/images/upload", "tool.exe", "", []byte("MZ"))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, body := h.upload(t, "/admin/images/upload", "plant.png", "", []byte("\x89PNG"))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, "plant", body["title"])
	rel := body["original_path"].(string)
	assert.True(t, strings.HasPrefix(rel, "images/"))
	_, err := os.Stat(filepath.Join(h.files.Dir, filepath.FromSlash(rel)))
	require.NoError(t, err)

	imageID := uint(body["id"].(float64))
	newsPage := testutil.AddPage(t, h.db, home, pages.KindNews, "With image", true, &pages.NewsPage{Type: 1, ImageID: &imageID})
	require.NoError(t, h.db.Create(&snippets.HeadImage{ImageID: &imageID, Caption: "banner"}).Error)

	w, _ = h.do(t, http.MethodDelete, fmt.Sprintf("/admin/images/%d", imageID), nil)
	require.Equal(t, http.StatusNoContent, w.Code)

	_, err = os.Stat(filepath.Join(h.files.Dir, filepath.FromSlash(rel)))
	assert.True(t, os.IsNotExist(err))

	var news pages.NewsPage
	require.NoError(t, h.db.First(&news, "page_id = ?", newsPage.ID).Error)
	assert.Nil(t, news.ImageID)
	var head snippets.HeadImage
	require.NoError(t, h.db.First(&head).Error)
	assert.Nil(t, head.ImageID)
}

func TestDocumentUploadAndDelete(t *testing.T) {
	h := newHarness(t)

	w, body := h.upload(t, "/admin/documents/upload", "brochure.pdf", "Brochure", []byte("%PDF"))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	docID := uint(body["id"].(float64))

	item := snippets.CarouselItem{Caption: "Download", LinkDocumentID: &docID}
	require.NoError(t, h.db.Omit("Image", "LinkPage", "LinkDocument").Create(&item).Error)

	w, _ = h.do(t, http.MethodDelete, fmt.Sprintf("/admin/documents/%d", docID), nil)
	require.Equal(t, http.StatusNoContent, w.Code)

	require.NoError(t, h.db.First(&item, item.ID).Error)
	assert.Nil(t, item.LinkDocumentID)

	w, _ = h.do(t, http.MethodDelete, fmt.Sprintf("/admin/documents/%d", docID), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAccounts(t *testing.T) {
	h := newHarness(t)

	w, _ := h.do(t, http.MethodPost, "/admin/accounts", map[string]any{
		"name": "Wang", "email": "wang@example.com", "password": "short", "role": "editor",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = h.do(t, http.MethodPost, "/admin/accounts", map[string]any{
		"name": "Wang", "email": "wang@example.com", "password": "longenough1", "role": "owner",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, body := h.do(t, http.MethodPost, "/admin/accounts", map[string]any{
		"name": "Wang", "email": "Wang@Example.com", "password": "longenough1", "role": "editor",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, "wang@example.com", body["email"])
	assert.Equal(t, admins.ProviderLocal, body["auth_provider"])
	id := uint(body["id"].(float64))

	w, _ = h.do(t, http.MethodPost, "/admin/accounts", map[string]any{
		"name": "Wang", "email": "wang@example.com", "role": "editor",
	})
	assert.Equal(t, http.StatusConflict, w.Code)

	w, _ = h.do(t, http.MethodPost, "/admin/accounts/99/deactivate", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = h.do(t, http.MethodPost, fmt.Sprintf("/admin/accounts/%d/deactivate", id), nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	var a admins.Admin
	require.NoError(t, h.db.First(&a, id).Error)
	assert.False(t, a.Active)
}

func TestDashboardAndKinds(t *testing.T) {
	h := newHarness(t)
	home := testutil.AddPage(t, h.db, h.root, pages.KindHome, "Home", true, nil)
	testutil.AddPage(t, h.db, home, pages.KindNews, "Draft", false, &pages.NewsPage{Type: 2})
	require.NoError(t, h.db.Create(&snippets.ProductType{TypeName: "除尘"}).Error)

	w, body := h.do(t, http.MethodGet, "/admin/dashboard", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.EqualValues(t, 2, body["pages"])
	assert.EqualValues(t, 1, body["live_pages"])
	assert.EqualValues(t, 1, body["pages_per_kind"].(map[string]any)["news"])
	assert.EqualValues(t, 1, body["snippets"].(map[string]any)["product_types"])

	w, body = h.do(t, http.MethodGet, "/admin/kinds", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, body["kinds"], "news")
	assert.Len(t, body["news_types"], 2)
	assert.Len(t, body["product_types"], 1)
}
