package routing_test

import (
	"testing"

	"corporate-site/internal/domain/pages"
	"corporate-site/internal/domain/routing"
	"corporate-site/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type tree struct {
	home     *pages.Page
	products *pages.Page
	about    *pages.Page
	draft    *pages.Page
}

func buildTree(t *testing.T, db *gorm.DB) tree {
	t.Helper()
	root := testutil.Root(t, db)
	home := testutil.AddPage(t, db, root, pages.KindHome, "Home", true, &pages.HomePage{})

	products := testutil.AddPage(t, db, home, pages.KindProductIndex, "Products", true, nil)
	testutil.AddPage(t, db, products, pages.KindProduct, "Filter A", true, &pages.ProductPage{Type: 1})
	testutil.AddPage(t, db, products, pages.KindProduct, "Filter B", true, &pages.ProductPage{Type: 2})
	testutil.AddPage(t, db, products, pages.KindProduct, "Filter C", true, &pages.ProductPage{Type: 1})
	testutil.AddPage(t, db, products, pages.KindProduct, "Hidden", false, &pages.ProductPage{Type: 1})

	news := testutil.AddPage(t, db, home, pages.KindNewsIndex, "News", true, nil)
	testutil.AddPage(t, db, news, pages.KindNews, "Expo", true, &pages.NewsPage{Type: 1})
	testutil.AddPage(t, db, news, pages.KindNews, "Coating", true, &pages.NewsPage{Type: 2})

	about := testutil.AddPage(t, db, home, pages.KindIntro, "About", true, &pages.IntroPage{Type: 1, Content: "<p>profile</p>"})
	testutil.AddPage(t, db, about, pages.KindIntro, "Culture", true, &pages.IntroPage{Type: 4, Content: "<p>culture</p>"})
	draft := testutil.AddPage(t, db, home, pages.KindIntro, "Draft", false, &pages.IntroPage{Type: 2})

	return tree{home: home, products: products, about: about, draft: draft}
}

func TestSplitPath(t *testing.T) {
	assert.Equal(t, []string{"products", "type", "2"}, routing.SplitPath("/products//type/2/"))
	assert.Empty(t, routing.SplitPath("/"))
}

func TestRouteDefault(t *testing.T) {
	db := testutil.NewDB(t)
	tr := buildTree(t, db)

	res, err := routing.Route(db, tr.home, nil)
	require.NoError(t, err)
	assert.Equal(t, tr.home.ID, res.Page.ID)

	res, err = routing.Route(db, tr.home, []string{"products", "filter-b"})
	require.NoError(t, err)
	assert.Equal(t, "Filter B", res.Page.Title)

	_, err = routing.Route(db, tr.home, []string{"products", "hidden"})
	assert.ErrorIs(t, err, routing.ErrNotFound)

	_, err = routing.Route(db, tr.home, []string{"missing"})
	assert.ErrorIs(t, err, routing.ErrNotFound)
}

func TestRouteIndexFiltersByType(t *testing.T) {
	db := testutil.NewDB(t)
	tr := buildTree(t, db)

	res, err := routing.Route(db, tr.home, []string{"products", "type", "1"})
	require.NoError(t, err)
	assert.Equal(t, tr.products.ID, res.Page.ID)
	require.NotNil(t, res.Category)
	assert.Equal(t, 1, *res.Category)

	filtered, err := pages.ProductListing(db, res.Page, res.Category)
	require.NoError(t, err)
	var titles []string
	for _, p := range filtered {
		titles = append(titles, p.Page.Title)
		assert.Equal(t, 1, p.Type)
	}
	assert.Equal(t, []string{"Filter A", "Filter C"}, titles)

	res, err = routing.Route(db, tr.home, []string{"products"})
	require.NoError(t, err)
	assert.Nil(t, res.Category)
	all, err := pages.ProductListing(db, res.Page, res.Category)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	res, err = routing.Route(db, tr.home, []string{"news", "type", "2"})
	require.NoError(t, err)
	news, err := pages.NewsListing(db, res.Page, res.Category)
	require.NoError(t, err)
	require.Len(t, news, 1)
	assert.Equal(t, "Coating", news[0].Page.Title)

	res, err = routing.Route(db, tr.home, []string{"news", "type", "3"})
	require.NoError(t, err)
	news, err = pages.NewsListing(db, res.Page, res.Category)
	require.NoError(t, err)
	assert.Empty(t, news)
}

func TestRouteIndexTypeNeedsIntegerValue(t *testing.T) {
	db := testutil.NewDB(t)
	tr := buildTree(t, db)

	_, err := routing.Route(db, tr.home, []string{"products", "type"})
	assert.ErrorIs(t, err, routing.ErrNotFound)

	_, err = routing.Route(db, tr.home, []string{"products", "type", "abc"})
	assert.ErrorIs(t, err, routing.ErrNotFound)
}

func TestRouteIntro(t *testing.T) {
	db := testutil.NewDB(t)
	tr := buildTree(t, db)

	res, err := routing.Route(db, tr.home, []string{"about"})
	require.NoError(t, err)
	assert.Equal(t, tr.about.ID, res.Page.ID)
	assert.Nil(t, res.ContentOverride)

	res, err = routing.Route(db, tr.home, []string{"about", "type", "4"})
	require.NoError(t, err)
	assert.Equal(t, tr.about.ID, res.Page.ID)
	require.NotNil(t, res.ContentOverride)
	assert.Equal(t, "<p>culture</p>", *res.ContentOverride)

	res, err = routing.Route(db, tr.home, []string{"about", "type", "3"})
	require.NoError(t, err)
	require.NotNil(t, res.ContentOverride)
	assert.Empty(t, *res.ContentOverride)

	// any other component is served by the intro page itself
	res, err = routing.Route(db, tr.home, []string{"about", "culture"})
	require.NoError(t, err)
	assert.Equal(t, tr.about.ID, res.Page.ID)
	assert.Equal(t, []string{"culture"}, res.Args)
}

func TestRouteUnpublishedIntroIsNotFound(t *testing.T) {
	db := testutil.NewDB(t)
	tr := buildTree(t, db)

	_, err := routing.Route(db, tr.home, []string{"draft"})
	assert.ErrorIs(t, err, routing.ErrNotFound)

	_, err = routing.Route(db, tr.draft, nil)
	assert.ErrorIs(t, err, routing.ErrNotFound)
}
