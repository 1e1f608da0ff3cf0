package pages_test

import (
	"testing"

	"corporate-site/internal/domain/pages"
	"corporate-site/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddChildAllocatesPaths(t *testing.T) {
	db := testutil.NewDB(t)
	root := testutil.Root(t, db)
	assert.Equal(t, "0001", root.Path)
	assert.Equal(t, "/", root.URLPath)

	home := testutil.AddPage(t, db, root, pages.KindHome, "Home", true, &pages.HomePage{})
	assert.Equal(t, "00010001", home.Path)
	assert.Equal(t, 2, home.Depth)
	assert.Equal(t, "/home/", home.URLPath)
	assert.NotNil(t, home.FirstPublishedAt)

	a := testutil.AddPage(t, db, home, pages.KindProject, "Projects", true, nil)
	b := testutil.AddPage(t, db, home, pages.KindContact, "联系我们", false, &pages.ContactPage{})
	assert.Equal(t, "000100010001", a.Path)
	assert.Equal(t, "000100010002", b.Path)
	assert.Equal(t, "/home/lian-xi-wo-men/", b.URLPath)
	assert.Nil(t, b.FirstPublishedAt)

	reloaded, err := pages.Get(db, home.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, reloaded.NumChild)
}

func TestAddChildRejectsDuplicateSlug(t *testing.T) {
	db := testutil.NewDB(t)
	home := testutil.AddPage(t, db, testutil.Root(t, db), pages.KindHome, "Home", true, &pages.HomePage{})
	testutil.AddPage(t, db, home, pages.KindProject, "Projects", true, nil)

	err := pages.AddChild(db, home, &pages.Page{Kind: pages.KindProject, Title: "Projects"})
	assert.ErrorIs(t, err, pages.ErrSlugInUse)

	err = pages.AddChild(db, home, &pages.Page{Kind: pages.KindProject, Title: "  "})
	assert.ErrorIs(t, err, pages.ErrInvalidField)
}

func TestChildrenAndMenus(t *testing.T) {
	db := testutil.NewDB(t)
	home := testutil.AddPage(t, db, testutil.Root(t, db), pages.KindHome, "Home", true, &pages.HomePage{})
	products := testutil.AddPage(t, db, home, pages.KindProductIndex, "Products", true, nil)
	testutil.AddPage(t, db, home, pages.KindProject, "Draft", false, nil)

	var live []pages.Page
	require.NoError(t, pages.Children(db, home).Scopes(pages.Live, pages.InMenu).Find(&live).Error)
	require.Len(t, live, 1)
	assert.Equal(t, products.ID, live[0].ID)

	has, err := pages.HasMenuChildren(db, products)
	require.NoError(t, err)
	assert.False(t, has)

	testutil.AddPage(t, db, products, pages.KindProduct, "Dryer", true, &pages.ProductPage{Type: 1})
	has, err = pages.HasMenuChildren(db, products)
	require.NoError(t, err)
	assert.True(t, has)
}

func TestAncestors(t *testing.T) {
	db := testutil.NewDB(t)
	root := testutil.Root(t, db)
	home := testutil.AddPage(t, db, root, pages.KindHome, "Home", true, &pages.HomePage{})
	news := testutil.AddPage(t, db, home, pages.KindNewsIndex, "News", true, nil)
	item := testutil.AddPage(t, db, news, pages.KindNews, "Expo", true, &pages.NewsPage{Type: 1})

	var got []pages.Page
	require.NoError(t, pages.Ancestors(db, item, true).Find(&got).Error)
	require.Len(t, got, 4)
	assert.Equal(t, []uint{root.ID, home.ID, news.ID, item.ID}, ids(got))

	got = nil
	require.NoError(t, pages.Ancestors(db, item, false).Find(&got).Error)
	assert.Equal(t, []uint{root.ID, home.ID, news.ID}, ids(got))

	got = nil
	require.NoError(t, pages.Descendants(db, home, false).Find(&got).Error)
	assert.Equal(t, []uint{news.ID, item.ID}, ids(got))
}

func TestSetSlugRewritesSubtree(t *testing.T) {
	db := testutil.NewDB(t)
	home := testutil.AddPage(t, db, testutil.Root(t, db), pages.KindHome, "Home", true, &pages.HomePage{})
	news := testutil.AddPage(t, db, home, pages.KindNewsIndex, "News", true, nil)
	item := testutil.AddPage(t, db, news, pages.KindNews, "Expo", true, &pages.NewsPage{Type: 1})

	require.NoError(t, pages.SetSlug(db, news, "press"))
	assert.Equal(t, "/home/press/", news.URLPath)

	reloaded, err := pages.Get(db, item.ID)
	require.NoError(t, err)
	assert.Equal(t, "/home/press/expo/", reloaded.URLPath)

	assert.ErrorIs(t, pages.SetSlug(db, testutil.Root(t, db), "x"), pages.ErrRootPage)
}

func TestSetLive(t *testing.T) {
	db := testutil.NewDB(t)
	home := testutil.AddPage(t, db, testutil.Root(t, db), pages.KindHome, "Home", false, &pages.HomePage{})

	require.NoError(t, pages.SetLive(db, home, true))
	reloaded, err := pages.Get(db, home.ID)
	require.NoError(t, err)
	assert.True(t, reloaded.Live)
	assert.NotNil(t, reloaded.FirstPublishedAt)

	require.NoError(t, pages.SetLive(db, home, false))
	reloaded, err = pages.Get(db, home.ID)
	require.NoError(t, err)
	assert.False(t, reloaded.Live)
}

func TestDeleteSubtree(t *testing.T) {
	db := testutil.NewDB(t)
	root := testutil.Root(t, db)
	home := testutil.AddPage(t, db, root, pages.KindHome, "Home", true, &pages.HomePage{})
	products := testutil.AddPage(t, db, home, pages.KindProductIndex, "Products", true, nil)
	dryer := testutil.AddPage(t, db, products, pages.KindProduct, "Dryer", true, &pages.ProductPage{Type: 1})
	keep := testutil.AddPage(t, db, home, pages.KindProject, "Projects", true, nil)

	removed, err := pages.DeleteSubtree(db, products)
	require.NoError(t, err)
	assert.ElementsMatch(t, []uint{products.ID, dryer.ID}, removed)

	var count int64
	require.NoError(t, db.Model(&pages.ProductPage{}).Count(&count).Error)
	assert.Zero(t, count)

	_, err = pages.Get(db, keep.ID)
	assert.NoError(t, err)

	reloaded, err := pages.Get(db, home.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, reloaded.NumChild)

	_, err = pages.DeleteSubtree(db, root)
	assert.ErrorIs(t, err, pages.ErrRootPage)
}

func TestLoadSpecific(t *testing.T) {
	db := testutil.NewDB(t)
	home := testutil.AddPage(t, db, testutil.Root(t, db), pages.KindHome, "Home", true, &pages.HomePage{Body: "<p>hi</p>"})
	project := testutil.AddPage(t, db, home, pages.KindProject, "Projects", true, nil)

	s, err := pages.LoadSpecific(db, home)
	require.NoError(t, err)
	require.IsType(t, &pages.HomePage{}, s)
	assert.Equal(t, "<p>hi</p>", s.(*pages.HomePage).Body)

	s, err = pages.LoadSpecific(db, project)
	require.NoError(t, err)
	assert.Nil(t, s)
}

func TestSiteResolutionAndURL(t *testing.T) {
	db := testutil.NewDB(t)
	home := testutil.AddPage(t, db, testutil.Root(t, db), pages.KindHome, "Home", true, &pages.HomePage{})
	products := testutil.AddPage(t, db, home, pages.KindProductIndex, "Products", true, nil)
	testutil.AddSite(t, db, home)

	site, err := pages.ResolveSite(db, "unknown.example.com:8080")
	require.NoError(t, err)
	assert.Equal(t, home.ID, site.RootPage.ID)

	site, err = pages.ResolveSite(db, "LOCALHOST")
	require.NoError(t, err)
	assert.Equal(t, "/", site.URL(home))
	assert.Equal(t, "/products/", site.URL(products))
}

func TestContactFieldsValidate(t *testing.T) {
	assert.NoError(t, pages.ContactFields{Email: "sales@example.com", PostCode: "100000"}.Validate())
	assert.ErrorIs(t, pages.ContactFields{Email: "nope"}.Validate(), pages.ErrInvalidField)
	assert.ErrorIs(t, pages.ContactFields{PostCode: "12345678901"}.Validate(), pages.ErrInvalidField)
}

func TestMakeSlug(t *testing.T) {
	assert.Equal(t, "about-us", pages.MakeSlug("", "About Us"))
	assert.Equal(t, "custom", pages.MakeSlug(" Custom ", "About Us"))
	assert.Equal(t, "page", pages.MakeSlug("", "!!!"))
}

func ids(ps []pages.Page) []uint {
	out := make([]uint, 0, len(ps))
	for _, p := range ps {
		out = append(out, p.ID)
	}
	return out
}
