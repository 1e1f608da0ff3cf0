package testutil

import (
	"fmt"
	"strings"
	"sync/atomic"
	"testing"

	"corporate-site/database"
	"corporate-site/internal/domain/pages"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var dbSeq atomic.Int64

// NewDB returns a migrated in-memory sqlite database private to the test.
func NewDB(t testing.TB) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", name, dbSeq.Add(1))

	db, err := database.Open("sqlite", dsn)
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// keep the in-memory database alive for the whole test
	sqlDB.SetMaxIdleConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, database.Migrate(db))
	return db
}

// UseGlobalDB installs db as database.DB for handler tests.
func UseGlobalDB(t testing.TB, db *gorm.DB) {
	t.Helper()
	prev := database.DB
	database.DB = db
	t.Cleanup(func() { database.DB = prev })
}

// Root returns the tree root of db.
func Root(t testing.TB, db *gorm.DB) *pages.Page {
	t.Helper()
	root, err := pages.Root(db)
	require.NoError(t, err)
	return root
}

// AddPage creates a page of kind below parent, with an optional specific row.
func AddPage(t testing.TB, db *gorm.DB, parent *pages.Page, kind, title string, live bool, specific pages.Specific) *pages.Page {
	t.Helper()
	p := &pages.Page{Kind: kind, Title: title, Live: live, ShowInMenus: true}
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := pages.AddChild(tx, parent, p); err != nil {
			return err
		}
		return pages.SaveSpecific(tx, p.ID, specific)
	})
	require.NoError(t, err)
	return p
}

// AddSite registers a default site rooted at root.
func AddSite(t testing.TB, db *gorm.DB, root *pages.Page) *pages.Site {
	t.Helper()
	site := &pages.Site{Hostname: "localhost", Port: 80, SiteName: "Test", RootPageID: root.ID, IsDefaultSite: true}
	require.NoError(t, db.Omit("RootPage").Create(site).Error)
	site.RootPage = *root
	return site
}
