package pages

import (
	"time"
)

const (
	KindRoot         = "root"
	KindHome         = "home"
	KindProduct      = "product"
	KindProductIndex = "product_index"
	KindProject      = "project"
	KindNews         = "news"
	KindNewsIndex    = "news_index"
	KindIntro        = "intro"
	KindContact      = "contact"
)

// VerboseNames are the admin-facing names of the creatable page kinds.
var VerboseNames = map[string]string{
	KindHome:         "Homepage",
	KindProduct:      "产品页",
	KindProductIndex: "产品首页",
	KindProject:      "项目页",
	KindNews:         "新闻内容",
	KindNewsIndex:    "行业新闻首页",
	KindIntro:        "公司简介",
	KindContact:      "联系我们",
}

// ValidKind reports whether kind can be created below another page.
func ValidKind(kind string) bool {
	_, ok := VerboseNames[kind]
	return ok
}

// Page is a node of the content tree. Path holds one fixed-width segment per
// level, so a subtree is every row whose path starts with the node's path.
type Page struct {
	ID       uint  `gorm:"primaryKey" json:"id"`
	ParentID *uint `gorm:"index;uniqueIndex:idx_pages_parent_slug,priority:1" json:"parent_id,omitempty"`

	Path     string `gorm:"size:255;not null;uniqueIndex" json:"-"`
	Depth    int    `gorm:"not null;index" json:"depth"`
	NumChild int    `gorm:"column:numchild;not null;default:0" json:"-"`

	Kind    string `gorm:"size:32;not null;index" json:"kind"`
	Title   string `gorm:"size:255;not null" json:"title"`
	Slug    string `gorm:"size:255;not null;uniqueIndex:idx_pages_parent_slug,priority:2" json:"slug"`
	URLPath string `gorm:"column:url_path;type:text;not null;index" json:"url_path"`

	Live        bool `gorm:"not null" json:"live"`
	ShowInMenus bool `gorm:"column:show_in_menus;not null" json:"show_in_menus"`

	SeoTitle          string `gorm:"size:255;not null;default:''" json:"seo_title"`
	SearchDescription string `gorm:"type:text;not null;default:''" json:"search_description"`

	FirstPublishedAt *time.Time `json:"first_published_at,omitempty"`
	LastPublishedAt  *time.Time `json:"last_published_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Page) TableName() string { return "pages" }

func (p *Page) IsRoot() bool {
	return p.Depth == 1
}

// Site binds a hostname to the page that is served at "/".
type Site struct {
	ID            uint   `gorm:"primaryKey" json:"id"`
	Hostname      string `gorm:"size:255;not null;uniqueIndex:idx_sites_host_port,priority:1" json:"hostname"`
	Port          int    `gorm:"not null;default:80;uniqueIndex:idx_sites_host_port,priority:2" json:"port"`
	SiteName      string `gorm:"size:255;not null;default:''" json:"site_name"`
	RootPageID    uint   `gorm:"not null;index" json:"root_page_id"`
	RootPage      Page   `gorm:"foreignKey:RootPageID;constraint:OnDelete:CASCADE;" json:"-"`
	IsDefaultSite bool   `gorm:"not null;index" json:"is_default_site"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Site) TableName() string { return "sites" }
