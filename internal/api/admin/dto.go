package admin

import (
	"corporate-site/internal/domain/pages"
)

// PageFields are the editable fields shared by create and update. Nil means
// "leave unchanged"; on create it means the kind's default.
type PageFields struct {
	Slug              *string `json:"slug"`
	ShowInMenus       *bool   `json:"show_in_menus"`
	SeoTitle          *string `json:"seo_title"`
	SearchDescription *string `json:"search_description"`

	// Format applies to body and content: "html" (default) or "markdown".
	Format  string  `json:"format"`
	Body    *string `json:"body"`
	Content *string `json:"content"`
	Type    *int    `json:"type"`

	ImageID        *uint `json:"image_id"`
	ClearImage     bool  `json:"clear_image"`
	FeedImageID    *uint `json:"feed_image_id"`
	ClearFeedImage bool  `json:"clear_feed_image"`

	Contact *pages.ContactFields `json:"contact"`
}

type CreatePageRequest struct {
	Kind  string `json:"kind" binding:"required"`
	Title string `json:"title" binding:"required,max=255"`
	Live  bool   `json:"live"`
	PageFields
}

type UpdatePageRequest struct {
	Title *string `json:"title" binding:"omitempty,max=255"`
	PageFields
}

type PageDetail struct {
	Page   pages.Page     `json:"page"`
	Fields pages.Specific `json:"fields"`
}

type PlacementRequest struct {
	AdvertID uint `json:"advert_id" binding:"required"`
}

type CarouselRequest struct {
	ImageID        *uint  `json:"image_id"`
	EmbedURL       string `json:"embed_url"`
	Caption        string `json:"caption" binding:"required"`
	LinkExternal   string `json:"link_external"`
	LinkPageID     *uint  `json:"link_page_id"`
	LinkDocumentID *uint  `json:"link_document_id"`
}

type HeadImageRequest struct {
	ImageID *uint  `json:"image_id"`
	Caption string `json:"caption" binding:"required"`
}

type ProductTypeRequest struct {
	TypeName string `json:"typename" binding:"required"`
}

type AdvertRequest struct {
	PageID *uint   `json:"page_id"`
	URL    *string `json:"url"`
	Text   string  `json:"text" binding:"required"`
}

type CreateAdminRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password"`
	Role     string `json:"role" binding:"required"`
}

type Stats struct {
	Pages        int64            `json:"pages"`
	LivePages    int64            `json:"live_pages"`
	PagesPerKind map[string]int64 `json:"pages_per_kind"`
	Snippets     map[string]int64 `json:"snippets"`
	Images       int64            `json:"images"`
	Documents    int64            `json:"documents"`
}
