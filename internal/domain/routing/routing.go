package routing

import (
	"errors"
	"strconv"
	"strings"

	"corporate-site/internal/domain/pages"

	"gorm.io/gorm"
)

var ErrNotFound = errors.New("page not found")

const typeSegment = "type"

// Result is the page chosen for a request plus how to present it.
type Result struct {
	Page *pages.Page
	// Args are the path components consumed by the page itself.
	Args []string
	// Category filters the listing of an index page when set.
	Category *int
	// ContentOverride replaces an intro page's content when set.
	ContentOverride *string
}

// SplitPath breaks a request path into non-empty components.
func SplitPath(path string) []string {
	parts := strings.Split(path, "/")
	out := parts[:0]
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Route resolves components starting at page, usually the site root.
func Route(db *gorm.DB, page *pages.Page, components []string) (*Result, error) {
	switch page.Kind {
	case pages.KindProductIndex, pages.KindNewsIndex:
		if len(components) > 0 && components[0] == typeSegment {
			return routeIndexType(page, components)
		}
	case pages.KindIntro:
		return routeIntro(db, page, components)
	}
	return routeDefault(db, page, components)
}

func routeDefault(db *gorm.DB, page *pages.Page, components []string) (*Result, error) {
	if len(components) == 0 {
		if !page.Live {
			return nil, ErrNotFound
		}
		return &Result{Page: page}, nil
	}

	var child pages.Page
	err := pages.Children(db, page).Where("pages.slug = ?", components[0]).Take(&child).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return Route(db, &child, components[1:])
}

func routeIndexType(page *pages.Page, components []string) (*Result, error) {
	code, ok := typeCode(components)
	if !ok {
		return nil, ErrNotFound
	}
	return &Result{Page: page, Args: components, Category: &code}, nil
}

func routeIntro(db *gorm.DB, page *pages.Page, components []string) (*Result, error) {
	if len(components) == 0 {
		if !page.Live {
			return nil, ErrNotFound
		}
		return &Result{Page: page}, nil
	}
	if components[0] != typeSegment {
		return &Result{Page: page, Args: components}, nil
	}

	code, ok := typeCode(components)
	if !ok {
		return nil, ErrNotFound
	}
	content := ""
	match, err := pages.FirstIntroOfType(db, code)
	if err != nil {
		return nil, err
	}
	if match != nil {
		content = match.Content
	}
	return &Result{Page: page, Args: components, Category: &code, ContentOverride: &content}, nil
}

func typeCode(components []string) (int, bool) {
	if len(components) < 2 {
		return 0, false
	}
	code, err := strconv.Atoi(components[1])
	if err != nil {
		return 0, false
	}
	return code, true
}
