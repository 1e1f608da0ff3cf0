package pages

import (
	"strings"

	"github.com/gosimple/slug"
)

/*
	Slug helpers
	------------
	- Responsible ONLY for turning titles/slugs into URL segments
	- Chinese titles are transliterated, so "产品中心" becomes "chan-pin-zhong-xin"
*/

// MakeSlug normalises an explicit slug, or derives one from title when the
// slug is empty.
func MakeSlug(explicit, title string) string {
	base := strings.TrimSpace(explicit)
	if base == "" {
		base = title
	}
	s := slug.Make(base)
	if s == "" {
		s = "page"
	}
	return s
}
