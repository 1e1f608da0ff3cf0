package pages

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"gorm.io/gorm"
)

const (
	stepLen  = 4
	maxSteps = 36*36*36*36 - 1
	rootPath = "0001"
)

var (
	ErrSlugInUse    = errors.New("slug already used by a sibling page")
	ErrRootPage     = errors.New("operation not allowed on the tree root")
	ErrTreeFull     = errors.New("no free child position left")
	ErrInvalidField = errors.New("invalid field")
)

func encodeStep(n int) (string, error) {
	if n < 1 || n > maxSteps {
		return "", ErrTreeFull
	}
	s := strings.ToUpper(strconv.FormatInt(int64(n), 36))
	return strings.Repeat("0", stepLen-len(s)) + s, nil
}

func decodeStep(s string) (int, error) {
	n, err := strconv.ParseInt(s, 36, 64)
	if err != nil {
		return 0, fmt.Errorf("bad tree path segment %q: %w", s, err)
	}
	return int(n), nil
}

// ancestorPaths returns the path of every node from the root down to p.
func ancestorPaths(p *Page) []string {
	out := make([]string, 0, len(p.Path)/stepLen)
	for i := stepLen; i <= len(p.Path); i += stepLen {
		out = append(out, p.Path[:i])
	}
	return out
}

// Live restricts a page query to published pages.
func Live(db *gorm.DB) *gorm.DB {
	return db.Where("pages.live = ?", true)
}

// InMenu restricts a page query to pages flagged for navigation menus.
func InMenu(db *gorm.DB) *gorm.DB {
	return db.Where("pages.show_in_menus = ?", true)
}

// Children selects the direct children of p in tree order.
func Children(db *gorm.DB, p *Page) *gorm.DB {
	return db.Model(&Page{}).
		Where("pages.path LIKE ? AND pages.depth = ?", p.Path+"%", p.Depth+1).
		Order("pages.path ASC")
}

// Descendants selects the subtree below p, including p when inclusive is set.
func Descendants(db *gorm.DB, p *Page, inclusive bool) *gorm.DB {
	q := db.Model(&Page{}).Where("pages.path LIKE ?", p.Path+"%")
	if !inclusive {
		q = q.Where("pages.depth > ?", p.Depth)
	}
	return q.Order("pages.path ASC")
}

// Ancestors selects the pages from the root down to p's parent, or down to p
// itself when inclusive is set.
func Ancestors(db *gorm.DB, p *Page, inclusive bool) *gorm.DB {
	paths := ancestorPaths(p)
	if !inclusive && len(paths) > 0 {
		paths = paths[:len(paths)-1]
	}
	if len(paths) == 0 {
		return db.Model(&Page{}).Where("1 = 0")
	}
	return db.Model(&Page{}).Where("pages.path IN ?", paths).Order("pages.depth ASC")
}

// HasMenuChildren reports whether p has at least one live child shown in menus.
func HasMenuChildren(db *gorm.DB, p *Page) (bool, error) {
	var ids []uint
	if err := Children(db, p).Scopes(Live, InMenu).Limit(1).Pluck("pages.id", &ids).Error; err != nil {
		return false, err
	}
	return len(ids) > 0, nil
}

// Root returns the tree root.
func Root(db *gorm.DB) (*Page, error) {
	var root Page
	if err := db.Where("depth = ?", 1).Order("path ASC").First(&root).Error; err != nil {
		return nil, err
	}
	return &root, nil
}

// EnsureRoot creates the tree root when the tree is empty.
func EnsureRoot(db *gorm.DB) (*Page, error) {
	root, err := Root(db)
	if err == nil {
		return root, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	root = &Page{
		Path:    rootPath,
		Depth:   1,
		Kind:    KindRoot,
		Title:   "Root",
		Slug:    "root",
		URLPath: "/",
		Live:    true,
	}
	if err := db.Create(root).Error; err != nil {
		return nil, err
	}
	return root, nil
}

// Get loads a page by id.
func Get(db *gorm.DB, id uint) (*Page, error) {
	var p Page
	if err := db.First(&p, id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func siblingHasSlug(tx *gorm.DB, parentID uint, slug string, exceptID uint) (bool, error) {
	var ids []uint
	q := tx.Model(&Page{}).Where("parent_id = ? AND slug = ?", parentID, slug)
	if exceptID != 0 {
		q = q.Where("id <> ?", exceptID)
	}
	if err := q.Limit(1).Pluck("id", &ids).Error; err != nil {
		return false, err
	}
	return len(ids) > 0, nil
}

func nextChildPath(tx *gorm.DB, parent *Page) (string, error) {
	var last Page
	err := tx.Model(&Page{}).
		Where("pages.path LIKE ? AND pages.depth = ?", parent.Path+"%", parent.Depth+1).
		Order("pages.path DESC").
		Take(&last).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", err
	}
	next := 1
	if err == nil {
		n, derr := decodeStep(last.Path[len(last.Path)-stepLen:])
		if derr != nil {
			return "", derr
		}
		next = n + 1
	}
	step, err := encodeStep(next)
	if err != nil {
		return "", err
	}
	return parent.Path + step, nil
}

// AddChild inserts child as the last child of parent. Title is required; the
// slug is derived from it when empty.
func AddChild(tx *gorm.DB, parent *Page, child *Page) error {
	if strings.TrimSpace(child.Title) == "" {
		return fmt.Errorf("%w: title is required", ErrInvalidField)
	}
	child.Slug = MakeSlug(child.Slug, child.Title)

	taken, err := siblingHasSlug(tx, parent.ID, child.Slug, 0)
	if err != nil {
		return err
	}
	if taken {
		return fmt.Errorf("%w: %q", ErrSlugInUse, child.Slug)
	}

	path, err := nextChildPath(tx, parent)
	if err != nil {
		return err
	}

	pid := parent.ID
	child.ID = 0
	child.ParentID = &pid
	child.Path = path
	child.Depth = parent.Depth + 1
	child.NumChild = 0
	child.URLPath = parent.URLPath + child.Slug + "/"
	if child.Live {
		stampPublished(child, time.Now())
	}

	if err := tx.Create(child).Error; err != nil {
		return err
	}
	return tx.Model(&Page{}).Where("id = ?", parent.ID).
		Update("numchild", gorm.Expr("numchild + 1")).Error
}

// SetSlug renames p and rewrites the url paths of its whole subtree.
func SetSlug(tx *gorm.DB, p *Page, slug string) error {
	if p.IsRoot() {
		return ErrRootPage
	}
	slug = MakeSlug(slug, p.Title)
	if slug == p.Slug {
		return nil
	}
	if p.ParentID != nil {
		taken, err := siblingHasSlug(tx, *p.ParentID, slug, p.ID)
		if err != nil {
			return err
		}
		if taken {
			return fmt.Errorf("%w: %q", ErrSlugInUse, slug)
		}
	}

	oldURL := p.URLPath
	newURL := strings.TrimSuffix(oldURL, p.Slug+"/") + slug + "/"

	if err := tx.Model(&Page{}).Where("id = ?", p.ID).Update("slug", slug).Error; err != nil {
		return err
	}
	if err := tx.Model(&Page{}).
		Where("path LIKE ?", p.Path+"%").
		Update("url_path", gorm.Expr("? || SUBSTR(url_path, ?)", newURL, utf8.RuneCountInString(oldURL)+1)).Error; err != nil {
		return err
	}

	p.Slug = slug
	p.URLPath = newURL
	return nil
}

func stampPublished(p *Page, now time.Time) {
	if p.FirstPublishedAt == nil {
		p.FirstPublishedAt = &now
	}
	p.LastPublishedAt = &now
}

// SetLive publishes or unpublishes p.
func SetLive(tx *gorm.DB, p *Page, live bool) error {
	updates := map[string]interface{}{"live": live}
	if live {
		stampPublished(p, time.Now())
		updates["first_published_at"] = p.FirstPublishedAt
		updates["last_published_at"] = p.LastPublishedAt
	}
	if err := tx.Model(&Page{}).Where("id = ?", p.ID).Updates(updates).Error; err != nil {
		return err
	}
	p.Live = live
	return nil
}

// SubtreeIDs returns the ids of p and all of its descendants.
func SubtreeIDs(tx *gorm.DB, p *Page) ([]uint, error) {
	var ids []uint
	if err := Descendants(tx, p, true).Pluck("pages.id", &ids).Error; err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return ids, nil
}

// DeleteSubtree removes p, every descendant and their specific rows. Rows in
// other packages that point at these pages must be released first.
func DeleteSubtree(tx *gorm.DB, p *Page) ([]uint, error) {
	if p.IsRoot() {
		return nil, ErrRootPage
	}

	ids, err := SubtreeIDs(tx, p)
	if err != nil {
		return nil, err
	}

	for _, m := range SpecificModels() {
		if err := tx.Where("page_id IN ?", ids).Delete(m).Error; err != nil {
			return nil, err
		}
	}
	if err := tx.Where("root_page_id IN ?", ids).Delete(&Site{}).Error; err != nil {
		return nil, err
	}
	if err := tx.Where("id IN ?", ids).Delete(&Page{}).Error; err != nil {
		return nil, err
	}
	if p.ParentID != nil {
		if err := tx.Model(&Page{}).Where("id = ? AND numchild > 0", *p.ParentID).
			Update("numchild", gorm.Expr("numchild - 1")).Error; err != nil {
			return nil, err
		}
	}
	return ids, nil
}
