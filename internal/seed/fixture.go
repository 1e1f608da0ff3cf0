package seed

import (
	"bytes"
	"fmt"
	"os"

	"corporate-site/internal/domain/pages"

	"gopkg.in/yaml.v3"
)

// Fixture describes a complete site: the page tree below the root, the
// snippets and the editor accounts.
type Fixture struct {
	Site         SiteFixture        `yaml:"site"`
	ProductTypes []string           `yaml:"product_types"`
	Images       []ImageFixture     `yaml:"images"`
	Pages        []PageFixture      `yaml:"pages"`
	Carousels    []CarouselFixture  `yaml:"carousels"`
	HeadImages   []HeadImageFixture `yaml:"head_images"`
	Adverts      []AdvertFixture    `yaml:"adverts"`
	Admins       []AdminFixture     `yaml:"admins"`
}

// SiteFixture binds a hostname to the first top-level page.
type SiteFixture struct {
	Hostname string `yaml:"hostname"`
	Port     int    `yaml:"port"`
	Name     string `yaml:"name"`
}

// ImageFixture registers an already stored image under Key.
type ImageFixture struct {
	Key   string `yaml:"key"`
	Title string `yaml:"title"`
	Path  string `yaml:"path"`
}

// PageFixture is one node of the tree. Images are referenced by key and
// product types by name.
type PageFixture struct {
	Kind        string               `yaml:"kind"`
	Title       string               `yaml:"title"`
	Slug        string               `yaml:"slug"`
	Draft       bool                 `yaml:"draft"`
	HideInMenus bool                 `yaml:"hide_in_menus"`
	Format      string               `yaml:"format"`
	Body        string               `yaml:"body"`
	Content     string               `yaml:"content"`
	Type        int                  `yaml:"type"`
	ProductType string               `yaml:"product_type"`
	Image       string               `yaml:"image"`
	Contact     *pages.ContactFields `yaml:"contact"`
	Children    []PageFixture        `yaml:"children"`
}

// CarouselFixture links to a page by its url path, e.g. "/home/products/".
type CarouselFixture struct {
	Caption      string `yaml:"caption"`
	Image        string `yaml:"image"`
	EmbedURL     string `yaml:"embed_url"`
	LinkExternal string `yaml:"link_external"`
	LinkPage     string `yaml:"link_page"`
}

type HeadImageFixture struct {
	Caption string `yaml:"caption"`
	Image   string `yaml:"image"`
}

// AdvertFixture is placed on every page listed in PlacedOn.
type AdvertFixture struct {
	Text     string   `yaml:"text"`
	URL      string   `yaml:"url"`
	Page     string   `yaml:"page"`
	PlacedOn []string `yaml:"placed_on"`
}

type AdminFixture struct {
	Name     string `yaml:"name"`
	Email    string `yaml:"email"`
	Password string `yaml:"password"`
	Role     string `yaml:"role"`
}

// Parse decodes a fixture, rejecting unknown keys.
func Parse(data []byte) (*Fixture, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var f Fixture
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("decode fixture: %w", err)
	}
	return &f, nil
}

// Load reads and decodes the fixture at path.
func Load(path string) (*Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fixture %s: %w", path, err)
	}
	return Parse(data)
}
