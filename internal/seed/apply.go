package seed

import (
	"errors"
	"fmt"

	"corporate-site/internal/domain/admins"
	"corporate-site/internal/domain/categories"
	"corporate-site/internal/domain/media"
	"corporate-site/internal/domain/pages"
	"corporate-site/internal/domain/snippets"
	"corporate-site/internal/infra/richtext"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// ErrAlreadySeeded is returned when the tree already holds pages.
var ErrAlreadySeeded = errors.New("database already contains pages")

type loader struct {
	tx           *gorm.DB
	images       map[string]uint
	productTypes map[string]int
	byURL        map[string]*pages.Page
}

// Apply writes f into db in one transaction.
func Apply(db *gorm.DB, f *Fixture, log *zap.Logger) error {
	if log == nil {
		log = zap.NewNop()
	}
	return db.Transaction(func(tx *gorm.DB) error {
		root, err := pages.EnsureRoot(tx)
		if err != nil {
			return err
		}
		if root.NumChild > 0 {
			return ErrAlreadySeeded
		}

		l := &loader{
			tx:           tx,
			images:       map[string]uint{},
			productTypes: map[string]int{},
			byURL:        map[string]*pages.Page{},
		}
		steps := []struct {
			name string
			run  func() error
		}{
			{"product types", func() error { return l.productTypesFrom(f.ProductTypes) }},
			{"images", func() error { return l.imagesFrom(f.Images) }},
			{"pages", func() error { return l.pagesFrom(root, f.Pages) }},
			{"site", func() error { return l.siteFrom(root, f.Site) }},
			{"carousels", func() error { return l.carouselsFrom(f.Carousels) }},
			{"head images", func() error { return l.headImagesFrom(f.HeadImages) }},
			{"adverts", func() error { return l.advertsFrom(f.Adverts) }},
			{"admins", func() error { return l.adminsFrom(f.Admins) }},
		}
		for _, s := range steps {
			if err := s.run(); err != nil {
				return fmt.Errorf("seed %s: %w", s.name, err)
			}
		}
		log.Info("fixture applied",
			zap.Int("pages", len(l.byURL)),
			zap.Int("product_types", len(l.productTypes)),
			zap.Int("admins", len(f.Admins)),
		)
		return nil
	})
}

func (l *loader) productTypesFrom(names []string) error {
	for _, name := range names {
		pt := snippets.ProductType{TypeName: name}
		if err := pt.Validate(); err != nil {
			return err
		}
		if err := l.tx.Create(&pt).Error; err != nil {
			return err
		}
		l.productTypes[name] = int(pt.ID)
	}
	return nil
}

func (l *loader) imagesFrom(images []ImageFixture) error {
	for _, in := range images {
		if in.Key == "" || in.Path == "" {
			return fmt.Errorf("image needs a key and a path")
		}
		img := media.Image{Title: in.Title, OriginalPath: in.Path}
		if err := l.tx.Create(&img).Error; err != nil {
			return err
		}
		l.images[in.Key] = img.ID
	}
	return nil
}

func (l *loader) image(key string) (*uint, error) {
	if key == "" {
		return nil, nil
	}
	id, ok := l.images[key]
	if !ok {
		return nil, fmt.Errorf("unknown image %q", key)
	}
	return &id, nil
}

func (l *loader) page(url string) (*pages.Page, error) {
	p, ok := l.byURL[url]
	if !ok {
		return nil, fmt.Errorf("unknown page %q", url)
	}
	return p, nil
}

func (l *loader) pagesFrom(parent *pages.Page, nodes []PageFixture) error {
	for _, n := range nodes {
		if !pages.ValidKind(n.Kind) {
			return fmt.Errorf("%q: unknown page kind %q", n.Title, n.Kind)
		}
		specific, err := l.specific(n)
		if err != nil {
			return fmt.Errorf("%q: %w", n.Title, err)
		}
		p := &pages.Page{
			Kind:        n.Kind,
			Title:       n.Title,
			Slug:        n.Slug,
			Live:        !n.Draft,
			ShowInMenus: !n.HideInMenus,
		}
		if err := pages.AddChild(l.tx, parent, p); err != nil {
			return err
		}
		if err := pages.SaveSpecific(l.tx, p.ID, specific); err != nil {
			return err
		}
		l.byURL[p.URLPath] = p
		if err := l.pagesFrom(p, n.Children); err != nil {
			return err
		}
	}
	return nil
}

func (l *loader) specific(n PageFixture) (pages.Specific, error) {
	body, err := richtext.Render(n.Body, n.Format)
	if err != nil {
		return nil, err
	}
	content, err := richtext.Render(n.Content, n.Format)
	if err != nil {
		return nil, err
	}
	img, err := l.image(n.Image)
	if err != nil {
		return nil, err
	}

	switch n.Kind {
	case pages.KindHome:
		return &pages.HomePage{Body: body}, nil
	case pages.KindProduct:
		code, ok := l.productTypes[n.ProductType]
		if !ok {
			return nil, fmt.Errorf("%w: unknown product type %q", categories.ErrInvalidCode, n.ProductType)
		}
		return &pages.ProductPage{Content: content, Type: code, ImageID: img}, nil
	case pages.KindNews:
		if err := categories.NewsTypes.Validate(n.Type); err != nil {
			return nil, err
		}
		return &pages.NewsPage{Content: content, Type: n.Type, ImageID: img}, nil
	case pages.KindIntro:
		if err := categories.IntroTypes.Validate(n.Type); err != nil {
			return nil, err
		}
		return &pages.IntroPage{Content: content, Type: n.Type, ImageID: img}, nil
	case pages.KindContact:
		c := &pages.ContactPage{Body: body, FeedImageID: img}
		if n.Contact != nil {
			c.ContactFields = *n.Contact
		}
		if err := c.ContactFields.Validate(); err != nil {
			return nil, err
		}
		return c, nil
	}
	return nil, nil
}

func (l *loader) siteFrom(root *pages.Page, in SiteFixture) error {
	if in.Hostname == "" {
		return nil
	}
	var first pages.Page
	if err := pages.Children(l.tx, root).First(&first).Error; err != nil {
		return fmt.Errorf("site needs a top-level page: %w", err)
	}
	port := in.Port
	if port == 0 {
		port = 80
	}
	site := pages.Site{Hostname: in.Hostname, Port: port, SiteName: in.Name, RootPageID: first.ID, IsDefaultSite: true}
	return l.tx.Omit("RootPage").Create(&site).Error
}

func (l *loader) carouselsFrom(items []CarouselFixture) error {
	for _, in := range items {
		img, err := l.image(in.Image)
		if err != nil {
			return err
		}
		item := snippets.CarouselItem{Caption: in.Caption, ImageID: img, EmbedURL: in.EmbedURL, LinkExternal: in.LinkExternal}
		if in.LinkPage != "" {
			p, err := l.page(in.LinkPage)
			if err != nil {
				return err
			}
			item.LinkPageID = &p.ID
		}
		if err := item.Validate(); err != nil {
			return err
		}
		if err := l.tx.Omit("Image", "LinkPage", "LinkDocument").Create(&item).Error; err != nil {
			return err
		}
	}
	return nil
}

func (l *loader) headImagesFrom(items []HeadImageFixture) error {
	for _, in := range items {
		img, err := l.image(in.Image)
		if err != nil {
			return err
		}
		h := snippets.HeadImage{Caption: in.Caption, ImageID: img}
		if err := h.Validate(); err != nil {
			return err
		}
		if err := l.tx.Omit("Image").Create(&h).Error; err != nil {
			return err
		}
	}
	return nil
}

func (l *loader) advertsFrom(items []AdvertFixture) error {
	for _, in := range items {
		a := snippets.Advert{Text: in.Text}
		if in.URL != "" {
			u := in.URL
			a.URL = &u
		}
		if in.Page != "" {
			p, err := l.page(in.Page)
			if err != nil {
				return err
			}
			a.PageID = &p.ID
		}
		if err := a.Validate(); err != nil {
			return err
		}
		if err := l.tx.Omit("Page").Create(&a).Error; err != nil {
			return err
		}
		for _, url := range in.PlacedOn {
			p, err := l.page(url)
			if err != nil {
				return err
			}
			if _, err := snippets.Place(l.tx, p.ID, a.ID); err != nil {
				return err
			}
		}
	}
	return nil
}

func (l *loader) adminsFrom(items []AdminFixture) error {
	for _, in := range items {
		if !admins.ValidRole(in.Role) {
			return fmt.Errorf("%s: unknown role %q", in.Email, in.Role)
		}
		if !admins.IsPasswordStrong(in.Password) {
			return fmt.Errorf("%s: %w", in.Email, admins.ErrWeakPassword)
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		h := string(hash)
		a := admins.Admin{
			Name:         in.Name,
			Email:        admins.NormalizeEmail(in.Email),
			Password:     &h,
			AuthProvider: admins.ProviderLocal,
			Role:         in.Role,
			Active:       true,
		}
		if err := l.tx.Create(&a).Error; err != nil {
			return err
		}
	}
	return nil
}
