package pages

import (
	"errors"
	"net"
	"strconv"
	"strings"

	"gorm.io/gorm"
)

// ResolveSite finds the site serving host ("name" or "name:port"), falling
// back to the default site. The root page is preloaded.
func ResolveSite(db *gorm.DB, host string) (*Site, error) {
	hostname, port := splitHost(host)

	var site Site
	if hostname != "" {
		q := db.Preload("RootPage").Where("hostname = ?", hostname)
		if port != 0 {
			q = q.Where("port = ?", port)
		}
		err := q.Order("is_default_site DESC, id ASC").First(&site).Error
		if err == nil {
			return &site, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}

	if err := db.Preload("RootPage").Where("is_default_site = ?", true).First(&site).Error; err != nil {
		return nil, err
	}
	return &site, nil
}

func splitHost(host string) (string, int) {
	host = strings.ToLower(strings.TrimSpace(host))
	if host == "" {
		return "", 0
	}
	name, portStr, err := net.SplitHostPort(host)
	if err != nil {
		return host, 0
	}
	port, _ := strconv.Atoi(portStr)
	return name, port
}

// URL returns the path at which p is served on s, or its tree url path when
// p lies outside the site's subtree.
func (s *Site) URL(p *Page) string {
	root := s.RootPage.URLPath
	if root != "" && strings.HasPrefix(p.URLPath, root) {
		return "/" + strings.TrimPrefix(p.URLPath, root)
	}
	return p.URLPath
}
