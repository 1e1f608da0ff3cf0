package media

import (
	"strings"
	"time"
)

type Image struct {
	ID           uint    `gorm:"primaryKey" json:"id"`
	Title        string  `gorm:"not null;default:''" json:"title"`
	OriginalPath string  `gorm:"not null" json:"original_path"`
	WebpPath     *string `json:"webp_path,omitempty"`
	AvifPath     *string `json:"avif_path,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Document struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Title    string `gorm:"not null" json:"title"`
	FilePath string `gorm:"not null" json:"file_path"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// URL joins a stored relative path onto the public media prefix.
// Absolute URLs are returned unchanged.
func URL(mediaPrefix, path string) string {
	if path == "" {
		return ""
	}
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	if mediaPrefix == "" {
		mediaPrefix = "/"
	}
	return strings.TrimRight(mediaPrefix, "/") + "/" + strings.TrimLeft(path, "/")
}

func (d Document) URL(mediaPrefix string) string {
	return URL(mediaPrefix, d.FilePath)
}

func (i Image) URL(mediaPrefix string) string {
	return URL(mediaPrefix, i.OriginalPath)
}
