package media

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestURL(t *testing.T) {
	assert.Equal(t, "", URL("/media/", ""))
	assert.Equal(t, "/media/documents/a.pdf", URL("/media/", "documents/a.pdf"))
	assert.Equal(t, "/media/a.png", URL("/media", "/a.png"))
	assert.Equal(t, "/a.png", URL("", "a.png"))
	assert.Equal(t, "https://cdn.example.com/a.png", URL("/media/", "https://cdn.example.com/a.png"))

	doc := Document{FilePath: "documents/brochure.pdf"}
	assert.Equal(t, "/media/documents/brochure.pdf", doc.URL("/media/"))
}
