package richtext

import (
	"bytes"
	"errors"
	"fmt"
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

const (
	FormatHTML     = "html"
	FormatMarkdown = "markdown"
)

var ErrUnknownFormat = errors.New("unknown rich text format")

var (
	ugc    = bluemonday.UGCPolicy()
	strict = bluemonday.StrictPolicy()
	md     = goldmark.New(goldmark.WithExtensions(extension.GFM))
)

// Clean keeps the formatting an editor may use and drops scripts, styles and
// event handlers.
func Clean(html string) string {
	return ugc.Sanitize(html)
}

// StripTags removes all markup, leaving unescaped plain text.
func StripTags(s string) string {
	return html.UnescapeString(strict.Sanitize(s))
}

// FromMarkdown converts markdown to HTML without cleaning it.
func FromMarkdown(src string) (string, error) {
	var buf bytes.Buffer
	if err := md.Convert([]byte(src), &buf); err != nil {
		return "", fmt.Errorf("convert markdown: %w", err)
	}
	return buf.String(), nil
}

// Render turns submitted rich text into clean HTML. An empty format means HTML.
func Render(src, format string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", FormatHTML:
		return Clean(src), nil
	case FormatMarkdown, "md":
		out, err := FromMarkdown(src)
		if err != nil {
			return "", err
		}
		return Clean(out), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}
