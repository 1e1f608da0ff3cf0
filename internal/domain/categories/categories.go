package categories

import (
	"errors"
	"fmt"
	"strings"

	"corporate-site/internal/domain/snippets"

	"golang.org/x/text/language"
	"gorm.io/gorm"
)

var ErrInvalidCode = errors.New("invalid category code")

const (
	NewsIndustry   = 1
	NewsTechnology = 2

	IntroProfile      = 1
	IntroOrganisation = 2
	IntroLeadership   = 3
	IntroCulture      = 4
)

// Entry is one code of an enumeration with its labels.
type Entry struct {
	Code int
	Zh   string
	En   string
}

// Choice is an entry rendered in one language.
type Choice struct {
	Code  int    `json:"code"`
	Label string `json:"label"`
}

// Enum is a fixed, ordered set of category codes.
type Enum struct {
	Name    string
	Entries []Entry
}

var NewsTypes = Enum{
	Name: "news type",
	Entries: []Entry{
		{Code: NewsIndustry, Zh: "行业新闻", En: "Industry news"},
		{Code: NewsTechnology, Zh: "生产技术", En: "Production technology"},
	},
}

var IntroTypes = Enum{
	Name: "intro type",
	Entries: []Entry{
		{Code: IntroProfile, Zh: "公司简介", En: "Company profile"},
		{Code: IntroOrganisation, Zh: "组织结构", En: "Organisation"},
		{Code: IntroLeadership, Zh: "领导致辞", En: "Leadership address"},
		{Code: IntroCulture, Zh: "企业文化", En: "Corporate culture"},
	},
}

func (e Enum) Contains(code int) bool {
	for _, entry := range e.Entries {
		if entry.Code == code {
			return true
		}
	}
	return false
}

// Validate rejects codes outside the enumeration.
func (e Enum) Validate(code int) error {
	if !e.Contains(code) {
		return fmt.Errorf("%w: %d is not a valid %s", ErrInvalidCode, code, e.Name)
	}
	return nil
}

// Label returns the label of code in tag's language, or "" for unknown codes.
func (e Enum) Label(code int, tag language.Tag) string {
	for _, entry := range e.Entries {
		if entry.Code == code {
			return entry.label(tag)
		}
	}
	return ""
}

// Choices lists the enumeration in order, labelled in tag's language.
func (e Enum) Choices(tag language.Tag) []Choice {
	out := make([]Choice, 0, len(e.Entries))
	for _, entry := range e.Entries {
		out = append(out, Choice{Code: entry.Code, Label: entry.label(tag)})
	}
	return out
}

func (e Entry) label(tag language.Tag) string {
	if tag == language.English && e.En != "" {
		return e.En
	}
	return e.Zh
}

var supportedTags = []language.Tag{
	language.Chinese,
	language.English,
}

var tagMatcher = language.NewMatcher(supportedTags)

// Default is the language used when nothing better matches.
func Default() language.Tag {
	return language.Chinese
}

// MatchLanguage picks the supported language closest to an Accept-Language
// header value.
func MatchLanguage(acceptLanguage string) language.Tag {
	acceptLanguage = strings.TrimSpace(acceptLanguage)
	if acceptLanguage == "" {
		return Default()
	}
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return Default()
	}
	_, idx, conf := tagMatcher.Match(tags...)
	if conf == language.No {
		return Default()
	}
	return supportedTags[idx]
}

// ProductTypes lists the product type lookup table as choices. Type names
// are stored in one language only.
func ProductTypes(db *gorm.DB) ([]Choice, error) {
	rows, err := snippets.ListProductTypes(db)
	if err != nil {
		return nil, err
	}
	out := make([]Choice, 0, len(rows))
	for _, r := range rows {
		out = append(out, Choice{Code: int(r.ID), Label: r.TypeName})
	}
	return out, nil
}

// ValidateProductType checks code against the current lookup table.
func ValidateProductType(db *gorm.DB, code int) error {
	if code <= 0 {
		return fmt.Errorf("%w: %d is not a valid product type", ErrInvalidCode, code)
	}
	var count int64
	if err := db.Model(&snippets.ProductType{}).Where("id = ?", code).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return fmt.Errorf("%w: %d is not a valid product type", ErrInvalidCode, code)
	}
	return nil
}
