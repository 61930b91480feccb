package model

import "errors"

// Category is the canonical three-valued vote classification.
type Category string

const (
	CategoryTrusted    Category = "trusted"
	CategorySuspicious Category = "suspicious"
	CategoryUntrusted  Category = "untrusted"
)

// ErrInvalidCategory is returned when a vote names a category outside the
// closed set. Rejected before any store call.
var ErrInvalidCategory = errors.New("invalid vote category")

// Categories lists every valid category in display order.
var Categories = []Category{CategoryTrusted, CategorySuspicious, CategoryUntrusted}

// categoryAliases maps legacy client-side vocabulary onto the canonical set.
// Older extension builds submit safe/unsafe; the server vocabulary wins.
var categoryAliases = map[string]Category{
	"trusted":    CategoryTrusted,
	"suspicious": CategorySuspicious,
	"untrusted":  CategoryUntrusted,
	"safe":       CategoryTrusted,
	"unsafe":     CategoryUntrusted,
}

// ParseCategory canonicalises a raw category string, accepting legacy
// aliases. Returns ErrInvalidCategory for anything outside the closed set.
func ParseCategory(raw string) (Category, error) {
	if c, ok := categoryAliases[raw]; ok {
		return c, nil
	}
	return "", ErrInvalidCategory
}

// Valid reports whether c is one of the canonical categories.
func (c Category) Valid() bool {
	switch c {
	case CategoryTrusted, CategorySuspicious, CategoryUntrusted:
		return true
	}
	return false
}

func (c Category) String() string { return string(c) }
