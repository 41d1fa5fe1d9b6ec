package entity

import (
	"fmt"
	"strings"
)

// Category is the identity tag shared by bodies and rings. A body may only
// destroy rings of its own category when category gating is enabled. Display
// colors are derived from the category by renderers; they are never compared.
type Category uint8

const (
	Neutral Category = iota
	Red
	Blue
	Green
	Yellow
	Magenta
	Cyan
	Orange
	Purple
	Pink
	Teal
)

var categoryNames = [...]string{
	Neutral: "neutral",
	Red:     "red",
	Blue:    "blue",
	Green:   "green",
	Yellow:  "yellow",
	Magenta: "magenta",
	Cyan:    "cyan",
	Orange:  "orange",
	Purple:  "purple",
	Pink:    "pink",
	Teal:    "teal",
}

// Categories lists every known category in declaration order
func Categories() []Category {
	out := make([]Category, len(categoryNames))
	for i := range categoryNames {
		out[i] = Category(i)
	}
	return out
}

func (c Category) String() string {
	if int(c) < len(categoryNames) {
		return categoryNames[c]
	}
	return fmt.Sprintf("category(%d)", uint8(c))
}

// ParseCategory resolves a category by its case-insensitive name
func ParseCategory(name string) (Category, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, n := range categoryNames {
		if n == name {
			return Category(i), nil
		}
	}
	return Neutral, fmt.Errorf("unknown category %q", name)
}

// MarshalText implements encoding.TextMarshaler so categories appear by name in JSON
func (c Category) MarshalText() ([]byte, error) {
	if int(c) >= len(categoryNames) {
		return nil, fmt.Errorf("unknown category %d", uint8(c))
	}
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (c *Category) UnmarshalText(text []byte) error {
	parsed, err := ParseCategory(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
