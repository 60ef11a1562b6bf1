package domain

import "strings"

// Slug turns a model identifier into a filesystem-safe name: path separators
// and underscores become hyphens. Applying it twice is a no-op.
func Slug(model string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '/', '_':
			return '-'
		}
		return r
	}, model)
}
