package category

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	slugDisallowed = regexp.MustCompile(`[^a-z0-9\s-]+`)
	slugSeparators = regexp.MustCompile(`[\s-]+`)
)

// Slugify turns a category name into a lowercase, diacritic-free,
// hyphen-separated token: "Thực phẩm chức năng" -> "thuc-pham-chuc-nang".
func Slugify(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	stripped, _, err := transform.String(t, s)
	if err != nil {
		stripped = s
	}
	// đ has no decomposition.
	stripped = strings.NewReplacer("đ", "d", "Đ", "d").Replace(stripped)

	slug := strings.ToLower(strings.TrimSpace(stripped))
	slug = slugDisallowed.ReplaceAllString(slug, "")
	slug = slugSeparators.ReplaceAllString(slug, "-")
	return strings.Trim(slug, "-")
}
