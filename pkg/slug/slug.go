package slug

import (
	"regexp"
	"strings"
)

var slugRegexp = regexp.MustCompile(`[^a-z0-9]+`)

// Generate creates a URL-friendly slug from the given name.
//
// Examples:
//   - "Wear The Code Tshirt" → "wear-the-code-tshirt"
//   - "Hello   World!" → "hello-world"
func Generate(name string) string {
	slug := strings.ToLower(strings.TrimSpace(name))

	// Replace any non-alphanumeric run with a single hyphen.
	slug = slugRegexp.ReplaceAllString(slug, "-")

	return strings.Trim(slug, "-")
}

// ForVariant builds the slug for a specific size/color variant of a titled
// product, e.g. ("Wear The Code", "M", "red") → "wear-the-code-red-m".
// Every variant row carries its own slug; the title alone is not URL-stable.
func ForVariant(title, size, color string) string {
	return Generate(title + " " + color + " " + size)
}
