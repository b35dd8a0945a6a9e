package domain

import "time"

// Product categories carried by the storefront.
const (
	CategoryTshirt     = "tshirt"
	CategoryHoodies    = "hoodies"
	CategorySweatshirt = "sweatshirts"
	CategoryMugs       = "mugs"
	CategoryStickers   = "stickers"
)

// Categories returns the set of valid product categories.
func Categories() []string {
	return []string{CategoryTshirt, CategoryHoodies, CategorySweatshirt, CategoryMugs, CategoryStickers}
}

// IsValidCategory checks whether the given category is carried.
func IsValidCategory(category string) bool {
	for _, c := range Categories() {
		if c == category {
			return true
		}
	}
	return false
}

// ProductVariant is one stock-keeping unit: a single title/size/color/stock
// combination. All variants sharing a title are the same logical product.
// Sizes and Colors are always lists; single-valued variants are stored as
// one-element lists at the data boundary.
type ProductVariant struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Slug         string    `json:"slug"`
	Category     string    `json:"category"`
	Price        int64     `json:"price"`
	Sizes        []string  `json:"sizes"`
	Colors       []string  `json:"colors"`
	AvailableQty int       `json:"available_qty"`
	Image        string    `json:"img,omitempty"`
	Description  string    `json:"description"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// InStock reports whether this specific size/color combination can be sold.
func (v *ProductVariant) InStock() bool {
	return v.AvailableQty > 0
}

// CatalogProduct is the customer-facing grouping of all variants sharing a
// title: representative scalars from the first variant seen, plus merged
// in-stock size and color option sets.
type CatalogProduct struct {
	Title        string   `json:"title"`
	Slug         string   `json:"slug"`
	Category     string   `json:"category"`
	Price        int64    `json:"price"`
	Image        string   `json:"img,omitempty"`
	Description  string   `json:"description"`
	Colors       []string `json:"colors"`
	Sizes        []string `json:"sizes"`
	AvailableQty int      `json:"available_qty"`
	IsAvailable  bool     `json:"is_available"`
}

// AggregateVariants groups flat variant rows into one catalog entry per
// distinct title, in first-seen order. The first variant encountered for a
// title supplies the representative price, slug, image, and description;
// later variants never overwrite them. Colors and sizes are merged as
// insertion-ordered sets and only variants with stock contribute options, so
// a title whose variants are all sold out still yields an entry with empty
// option sets. AvailableQty is summed across all variants of the title.
//
// The function is total: empty input yields an empty slice and rows with a
// missing title group under the empty string.
func AggregateVariants(variants []ProductVariant) []CatalogProduct {
	byTitle := make(map[string]int, len(variants))
	out := make([]CatalogProduct, 0, len(variants))

	for _, v := range variants {
		idx, seen := byTitle[v.Title]
		if !seen {
			idx = len(out)
			byTitle[v.Title] = idx
			out = append(out, CatalogProduct{
				Title:       v.Title,
				Slug:        v.Slug,
				Category:    v.Category,
				Price:       v.Price,
				Image:       v.Image,
				Description: v.Description,
				Colors:      []string{},
				Sizes:       []string{},
			})
		}

		entry := &out[idx]
		entry.AvailableQty += v.AvailableQty

		if v.AvailableQty > 0 {
			entry.Colors = appendMissing(entry.Colors, v.Colors)
			entry.Sizes = appendMissing(entry.Sizes, v.Sizes)
		}
	}

	for i := range out {
		out[i].IsAvailable = len(out[i].Colors) > 0 || len(out[i].Sizes) > 0
	}
	return out
}

// appendMissing appends values not already present, preserving insertion
// order. Empty values contribute nothing.
func appendMissing(dst []string, values []string) []string {
	for _, val := range values {
		if val == "" {
			continue
		}
		found := false
		for _, existing := range dst {
			if existing == val {
				found = true
				break
			}
		}
		if !found {
			dst = append(dst, val)
		}
	}
	return dst
}
