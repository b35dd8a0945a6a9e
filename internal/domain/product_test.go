package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func variant(title, color, size string, price int64, qty int) ProductVariant {
	return ProductVariant{
		ID:           title + "-" + size + "-" + color,
		Title:        title,
		Slug:         title + "-" + size + "-" + color,
		Category:     CategoryTshirt,
		Price:        price,
		Colors:       []string{color},
		Sizes:        []string{size},
		AvailableQty: qty,
	}
}

// ============================================================================
// AggregateVariants Tests
// ============================================================================

func TestAggregateVariants_EmptyInput(t *testing.T) {
	out := AggregateVariants(nil)
	require.NotNil(t, out)
	assert.Empty(t, out)

	out = AggregateVariants([]ProductVariant{})
	require.NotNil(t, out)
	assert.Empty(t, out)
}

func TestAggregateVariants_OneEntryPerTitle(t *testing.T) {
	variants := []ProductVariant{
		variant("Wear The Code", "red", "M", 499, 10),
		variant("Wear The Code", "blue", "L", 499, 5),
		variant("Eat Sleep Code", "black", "M", 599, 3),
		variant("Wear The Code", "green", "S", 499, 2),
	}

	out := AggregateVariants(variants)
	require.Len(t, out, 2)
	assert.Equal(t, "Wear The Code", out[0].Title)
	assert.Equal(t, "Eat Sleep Code", out[1].Title)
}

func TestAggregateVariants_FirstSeenOrderPreserved(t *testing.T) {
	variants := []ProductVariant{
		variant("C", "red", "M", 100, 1),
		variant("A", "red", "M", 100, 1),
		variant("B", "red", "M", 100, 1),
		variant("A", "blue", "L", 100, 1),
	}

	out := AggregateVariants(variants)
	require.Len(t, out, 3)
	assert.Equal(t, "C", out[0].Title)
	assert.Equal(t, "A", out[1].Title)
	assert.Equal(t, "B", out[2].Title)
}

func TestAggregateVariants_OutOfStockContributesNoOptions(t *testing.T) {
	variants := []ProductVariant{
		variant("Wear The Code", "red", "M", 499, 10),
		variant("Wear The Code", "blue", "L", 499, 0),
	}

	out := AggregateVariants(variants)
	require.Len(t, out, 1)
	assert.Equal(t, []string{"red"}, out[0].Colors)
	assert.Equal(t, []string{"M"}, out[0].Sizes)
}

func TestAggregateVariants_SharedColorOnlyViaZeroStockRow(t *testing.T) {
	// "blue" appears on an in-stock and a sold-out row; it stays because of
	// the in-stock row, while "green" (sold-out only) never appears.
	variants := []ProductVariant{
		variant("Wear The Code", "blue", "M", 499, 4),
		variant("Wear The Code", "blue", "L", 499, 0),
		variant("Wear The Code", "green", "XL", 499, 0),
	}

	out := AggregateVariants(variants)
	require.Len(t, out, 1)
	assert.Equal(t, []string{"blue"}, out[0].Colors)
	assert.Equal(t, []string{"M"}, out[0].Sizes)
}

func TestAggregateVariants_AllOutOfStockStillEmitted(t *testing.T) {
	variants := []ProductVariant{
		variant("Sold Out Tee", "red", "M", 499, 0),
		variant("Sold Out Tee", "blue", "L", 499, 0),
	}

	out := AggregateVariants(variants)
	require.Len(t, out, 1)
	assert.Empty(t, out[0].Colors)
	assert.Empty(t, out[0].Sizes)
	assert.False(t, out[0].IsAvailable)
	assert.Equal(t, 0, out[0].AvailableQty)
}

func TestAggregateVariants_FirstWinsRepresentativeFields(t *testing.T) {
	first := variant("Wear The Code", "red", "M", 499, 1)
	first.Image = "/img/first.png"
	first.Description = "first description"
	second := variant("Wear The Code", "blue", "L", 999, 1)
	second.Image = "/img/second.png"
	second.Description = "second description"

	out := AggregateVariants([]ProductVariant{first, second})
	require.Len(t, out, 1)
	assert.Equal(t, int64(499), out[0].Price)
	assert.Equal(t, "/img/first.png", out[0].Image)
	assert.Equal(t, "first description", out[0].Description)
	assert.Equal(t, first.Slug, out[0].Slug)
}

func TestAggregateVariants_OptionDedupPreservesOrder(t *testing.T) {
	variants := []ProductVariant{
		variant("Wear The Code", "red", "M", 499, 1),
		variant("Wear The Code", "red", "L", 499, 1),
		variant("Wear The Code", "blue", "M", 499, 1),
	}

	out := AggregateVariants(variants)
	require.Len(t, out, 1)
	assert.Equal(t, []string{"red", "blue"}, out[0].Colors)
	assert.Equal(t, []string{"M", "L"}, out[0].Sizes)
}

func TestAggregateVariants_SumsAvailableQty(t *testing.T) {
	variants := []ProductVariant{
		variant("Wear The Code", "red", "M", 499, 10),
		variant("Wear The Code", "blue", "L", 499, 0),
		variant("Wear The Code", "green", "S", 499, 5),
	}

	out := AggregateVariants(variants)
	require.Len(t, out, 1)
	assert.Equal(t, 15, out[0].AvailableQty)
	assert.True(t, out[0].IsAvailable)
}

func TestAggregateVariants_MissingTitleGroupsTogether(t *testing.T) {
	variants := []ProductVariant{
		variant("", "red", "M", 100, 1),
		variant("", "blue", "L", 100, 1),
		variant("Named", "black", "M", 200, 1),
	}

	out := AggregateVariants(variants)
	require.Len(t, out, 2)
	assert.Equal(t, "", out[0].Title)
	assert.Equal(t, []string{"red", "blue"}, out[0].Colors)
}

func TestAggregateVariants_MissingOptionsContributeNothing(t *testing.T) {
	v := variant("Bare", "", "", 100, 5)
	v.Colors = nil
	v.Sizes = []string{""}

	out := AggregateVariants([]ProductVariant{v})
	require.Len(t, out, 1)
	assert.Empty(t, out[0].Colors)
	assert.Empty(t, out[0].Sizes)
	assert.False(t, out[0].IsAvailable)
}

func TestAggregateVariants_MultiValuedSizeList(t *testing.T) {
	v := variant("Multi", "red", "M", 100, 2)
	v.Sizes = []string{"M", "L", "M"}

	out := AggregateVariants([]ProductVariant{v})
	require.Len(t, out, 1)
	assert.Equal(t, []string{"M", "L"}, out[0].Sizes)
}

// ============================================================================
// Category Tests
// ============================================================================

func TestIsValidCategory(t *testing.T) {
	for _, c := range Categories() {
		assert.True(t, IsValidCategory(c), c)
	}
	assert.False(t, IsValidCategory("furniture"))
	assert.False(t, IsValidCategory(""))
}

func TestProductVariant_InStock(t *testing.T) {
	v := variant("X", "red", "M", 100, 1)
	assert.True(t, v.InStock())
	v.AvailableQty = 0
	assert.False(t, v.InStock())
}
