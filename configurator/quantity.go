package configurator

import (
	"strings"

	"obraexpress-store/models"
)

// compactCodePrefix marks the compact product line, which sells by
// the unit instead of by packs of ten.
const compactCodePrefix = "517"

// IsCompact reports whether the selected variant belongs to the
// compact line, detected by name or by SKU prefix.
func IsCompact(group models.ProductGroup, variant models.ProductVariant) bool {
	return strings.Contains(group.Nombre, "Compacto") ||
		strings.Contains(variant.Nombre, "Compacto") ||
		strings.HasPrefix(variant.Codigo, compactCodePrefix)
}

// MinQuantity is 1 for the compact line and 10 otherwise. The step
// equals the minimum.
func MinQuantity(group models.ProductGroup, variant models.ProductVariant) int {
	if IsCompact(group, variant) {
		return 1
	}
	return 10
}

// QuantityStep mirrors MinQuantity; quantities move in whole steps.
func QuantityStep(group models.ProductGroup, variant models.ProductVariant) int {
	return MinQuantity(group, variant)
}

// IncreaseQuantity steps the quantity up, capped at the variant's
// stock. An increment that would exceed stock is a no-op.
func IncreaseQuantity(group models.ProductGroup, variant models.ProductVariant, quantity int) int {
	next := quantity + QuantityStep(group, variant)
	if next > variant.Stock {
		return quantity
	}
	return next
}

// DecreaseQuantity steps the quantity down, floored at the minimum.
func DecreaseQuantity(group models.ProductGroup, variant models.ProductVariant, quantity int) int {
	next := quantity - QuantityStep(group, variant)
	if min := MinQuantity(group, variant); next < min {
		return min
	}
	return next
}
