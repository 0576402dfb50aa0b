// Package configurator implements the product configuration rules:
// resolving a color/espesor/ancho/largo selection to a concrete SKU,
// recomputing dependent option lists, and enforcing the quantity
// policy. Everything here is pure; callers own the selection state.
package configurator

import (
	"obraexpress-store/models"
)

// Selection is the ephemeral state of one configurator instance. It
// always references exactly one variant; resolution never leaves it
// empty as long as the group has at least one variant.
type Selection struct {
	Color    string                `json:"color"`
	Espesor  string                `json:"espesor"`
	Ancho    string                `json:"ancho"`
	Largo    string                `json:"largo"`
	Variant  models.ProductVariant `json:"variante"`
	Quantity int                   `json:"cantidad"`
}

// NewSelection defaults to the group's first variant. An empty group
// degrades to a zero selection rather than an error.
func NewSelection(group models.ProductGroup) Selection {
	first := DefaultVariant(group)
	return Selection{
		Color:    first.Color,
		Espesor:  first.Espesor,
		Ancho:    first.Ancho,
		Largo:    first.Largo,
		Variant:  first,
		Quantity: MinQuantity(group, first),
	}
}

// DefaultVariant returns the first variant of the group, or a zero
// variant when the group is empty.
func DefaultVariant(group models.ProductGroup) models.ProductVariant {
	if len(group.Variantes) == 0 {
		return models.ProductVariant{}
	}
	return group.Variantes[0]
}

// ResolveVariant finds the variant matching all four dimensions. When
// no variant matches, the previously selected variant is returned
// unchanged: a stale selection beats an empty one.
func ResolveVariant(group models.ProductGroup, color, espesor, ancho, largo string, previous models.ProductVariant) models.ProductVariant {
	for _, v := range group.Variantes {
		if v.Color == color && v.Espesor == espesor && v.Ancho == ancho && v.Largo == largo {
			return v
		}
	}
	return previous
}

// UniqueColors lists the distinct colors across the group's variants,
// in first-seen order.
func UniqueColors(group models.ProductGroup) []string {
	return distinct(group.Variantes, func(v models.ProductVariant) string { return v.Color })
}

// UniqueEspesores lists the distinct thicknesses across the group.
func UniqueEspesores(group models.ProductGroup) []string {
	return distinct(group.Variantes, func(v models.ProductVariant) string { return v.Espesor })
}

// UniqueAnchos lists the distinct widths across the group.
func UniqueAnchos(group models.ProductGroup) []string {
	return distinct(group.Variantes, func(v models.ProductVariant) string { return v.Ancho })
}

// AvailableLargos lists the lengths valid for the given width. With
// no width selected every length in the group is valid. Width is the
// only dimension that narrows another one; color and espesor stay
// independent.
func AvailableLargos(group models.ProductGroup, ancho string) []string {
	if ancho == "" {
		return distinct(group.Variantes, func(v models.ProductVariant) string { return v.Largo })
	}
	var matching []models.ProductVariant
	for _, v := range group.Variantes {
		if v.Ancho == ancho {
			matching = append(matching, v)
		}
	}
	return distinct(matching, func(v models.ProductVariant) string { return v.Largo })
}

func distinct(variants []models.ProductVariant, field func(models.ProductVariant) string) []string {
	seen := make(map[string]bool, len(variants))
	var out []string
	for _, v := range variants {
		value := field(v)
		if value == "" || seen[value] {
			continue
		}
		seen[value] = true
		out = append(out, value)
	}
	return out
}

// SetColor re-resolves the selection with a new color.
func (s Selection) SetColor(group models.ProductGroup, color string) Selection {
	s.Color = color
	s.Variant = ResolveVariant(group, color, s.Espesor, s.Ancho, s.Largo, s.Variant)
	return s.adjustQuantity(group)
}

// SetEspesor re-resolves the selection with a new thickness.
func (s Selection) SetEspesor(group models.ProductGroup, espesor string) Selection {
	s.Espesor = espesor
	s.Variant = ResolveVariant(group, s.Color, espesor, s.Ancho, s.Largo, s.Variant)
	return s.adjustQuantity(group)
}

// SetAncho re-resolves the selection with a new width. When the
// current length is not valid for the new width, the first available
// length is auto-selected before the variant lookup runs.
func (s Selection) SetAncho(group models.ProductGroup, ancho string) Selection {
	s.Ancho = ancho

	largos := AvailableLargos(group, ancho)
	if len(largos) > 0 && !containsString(largos, s.Largo) {
		s.Largo = largos[0]
	}

	s.Variant = ResolveVariant(group, s.Color, s.Espesor, ancho, s.Largo, s.Variant)
	return s.adjustQuantity(group)
}

// SetLargo re-resolves the selection with a new length.
func (s Selection) SetLargo(group models.ProductGroup, largo string) Selection {
	s.Largo = largo
	s.Variant = ResolveVariant(group, s.Color, s.Espesor, s.Ancho, largo, s.Variant)
	return s.adjustQuantity(group)
}

// adjustQuantity raises the quantity to the resolved variant's minimum
// when it fell below it. A quantity already above the new minimum is
// never reduced.
func (s Selection) adjustQuantity(group models.ProductGroup) Selection {
	if min := MinQuantity(group, s.Variant); s.Quantity < min {
		s.Quantity = min
	}
	return s
}

func containsString(values []string, value string) bool {
	for _, v := range values {
		if v == value {
			return true
		}
	}
	return false
}
