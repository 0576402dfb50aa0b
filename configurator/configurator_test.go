package configurator

import (
	"testing"

	"github.com/stretchr/testify/require"

	"obraexpress-store/models"
)

// alveolarGroup mimics a catalog group where not every ancho/largo
// combination exists: 2.1m sheets come in 5.8m and 11.6m, 1.05m only
// in 2.9m.
func alveolarGroup() models.ProductGroup {
	return models.ProductGroup{
		ID:        "policarbonato-alveolar",
		Nombre:    "Policarbonato Alveolar",
		Categoria: "Policarbonatos",
		Tipo:      "Policarbonato Alveolar",
		Variantes: []models.ProductVariant{
			{Codigo: "111001", Nombre: "Policarbonato Alveolar", Color: "Clear", Espesor: "4mm", Ancho: "2,1", Largo: "5,8", PrecioConIVA: 45000, Stock: 100},
			{Codigo: "111002", Nombre: "Policarbonato Alveolar", Color: "Clear", Espesor: "4mm", Ancho: "2,1", Largo: "11,6", PrecioConIVA: 89000, Stock: 60},
			{Codigo: "111003", Nombre: "Policarbonato Alveolar", Color: "Bronce", Espesor: "4mm", Ancho: "2,1", Largo: "5,8", PrecioConIVA: 45000, Stock: 40},
			{Codigo: "111004", Nombre: "Policarbonato Alveolar", Color: "Clear", Espesor: "6mm", Ancho: "2,1", Largo: "5,8", PrecioConIVA: 61000, Stock: 25},
			{Codigo: "111005", Nombre: "Policarbonato Alveolar", Color: "Clear", Espesor: "4mm", Ancho: "1,05", Largo: "2,9", PrecioConIVA: 19000, Stock: 200},
		},
	}
}

func compactGroup() models.ProductGroup {
	return models.ProductGroup{
		ID:     "policarbonato-compacto",
		Nombre: "Policarbonato Compacto",
		Variantes: []models.ProductVariant{
			{Codigo: "517101", Nombre: "Policarbonato Compacto", Color: "Clear", Espesor: "3mm", Ancho: "2,05", Largo: "3,05", PrecioConIVA: 98000, Stock: 5},
		},
	}
}

func TestNewSelection(t *testing.T) {
	group := alveolarGroup()
	sel := NewSelection(group)

	require.Equal(t, "111001", sel.Variant.Codigo)
	require.Equal(t, "Clear", sel.Color)
	require.Equal(t, "4mm", sel.Espesor)
	require.Equal(t, "2,1", sel.Ancho)
	require.Equal(t, "5,8", sel.Largo)
	require.Equal(t, 10, sel.Quantity)
}

func TestNewSelection_EmptyGroup(t *testing.T) {
	sel := NewSelection(models.ProductGroup{})
	require.Equal(t, "", sel.Variant.Codigo)
}

func TestResolveVariant_ExactMatch(t *testing.T) {
	group := alveolarGroup()
	v := ResolveVariant(group, "Bronce", "4mm", "2,1", "5,8", models.ProductVariant{})
	require.Equal(t, "111003", v.Codigo)
}

func TestResolveVariant_StaleFallback(t *testing.T) {
	group := alveolarGroup()
	previous := group.Variantes[0]

	// Bronce exists only in 5,8; an 11,6 request has no match and the
	// previous variant is kept
	v := ResolveVariant(group, "Bronce", "4mm", "2,1", "11,6", previous)
	require.Equal(t, previous.Codigo, v.Codigo)
}

func TestUniqueOptionLists(t *testing.T) {
	group := alveolarGroup()
	require.Equal(t, []string{"Clear", "Bronce"}, UniqueColors(group))
	require.Equal(t, []string{"4mm", "6mm"}, UniqueEspesores(group))
	require.Equal(t, []string{"2,1", "1,05"}, UniqueAnchos(group))
}

func TestAvailableLargos_NarrowedByAncho(t *testing.T) {
	group := alveolarGroup()

	require.Equal(t, []string{"5,8", "11,6", "2,9"}, AvailableLargos(group, ""))
	require.Equal(t, []string{"5,8", "11,6"}, AvailableLargos(group, "2,1"))
	require.Equal(t, []string{"2,9"}, AvailableLargos(group, "1,05"))
}

func TestSetAncho_AutoSelectsValidLargo(t *testing.T) {
	group := alveolarGroup()
	sel := NewSelection(group)

	// Switching to the narrow sheet invalidates largo 5,8; the first
	// valid largo is auto-selected and the variant re-resolves
	sel = sel.SetAncho(group, "1,05")
	require.Equal(t, "2,9", sel.Largo)
	require.Equal(t, "111005", sel.Variant.Codigo)
}

func TestSetColorAndEspesor(t *testing.T) {
	group := alveolarGroup()
	sel := NewSelection(group)

	sel = sel.SetColor(group, "Bronce")
	require.Equal(t, "111003", sel.Variant.Codigo)

	sel = sel.SetColor(group, "Clear").SetEspesor(group, "6mm")
	require.Equal(t, "111004", sel.Variant.Codigo)
}

func TestSelection_ResolutionIsIdempotent(t *testing.T) {
	group := alveolarGroup()
	sel := NewSelection(group)

	once := sel.SetColor(group, "Bronce")
	twice := once.SetColor(group, "Bronce")
	require.Equal(t, once, twice)
}

func TestIsCompact(t *testing.T) {
	require.True(t, IsCompact(compactGroup(), compactGroup().Variantes[0]))
	require.False(t, IsCompact(alveolarGroup(), alveolarGroup().Variantes[0]))

	// SKU prefix alone marks the compact line even without the name
	plain := models.ProductGroup{Nombre: "Plancha"}
	require.True(t, IsCompact(plain, models.ProductVariant{Codigo: "517999", Nombre: "Plancha"}))
}

func TestQuantityPolicy(t *testing.T) {
	group := alveolarGroup()
	variant := group.Variantes[0] // stock 100

	require.Equal(t, 10, MinQuantity(group, variant))
	require.Equal(t, 10, QuantityStep(group, variant))

	require.Equal(t, 20, IncreaseQuantity(group, variant, 10))
	require.Equal(t, 10, DecreaseQuantity(group, variant, 20))

	// Decrement never goes below the minimum
	require.Equal(t, 10, DecreaseQuantity(group, variant, 10))

	// Increment past stock is a no-op
	require.Equal(t, 100, IncreaseQuantity(group, variant, 100))
}

func TestQuantityPolicy_CompactLine(t *testing.T) {
	group := compactGroup()
	variant := group.Variantes[0] // stock 5

	require.Equal(t, 1, MinQuantity(group, variant))
	require.Equal(t, 2, IncreaseQuantity(group, variant, 1))
	require.Equal(t, 5, IncreaseQuantity(group, variant, 5))
	require.Equal(t, 1, DecreaseQuantity(group, variant, 1))
}

func TestAdjustQuantity_RaiseOnly(t *testing.T) {
	alveolar := alveolarGroup()
	sel := NewSelection(alveolar)
	sel.Quantity = 30

	// Re-resolving within the same line never reduces the quantity
	sel = sel.SetColor(alveolar, "Bronce")
	require.Equal(t, 30, sel.Quantity)
}
