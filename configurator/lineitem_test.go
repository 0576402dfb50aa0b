package configurator

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"obraexpress-store/models"
)

func TestBuildCartItem(t *testing.T) {
	group := alveolarGroup()
	sel := NewSelection(group)
	dispatchDate := time.Date(2025, time.March, 27, 0, 0, 0, 0, time.UTC)

	item := BuildCartItem(group, sel, 47000, &dispatchDate)

	require.Equal(t, "111001", item.ID)
	require.Equal(t, "producto", item.Tipo)
	require.Equal(t, "Policarbonato Alveolar", item.Nombre)
	require.Equal(t, 10, item.Cantidad)
	require.Equal(t, 47000, item.PrecioUnitario)
	require.Equal(t, 470000, item.Total)
	require.NotNil(t, item.FechaDespacho)

	require.Equal(t, []string{
		"Código: 111001",
		"Espesor: 4 mm",
		"Ancho: 2,10 mts",
		"Largo: 5,80 mts",
		"Color: Clear",
		"Protección UV: No",
		"Fecha de despacho: jueves, 27 de marzo",
	}, item.Especificaciones)
}

func TestBuildCartItem_OmitsEmptyOptionals(t *testing.T) {
	group := models.ProductGroup{
		Nombre: "Perfil U",
		Variantes: []models.ProductVariant{
			{Codigo: "201001", Nombre: "Perfil U", Espesor: "4mm", Color: "Sin color", Stock: 50},
		},
	}
	sel := NewSelection(group)

	item := BuildCartItem(group, sel, 3500, nil)

	require.Nil(t, item.FechaDespacho)
	require.Equal(t, []string{
		"Código: 201001",
		"Espesor: 4 mm",
		"Protección UV: No",
	}, item.Especificaciones)
}

func TestResolveDisplayName_SpecializesGenericName(t *testing.T) {
	group := models.ProductGroup{Nombre: "Policarbonato"}

	got := resolveDisplayName(group, models.ProductVariant{Codigo: "517100", Nombre: "Policarbonato"})
	require.Equal(t, "Policarbonato Compacto", got)

	got = resolveDisplayName(group, models.ProductVariant{Nombre: "Policarbonato Ondulado 0,5mm"})
	require.Equal(t, "Policarbonato Ondulado", got)

	// Specific names pass through untouched
	got = resolveDisplayName(models.ProductGroup{Nombre: "Rollo Compacto"}, models.ProductVariant{})
	require.Equal(t, "Rollo Compacto", got)
}
