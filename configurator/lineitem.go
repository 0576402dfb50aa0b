package configurator

import (
	"fmt"
	"strings"
	"time"

	"obraexpress-store/dispatch"
	"obraexpress-store/models"
	"obraexpress-store/utils"
)

// resolveDisplayName specializes a generic "Policarbonato" group name
// using what the selected variant reveals about the product line.
func resolveDisplayName(group models.ProductGroup, variant models.ProductVariant) string {
	name := group.Nombre
	if name == "" {
		name = variant.Nombre
	}
	if name != "Policarbonato" && name != "policarbonato" {
		return name
	}
	switch {
	case IsCompact(group, variant):
		return "Policarbonato Compacto"
	case strings.Contains(variant.Nombre, "Alveolar") || strings.Contains(group.Categoria, "Alveolar"):
		return "Policarbonato Alveolar"
	case strings.Contains(variant.Nombre, "Ondulado") || strings.Contains(group.Categoria, "Ondulado"):
		return "Policarbonato Ondulado"
	}
	return name
}

// BuildCartItem assembles the line item handed to the cart for the
// current selection. finalPrice is the (possibly area-adjusted) unit
// price; dispatchDate is the customer's confirmed dispatch date, if any.
func BuildCartItem(group models.ProductGroup, sel Selection, finalPrice int, dispatchDate *time.Time) models.CartItem {
	variant := sel.Variant

	specs := []string{
		fmt.Sprintf("Código: %s", variant.Codigo),
	}
	if variant.Espesor != "" {
		specs = append(specs, fmt.Sprintf("Espesor: %s mm", utils.CleanEspesor(variant.Espesor)))
	}
	if sel.Ancho != "" {
		specs = append(specs, fmt.Sprintf("Ancho: %s", utils.FormatDimension(sel.Ancho)))
	}
	if sel.Largo != "" {
		specs = append(specs, fmt.Sprintf("Largo: %s", utils.FormatDimension(sel.Largo)))
	}
	if variant.Color != "" && variant.Color != "Sin color" {
		specs = append(specs, fmt.Sprintf("Color: %s", variant.Color))
	}
	if variant.UVProtection {
		specs = append(specs, "Protección UV: Sí")
	} else {
		specs = append(specs, "Protección UV: No")
	}
	if dispatchDate != nil {
		specs = append(specs, fmt.Sprintf("Fecha de despacho: %s", dispatch.FormatFullDate(*dispatchDate)))
	}

	imagen := variant.Imagen
	if imagen == "" {
		imagen = group.Imagen
	}

	return models.CartItem{
		ID:               variant.Codigo,
		Tipo:             "producto",
		Nombre:           resolveDisplayName(group, variant),
		Descripcion:      variant.Descripcion,
		Categoria:        group.Categoria,
		Cantidad:         sel.Quantity,
		PrecioUnitario:   finalPrice,
		Total:            finalPrice * sel.Quantity,
		Imagen:           imagen,
		FechaDespacho:    dispatchDate,
		Especificaciones: specs,
	}
}
