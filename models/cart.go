package models

import "time"

// CartItem is the line item handed to the cart when a configured
// variant is added. Especificaciones is the human readable summary
// shown in the cart and on the invoice.
type CartItem struct {
	ID               string     `json:"id"`
	Tipo             string     `json:"tipo"`
	Nombre           string     `json:"nombre"`
	Descripcion      string     `json:"descripcion"`
	Categoria        string     `json:"categoria"`
	Cantidad         int        `json:"cantidad"`
	PrecioUnitario   int        `json:"precioUnitario"`
	Total            int        `json:"total"`
	Imagen           string     `json:"imagen,omitempty"`
	FechaDespacho    *time.Time `json:"fechaDespacho,omitempty"`
	Especificaciones []string   `json:"especificaciones"`
}

// CartState is the read-only view of a session cart.
type CartState struct {
	Items []CartItem `json:"items"`
	Total int        `json:"total"`
}
