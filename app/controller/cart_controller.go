package controller

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"time"

	"obraexpress-store/cart"
	"obraexpress-store/configurator"
	"obraexpress-store/models"
	"obraexpress-store/pricing"
	"obraexpress-store/repository"
)

// CartController handles HTTP requests for session carts. Line items
// are always rebuilt server-side from the catalog: the client sends a
// SKU and a quantity, never a price.
type CartController struct {
	store      *cart.Store
	repository repository.ProductRepositoryInterface
}

// NewCartController creates a new CartController
func NewCartController(store *cart.Store, repo repository.ProductRepositoryInterface) *CartController {
	return &CartController{store: store, repository: repo}
}

// addItemRequest is the body of POST /api/cart/{session}/items.
type addItemRequest struct {
	Codigo        string `json:"codigo"`
	Cantidad      int    `json:"cantidad"`
	FechaDespacho string `json:"fecha_despacho,omitempty"`
}

// HandleCart routes requests under /api/cart/{session}[/items[/{codigo}]].
func (c *CartController) HandleCart(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/api/cart/")
	parts := strings.Split(path, "/")
	if len(parts) == 0 || parts[0] == "" {
		http.Error(w, "Session id is required", http.StatusBadRequest)
		return
	}
	session := parts[0]

	switch {
	// GET /api/cart/{session}
	case len(parts) == 1 && r.Method == http.MethodGet:
		writeJSON(w, http.StatusOK, c.store.State(session))

	// POST /api/cart/{session}/items
	case len(parts) == 2 && parts[1] == "items" && r.Method == http.MethodPost:
		c.addItem(w, r, session)

	// DELETE /api/cart/{session}/items/{codigo}
	case len(parts) == 3 && parts[1] == "items" && r.Method == http.MethodDelete:
		c.store.RemoveItem(session, parts[2])
		writeJSON(w, http.StatusOK, c.store.State(session))

	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// addItem resolves the SKU against the catalog, prices it through the
// area pricing engine and clamps the quantity to the variant's policy
// before the line enters the cart. Client-supplied prices never do.
func (c *CartController) addItem(w http.ResponseWriter, r *http.Request, session string) {
	var req addItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.Codigo == "" {
		errorJSON(w, http.StatusBadRequest, "codigo is required")
		return
	}

	var dispatchDate *time.Time
	if req.FechaDespacho != "" {
		parsed, err := time.Parse("2006-01-02", req.FechaDespacho)
		if err != nil {
			errorJSON(w, http.StatusBadRequest, "fecha_despacho must be YYYY-MM-DD")
			return
		}
		dispatchDate = &parsed
	}

	variant, err := c.repository.GetVariantByCode(context.Background(), req.Codigo)
	if err != nil {
		log.Printf("❌ addItem: Error fetching variant %s: %v", req.Codigo, err)
		http.Error(w, "Failed to fetch product", http.StatusInternalServerError)
		return
	}
	if variant == nil {
		errorJSON(w, http.StatusNotFound, "Product not found")
		return
	}

	group := models.ProductGroup{
		ID:          variant.Codigo,
		Nombre:      variant.Nombre,
		Descripcion: variant.Descripcion,
		Categoria:   variant.Categoria,
		Tipo:        variant.Tipo,
		Imagen:      variant.Imagen,
		Variantes:   []models.ProductVariant{*variant},
	}

	// Quantity policy: floor at the line's minimum, cap what the
	// session already holds plus this add at the variant's stock.
	cantidad := req.Cantidad
	if min := configurator.MinQuantity(group, *variant); cantidad < min {
		cantidad = min
	}
	inCart := 0
	for _, it := range c.store.Items(session) {
		if it.ID == variant.Codigo {
			inCart = it.Cantidad
		}
	}
	if inCart+cantidad > variant.Stock {
		cantidad = variant.Stock - inCart
	}
	if cantidad <= 0 {
		errorJSON(w, http.StatusConflict, "Stock insuficiente")
		return
	}

	finalPrice := variant.PrecioConIVA
	if engine := pricing.GetEngine(); engine != nil {
		finalPrice = engine.FinalUnitPrice(variant.Categoria, variant.Tipo, variant.Ancho, variant.Largo, finalPrice)
	}

	sel := configurator.Selection{
		Color:    variant.Color,
		Espesor:  variant.Espesor,
		Ancho:    variant.Ancho,
		Largo:    variant.Largo,
		Variant:  *variant,
		Quantity: cantidad,
	}
	c.store.AddItem(session, configurator.BuildCartItem(group, sel, finalPrice, dispatchDate))
	writeJSON(w, http.StatusCreated, c.store.State(session))
}
