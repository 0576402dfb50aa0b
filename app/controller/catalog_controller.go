package controller

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"obraexpress-store/configurator"
	"obraexpress-store/models"
	"obraexpress-store/pricing"
	"obraexpress-store/repository"
	"obraexpress-store/service"
)

// CatalogController handles HTTP requests for the product catalog and
// the product configurator.
type CatalogController struct {
	repository repository.ProductRepositoryInterface
}

// NewCatalogController creates a new CatalogController
func NewCatalogController(repo repository.ProductRepositoryInterface) *CatalogController {
	return &CatalogController{repository: repo}
}

// GetProducts handles GET /api/productos
func (c *CatalogController) GetProducts(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	ctx := context.Background()
	catalog, err := c.repository.GetCatalog(ctx)
	if err != nil {
		log.Printf("❌ GetProducts: Error fetching catalog: %v", err)
		http.Error(w, "Failed to fetch catalog", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, models.CatalogResponse{ProductosPorCategoria: catalog})
}

// resolveRequest is the body of POST /api/configurator/resolve.
type resolveRequest struct {
	GroupID  string `json:"group_id"`
	Color    string `json:"color"`
	Espesor  string `json:"espesor"`
	Ancho    string `json:"ancho"`
	Largo    string `json:"largo"`
	Previous string `json:"previous_codigo"`
	Cantidad int    `json:"cantidad"`
}

// resolveResponse returns the resolved variant with its recomputed
// option lists and the final (possibly area-adjusted) price.
type resolveResponse struct {
	Variante       models.ProductVariant `json:"variante"`
	Colores        []string              `json:"colores"`
	Espesores      []string              `json:"espesores"`
	Anchos         []string              `json:"anchos"`
	LargosValidos  []string              `json:"largos_validos"`
	Largo          string                `json:"largo"`
	Cantidad       int                   `json:"cantidad"`
	CantidadMinima int                   `json:"cantidad_minima"`
	PrecioUnitario int                   `json:"precio_unitario"`
	Total          int                   `json:"total"`
}

// ResolveConfiguration handles POST /api/configurator/resolve
func (c *CatalogController) ResolveConfiguration(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req resolveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	ctx := context.Background()
	group, err := c.repository.GetGroupByID(ctx, req.GroupID)
	if err != nil {
		log.Printf("❌ ResolveConfiguration: Error fetching group %s: %v", req.GroupID, err)
		http.Error(w, "Failed to fetch product group", http.StatusInternalServerError)
		return
	}
	if group == nil {
		http.Error(w, "Product group not found", http.StatusNotFound)
		return
	}

	// Seed the previous variant for the stale-fallback policy.
	previous := configurator.DefaultVariant(*group)
	if req.Previous != "" {
		for _, v := range group.Variantes {
			if v.Codigo == req.Previous {
				previous = v
				break
			}
		}
	}

	sel := configurator.Selection{
		Color:    req.Color,
		Espesor:  req.Espesor,
		Ancho:    req.Ancho,
		Largo:    req.Largo,
		Variant:  previous,
		Quantity: req.Cantidad,
	}
	// Re-running SetAncho applies the largo narrowing and resolves the
	// variant in one step.
	sel = sel.SetAncho(*group, req.Ancho)

	finalPrice := sel.Variant.PrecioConIVA
	if engine := pricing.GetEngine(); engine != nil {
		finalPrice = engine.FinalUnitPrice(group.Categoria, group.Tipo, sel.Ancho, sel.Largo, finalPrice)
	}

	writeJSON(w, http.StatusOK, resolveResponse{
		Variante:       sel.Variant,
		Colores:        configurator.UniqueColors(*group),
		Espesores:      configurator.UniqueEspesores(*group),
		Anchos:         configurator.UniqueAnchos(*group),
		LargosValidos:  configurator.AvailableLargos(*group, sel.Ancho),
		Largo:          sel.Largo,
		Cantidad:       sel.Quantity,
		CantidadMinima: configurator.MinQuantity(*group, sel.Variant),
		PrecioUnitario: finalPrice,
		Total:          finalPrice * sel.Quantity,
	})
}

// GetProductImage handles GET /api/productos/{codigo}/image?size=thumb|medium
// Serves an optimized, cached JPEG of the product image.
func (c *CatalogController) GetProductImage(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	path := strings.TrimPrefix(r.URL.Path, "/api/productos/")
	codigo := strings.TrimSuffix(path, "/image")
	if codigo == "" || strings.Contains(codigo, "/") {
		http.Error(w, "Invalid product code", http.StatusBadRequest)
		return
	}

	size := r.URL.Query().Get("size")
	if size == "" {
		size = "medium"
	}

	cachePath := service.ImageCachePath(codigo, size)
	if service.ImageCacheExists(cachePath) {
		data, err := service.ReadImageFromCache(cachePath)
		if err == nil {
			w.Header().Set("Content-Type", "image/jpeg")
			w.Write(data)
			return
		}
	}

	ctx := context.Background()
	variant, err := c.repository.GetVariantByCode(ctx, codigo)
	if err != nil {
		http.Error(w, "Failed to fetch product", http.StatusInternalServerError)
		return
	}
	if variant == nil || variant.Imagen == "" {
		http.Error(w, "Product image not found", http.StatusNotFound)
		return
	}

	raw, err := os.ReadFile(filepath.Join("static", filepath.Clean(variant.Imagen)))
	if err != nil {
		log.Printf("⚠️  GetProductImage: missing image file for %s: %v", codigo, err)
		http.Error(w, "Product image not found", http.StatusNotFound)
		return
	}

	optimized, err := service.OptimizeProductImage(raw, size)
	if err != nil {
		log.Printf("❌ GetProductImage: optimization failed for %s: %v", codigo, err)
		http.Error(w, "Failed to optimize image", http.StatusInternalServerError)
		return
	}
	if err := service.SaveImageToCache(cachePath, optimized); err != nil {
		log.Printf("⚠️  GetProductImage: cache write failed: %v", err)
	}

	w.Header().Set("Content-Type", "image/jpeg")
	w.Write(optimized)
}

// writeJSON writes a JSON response with the given status.
func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("❌ writeJSON: Error encoding response: %v", err)
	}
}

// errorJSON writes a JSON error body.
func errorJSON(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
