package repository

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strings"

	"obraexpress-store/db"
	"obraexpress-store/models"
)

// ProductRepository handles database operations for the product catalog.
type ProductRepository struct{}

// NewProductRepository creates a new ProductRepository
func NewProductRepository() *ProductRepository {
	return &ProductRepository{}
}

// Ensure ProductRepository implements ProductRepositoryInterface
var _ ProductRepositoryInterface = (*ProductRepository)(nil)

const variantColumns = `
	codigo, nombre, descripcion, categoria, tipo, precio_con_iva,
	espesor, dimensiones, COALESCE(ancho, ''), COALESCE(largo, ''),
	color, COALESCE(uso, ''), stock, uv_protection, COALESCE(garantia, ''),
	COALESCE(imagen, '')
`

func scanVariant(scanner interface{ Scan(...any) error }) (models.ProductVariant, error) {
	var v models.ProductVariant
	err := scanner.Scan(
		&v.Codigo,
		&v.Nombre,
		&v.Descripcion,
		&v.Categoria,
		&v.Tipo,
		&v.PrecioConIVA,
		&v.Espesor,
		&v.Dimensiones,
		&v.Ancho,
		&v.Largo,
		&v.Color,
		&v.Uso,
		&v.Stock,
		&v.UVProtection,
		&v.Garantia,
		&v.Imagen,
	)
	return v, err
}

// GetCatalog returns every active variant grouped by category and by
// base product identity, with precio_desde and stock_total aggregated
// per group.
func (r *ProductRepository) GetCatalog(ctx context.Context) (map[string][]models.ProductGroup, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM products
		WHERE is_active = true
		ORDER BY categoria, nombre, codigo
	`, variantColumns)

	rows, err := db.DB.QueryContext(ctx, query)
	if err != nil {
		log.Printf("❌ GetCatalog: Error fetching products: %v", err)
		return nil, fmt.Errorf("failed to fetch products: %w", err)
	}
	defer rows.Close()

	// Group rows by (categoria, nombre); rows arrive ordered so groups
	// are built contiguously.
	byCategory := make(map[string][]models.ProductGroup)
	groupIndex := make(map[string]int)

	for rows.Next() {
		v, err := scanVariant(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product row: %w", err)
		}

		key := v.Categoria + "|" + v.Nombre
		idx, exists := groupIndex[key]
		if !exists {
			group := models.ProductGroup{
				ID:          groupID(v.Categoria, v.Nombre),
				Nombre:      v.Nombre,
				Descripcion: v.Descripcion,
				Categoria:   v.Categoria,
				Tipo:        v.Tipo,
				Imagen:      v.Imagen,
				PrecioDesde: v.PrecioConIVA,
			}
			byCategory[v.Categoria] = append(byCategory[v.Categoria], group)
			idx = len(byCategory[v.Categoria]) - 1
			groupIndex[key] = idx
		}

		group := &byCategory[v.Categoria][idx]
		group.Variantes = append(group.Variantes, v)
		group.VariantesNum = len(group.Variantes)
		group.StockTotal += v.Stock
		if v.PrecioConIVA < group.PrecioDesde {
			group.PrecioDesde = v.PrecioConIVA
		}
		appendDistinct(&group.Colores, v.Color)
		appendDistinct(&group.Espesores, v.Espesor)
		appendDistinct(&group.Dimensiones, v.Dimensiones)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read product rows: %w", err)
	}

	log.Printf("✅ GetCatalog: %d categories loaded", len(byCategory))
	return byCategory, nil
}

// groupID derives a stable URL-safe id from the group identity.
func groupID(categoria, nombre string) string {
	slug := strings.ToLower(categoria + "-" + nombre)
	slug = strings.ReplaceAll(slug, " ", "-")
	return slug
}

// GetGroupByID returns a single product group, or nil when the id is
// unknown.
func (r *ProductRepository) GetGroupByID(ctx context.Context, id string) (*models.ProductGroup, error) {
	catalog, err := r.GetCatalog(ctx)
	if err != nil {
		return nil, err
	}
	for _, groups := range catalog {
		for i := range groups {
			if groups[i].ID == id {
				return &groups[i], nil
			}
		}
	}
	return nil, nil
}

// GetVariantByCode fetches one variant by its unique SKU code.
func (r *ProductRepository) GetVariantByCode(ctx context.Context, codigo string) (*models.ProductVariant, error) {
	query := fmt.Sprintf(`SELECT %s FROM products WHERE codigo = $1`, variantColumns)

	v, err := scanVariant(db.DB.QueryRowContext(ctx, query, codigo))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch variant %s: %w", codigo, err)
	}
	return &v, nil
}

func appendDistinct(values *[]string, value string) {
	if value == "" {
		return
	}
	for _, v := range *values {
		if v == value {
			return
		}
	}
	*values = append(*values, value)
}
