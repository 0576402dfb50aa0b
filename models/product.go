package models

// ProductVariant represents a concrete SKU in the catalog.
// Codigo is globally unique and is the join key used by the cart
// and by dispatch date persistence.
type ProductVariant struct {
	Codigo       string `json:"codigo"`
	Nombre       string `json:"nombre"`
	Descripcion  string `json:"descripcion"`
	Categoria    string `json:"categoria"`
	Tipo         string `json:"tipo"`
	PrecioConIVA int    `json:"precio_con_iva"`
	Espesor      string `json:"espesor"`
	Dimensiones  string `json:"dimensiones"`
	Ancho        string `json:"ancho"`
	Largo        string `json:"largo"`
	Color        string `json:"color"`
	Uso          string `json:"uso"`
	Stock        int    `json:"stock"`
	UVProtection bool   `json:"uv_protection"`
	Garantia     string `json:"garantia"`
	Imagen       string `json:"imagen"`
}

// ProductGroup is a named set of variants sharing a base product identity.
// PrecioDesde and StockTotal are aggregated over the variants when the
// group is assembled from catalog rows.
type ProductGroup struct {
	ID           string           `json:"id"`
	Nombre       string           `json:"nombre"`
	Descripcion  string           `json:"descripcion"`
	Categoria    string           `json:"categoria"`
	Tipo         string           `json:"tipo"`
	Variantes    []ProductVariant `json:"variantes"`
	Colores      []string         `json:"colores"`
	Espesores    []string         `json:"espesores"`
	Dimensiones  []string         `json:"dimensiones"`
	PrecioDesde  int              `json:"precio_desde"`
	StockTotal   int              `json:"stock_total"`
	VariantesNum int              `json:"variantes_count"`
	Imagen       string           `json:"imagen"`
}

// CatalogResponse is the payload served by GET /api/productos.
type CatalogResponse struct {
	ProductosPorCategoria map[string][]ProductGroup `json:"productos_por_categoria"`
}
