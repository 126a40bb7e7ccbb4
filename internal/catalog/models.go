package catalog

import "github.com/kaffecito/kaffecito/pkg/types"

// Category mirrors the backend's categoria payload.
type Category struct {
	ID          int    `json:"id_categoria"`
	Name        string `json:"nombre_categoria"`
	Description string `json:"descripcion_categoria"`
	Image       string `json:"img,omitempty"`
}

// Product mirrors the backend's producto payload. Price tolerates the
// string-or-number encodings the backend emits.
type Product struct {
	ID          int         `json:"id_producto"`
	Name        string      `json:"nombre_producto"`
	Description string      `json:"descripcion_producto"`
	Price       types.Price `json:"precio_producto"`
	CategoryID  int         `json:"categoria_id"`
	Stock       int         `json:"stock_producto"`
	Active      bool        `json:"estado_producto"`
	ImageURL    string      `json:"imagen_url,omitempty"`
}

// Orderable reports whether the product may be added to an order: active
// and in stock.
func (p Product) Orderable() bool {
	return p.Active && p.Stock > 0
}
