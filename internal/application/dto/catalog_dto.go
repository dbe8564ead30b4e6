package dto

import "time"

// CreateProductRequest body para POST /api/products.
type CreateProductRequest struct {
	Name              string `json:"name"`
	SKU               string `json:"sku"`
	LowStockThreshold *int64 `json:"low_stock_threshold,omitempty"`
}

// UpdateProductRequest body para PUT /api/products/:id. Campos nil no se tocan.
type UpdateProductRequest struct {
	Name              *string `json:"name,omitempty"`
	LowStockThreshold *int64  `json:"low_stock_threshold,omitempty"`
}

// ProductResponse representación de un producto en respuestas.
type ProductResponse struct {
	ID                string    `json:"id"`
	Name              string    `json:"name"`
	SKU               string    `json:"sku"`
	LowStockThreshold *int64    `json:"low_stock_threshold,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// ProductListResponse listado paginado de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}

// CreateStoreRequest body para POST /api/stores.
type CreateStoreRequest struct {
	Name     string `json:"name"`
	Location string `json:"location"`
}

// UpdateStoreRequest body para PUT /api/stores/:id.
type UpdateStoreRequest struct {
	Name     *string `json:"name,omitempty"`
	Location *string `json:"location,omitempty"`
}

// StoreResponse representación de una tienda en respuestas.
type StoreResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Location  string    `json:"location"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// StoreListResponse listado paginado de tiendas.
type StoreListResponse struct {
	Items []StoreResponse `json:"items"`
	Page  PageResponse    `json:"page"`
}

// CreateSupplierRequest body para POST /api/suppliers.
type CreateSupplierRequest struct {
	Name        string `json:"name"`
	ContactInfo string `json:"contact_info,omitempty"`
}

// UpdateSupplierRequest body para PUT /api/suppliers/:id.
type UpdateSupplierRequest struct {
	Name        *string `json:"name,omitempty"`
	ContactInfo *string `json:"contact_info,omitempty"`
}

// SupplierResponse representación de un proveedor en respuestas.
type SupplierResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	ContactInfo string    `json:"contact_info,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// SupplierListResponse listado paginado de proveedores.
type SupplierListResponse struct {
	Items []SupplierResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}
