package entity

import "time"

// Módulos que generan entradas de actividad.
const (
	ActivityModuleInventory = "inventory"
	ActivityModuleAuth      = "auth"
	ActivityModuleCatalog   = "catalog"
)

// Kinds del detalle de una entrada (variante etiquetada, una por tipo de acción).
const (
	DetailKindMovement = "movement"
	DetailKindAuth     = "auth"
	DetailKindCatalog  = "catalog"
)

// ActivityDetails es el detalle tipado de una entrada de actividad. Kind indica
// qué campos aplican; los demás quedan en cero y se omiten al serializar.
// Reemplaza al JSON libre que cada consumidor parseaba por su cuenta.
type ActivityDetails struct {
	Kind string `json:"kind"`

	// Kind == movement
	MovementID   string `json:"movement_id,omitempty"`
	MovementType string `json:"movement_type,omitempty"`
	Quantity     int64  `json:"quantity,omitempty"`
	ProductID    string `json:"product_id,omitempty"`
	StoreID      string `json:"store_id,omitempty"`

	// Kind == auth
	IPAddress string `json:"ip_address,omitempty"`

	// Kind == catalog
	EntityID   string `json:"entity_id,omitempty"`
	EntityName string `json:"entity_name,omitempty"`
}

// ActivityEntry es un hecho de auditoría append-only, independiente del libro de
// movimientos pero correlacionable por actor y timestamp. No participa en ningún
// cálculo de inventario.
type ActivityEntry struct {
	ID        string
	Actor     string // UserID; vacío nunca se persiste (se valida al registrar)
	Action    string // ej: stock_in, stock_out, login, create_product
	Module    string // inventory, auth, catalog
	Details   ActivityDetails
	Timestamp time.Time
}
