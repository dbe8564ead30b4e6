package dto

import (
	"time"

	"github.com/bazaartech/inventory-ledger/internal/domain/entity"
)

// ActivityEntryResponse una entrada del registro de actividad.
type ActivityEntryResponse struct {
	ID        string                 `json:"id"`
	Actor     string                 `json:"actor"`
	Action    string                 `json:"action"`
	Module    string                 `json:"module"`
	Details   entity.ActivityDetails `json:"details"`
	Timestamp time.Time              `json:"timestamp"`
}

// ActivityListResponse listado de actividad, más reciente primero.
type ActivityListResponse struct {
	Total int                     `json:"total"`
	Items []ActivityEntryResponse `json:"items"`
}
