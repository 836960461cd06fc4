package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// Acciones aceptadas en POST /api/inventory/movements.
const (
	ActionRestock    = "restock"
	ActionAssign     = "assign"
	ActionReturn     = "return"
	ActionUsageOrder = "usage_order"
	ActionAdjustment = "adjustment"
)

// MovementLineRequest una línea del movimiento. Según los campos presentes se
// interpreta como línea simple (solo cantidad), de bobina (batch_code) o de
// equipos serializados (instance_ids); batch_code e instance_ids son excluyentes.
type MovementLineRequest struct {
	ItemID      string          `json:"item_id"`
	Quantity    decimal.Decimal `json:"quantity,omitempty"`
	BatchCode   string          `json:"batch_code,omitempty"`
	InstanceIDs []string        `json:"instance_ids,omitempty"`
}

// MovementDataRequest datos del movimiento.
type MovementDataRequest struct {
	CrewID  string                `json:"crew_id,omitempty"`
	OrderID string                `json:"order_id,omitempty"`
	Reason  string                `json:"reason,omitempty"`
	Items   []MovementLineRequest `json:"items"`
}

// RegisterMovementRequest body para POST /api/inventory/movements.
type RegisterMovementRequest struct {
	Action string              `json:"action"`
	Data   MovementDataRequest `json:"data"`
}

// MovementResponse una entrada del historial.
type MovementResponse struct {
	ID         string          `json:"id"`
	ItemID     string          `json:"item_id"`
	Type       string          `json:"type"`
	Quantity   decimal.Decimal `json:"quantity"`
	Reason     string          `json:"reason,omitempty"`
	CrewID     *string         `json:"crew_id,omitempty"`
	OrderID    *string         `json:"order_id,omitempty"`
	BatchCode  *string         `json:"batch_code,omitempty"`
	InstanceID *string         `json:"instance_id,omitempty"`
	CreatedBy  string          `json:"created_by"`
	CreatedAt  time.Time       `json:"created_at"`
}

// HistoryQueryRequest filtros para GET /api/inventory/history.
type HistoryQueryRequest struct {
	ItemID    string `query:"item_id"`
	CrewID    string `query:"crew_id"`
	OrderID   string `query:"order_id"`
	BatchCode string `query:"batch_code"`
	From      string `query:"from"` // RFC 3339 o 2006-01-02
	To        string `query:"to"`
	PageRequest
}
