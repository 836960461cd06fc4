package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateBatchRequest body para POST /api/batches.
type CreateBatchRequest struct {
	BatchCode  string          `json:"batch_code"`
	ItemID     string          `json:"item_id"`
	InitialQty decimal.Decimal `json:"initial_quantity"`
	Reason     string          `json:"reason,omitempty"`
}

// AddBatchQuantityRequest body para PUT /api/batches/:code/quantity.
type AddBatchQuantityRequest struct {
	QuantityToAdd decimal.Decimal `json:"quantity_to_add"`
	Reason        string          `json:"reason,omitempty"`
}

// AdjustBatchRequest body para PUT /api/batches/:code (corrección administrativa).
type AdjustBatchRequest struct {
	ItemID     string          `json:"item_id,omitempty"` // reasignar la bobina a otro ítem
	CurrentQty decimal.Decimal `json:"current_quantity"`
	Reason     string          `json:"reason"`
}

// BatchResponse representación de una bobina.
type BatchResponse struct {
	ID         string          `json:"id"`
	Code       string          `json:"code"`
	ItemID     string          `json:"item_id"`
	InitialQty decimal.Decimal `json:"initial_quantity"`
	CurrentQty decimal.Decimal `json:"current_quantity"`
	Unit       string          `json:"unit"`
	Status     string          `json:"status"`
	Location   string          `json:"location"`
	CrewID     *string         `json:"crew_id,omitempty"`
	AcquiredAt time.Time       `json:"acquired_at"`
}
