package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateItemRequest body para POST /api/items.
type CreateItemRequest struct {
	Code         string          `json:"code"`
	Type         string          `json:"type"` // material, equipment, tool
	Description  string          `json:"description"`
	Unit         string          `json:"unit"`
	MinStock     decimal.Decimal `json:"min_stock"`
	InitialStock decimal.Decimal `json:"initial_stock,omitempty"` // prohibido para equipment
}

// UpdateItemRequest body para PUT /api/items/:id. CurrentStock nunca se acepta
// por esta vía: el stock solo cambia vía movimientos.
type UpdateItemRequest struct {
	Type        string           `json:"type,omitempty"`
	Description *string          `json:"description,omitempty"`
	Unit        string           `json:"unit,omitempty"`
	MinStock    *decimal.Decimal `json:"min_stock,omitempty"`
}

// ItemResponse representación de un ítem del catálogo.
type ItemResponse struct {
	ID           string          `json:"id"`
	Code         string          `json:"code"`
	Type         string          `json:"type"`
	Description  string          `json:"description"`
	Unit         string          `json:"unit"`
	CurrentStock decimal.Decimal `json:"current_stock"`
	MinStock     decimal.Decimal `json:"min_stock"`
	LowStock     bool            `json:"low_stock"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}
