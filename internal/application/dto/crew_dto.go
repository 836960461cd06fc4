package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateCrewRequest body para POST /api/crews.
type CreateCrewRequest struct {
	Name   string `json:"name"`
	Leader string `json:"leader,omitempty"`
	Phone  string `json:"phone,omitempty"`
}

// UpdateCrewRequest body para PUT /api/crews/:id.
type UpdateCrewRequest struct {
	Name   string `json:"name,omitempty"`
	Leader *string `json:"leader,omitempty"`
	Phone  *string `json:"phone,omitempty"`
	Active *bool   `json:"active,omitempty"`
}

// CrewResponse representación de una cuadrilla.
type CrewResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Leader    string    `json:"leader,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
}

// CrewStockResponse total de un ítem en poder de la cuadrilla.
type CrewStockResponse struct {
	ItemID   string          `json:"item_id"`
	ItemCode string          `json:"item_code"`
	Unit     string          `json:"unit"`
	Quantity decimal.Decimal `json:"quantity"`
}
