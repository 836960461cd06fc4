package dto

import "time"

// CreateOrderRequest body para POST /api/orders.
type CreateOrderRequest struct {
	Code     string `json:"code"`
	Customer string `json:"customer"`
	Address  string `json:"address,omitempty"`
	CrewID   string `json:"crew_id,omitempty"`
}

// UpdateOrderRequest body para PUT /api/orders/:id.
type UpdateOrderRequest struct {
	Customer *string `json:"customer,omitempty"`
	Address  *string `json:"address,omitempty"`
	Status   string  `json:"status,omitempty"`
	CrewID   *string `json:"crew_id,omitempty"`
}

// OrderResponse representación de una orden de trabajo.
type OrderResponse struct {
	ID        string    `json:"id"`
	Code      string    `json:"code"`
	Customer  string    `json:"customer"`
	Address   string    `json:"address,omitempty"`
	Status    string    `json:"status"`
	CrewID    *string   `json:"crew_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
