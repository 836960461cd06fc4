package dto

import "time"

// NewInstanceRequest un equipo a registrar.
type NewInstanceRequest struct {
	UniqueID string `json:"unique_id"`
	Serial   string `json:"serial_number,omitempty"`
	MAC      string `json:"mac_address,omitempty"`
	Notes    string `json:"notes,omitempty"`
}

// RegisterInstancesRequest body para POST /api/equipment. La creación es todo o
// nada: cualquier colisión de unique_id rechaza el lote completo.
type RegisterInstancesRequest struct {
	ItemID    string               `json:"item_id"`
	Instances []NewInstanceRequest `json:"instances"`
}

// MarkInstanceRequest body para PUT /api/equipment/:uniqueId/status
// (solo estados terminales: damaged, retired).
type MarkInstanceRequest struct {
	Status string `json:"status"`
	Reason string `json:"reason"`
}

// InstanceResponse representación de un equipo serializado.
type InstanceResponse struct {
	ID          string     `json:"id"`
	ItemID      string     `json:"item_id"`
	UniqueID    string     `json:"unique_id"`
	Serial      *string    `json:"serial_number,omitempty"`
	MAC         *string    `json:"mac_address,omitempty"`
	Status      string     `json:"status"`
	CrewID      *string    `json:"crew_id,omitempty"`
	AssignedAt  *time.Time `json:"assigned_at,omitempty"`
	OrderID     *string    `json:"order_id,omitempty"`
	InstalledAt *time.Time `json:"installed_at,omitempty"`
	Notes       string     `json:"notes,omitempty"`
}
