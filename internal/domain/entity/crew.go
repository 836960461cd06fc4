package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Crew representa una cuadrilla de técnicos a la que se asigna inventario.
type Crew struct {
	ID        string
	Name      string
	Leader    string
	Phone     string
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CrewStock es el total desnormalizado de un ítem en poder de una cuadrilla.
// Es una caché materializada del libro de movimientos: solo la mantiene el
// orquestador, dentro de la misma transacción que escribe el movimiento.
type CrewStock struct {
	CrewID    string
	ItemID    string
	Quantity  decimal.Decimal
	UpdatedAt time.Time
}
