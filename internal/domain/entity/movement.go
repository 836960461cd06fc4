package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento de inventario.
//
// Convención de signo del delta (Quantity), documentada y verificada en tests:
//
//	ENTRY       +q  sin cuadrilla            → almacén +q
//	ASSIGNMENT  −q  con cuadrilla            → almacén −q, cuadrilla +q
//	RETURN      +q  con cuadrilla            → almacén +q, cuadrilla −q
//	USAGE_ORDER −q  con cuadrilla y orden    → cuadrilla −q
//	ADJUSTMENT  ±q  aplica a almacén, o a la cuadrilla si CrewID está presente
const (
	MovementTypeEntry      = "ENTRY"
	MovementTypeAssignment = "ASSIGNMENT"
	MovementTypeReturn     = "RETURN"
	MovementTypeUsageOrder = "USAGE_ORDER"
	MovementTypeAdjustment = "ADJUSTMENT"
)

// Movement es una entrada del historial de movimientos: libro inmutable, solo
// append, escrito exclusivamente por el orquestador dentro de su transacción.
// La suma de deltas por ítem y ubicación debe cuadrar con el snapshot de stock.
type Movement struct {
	ID         string
	ItemID     string
	Type       string
	Quantity   decimal.Decimal // delta con signo según la convención de arriba
	Reason     string
	CrewID     *string
	OrderID    *string
	BatchCode  *string
	InstanceID *string // UniqueID del equipo, en movimientos de equipos serializados
	CreatedBy  string  // UserID del actor
	CreatedAt  time.Time
}
