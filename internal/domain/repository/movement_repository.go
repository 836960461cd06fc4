package repository

import (
	"time"

	"github.com/dvergaras/fieldops-api/internal/domain/entity"
)

// MovementFilter filtros del historial de movimientos.
type MovementFilter struct {
	ItemID    string
	CrewID    string
	OrderID   string
	BatchCode string
	From      *time.Time
	To        *time.Time
	Limit     int
	Offset    int
}

// MovementRepository define el puerto del libro de movimientos. Solo append y
// lectura: no existe Update ni Delete para esta tabla.
type MovementRepository interface {
	Append(movement *entity.Movement) error
	// List devuelve entradas ordenadas de más reciente a más antigua.
	List(filter MovementFilter) ([]*entity.Movement, error)
	ListByItem(itemID string) ([]*entity.Movement, error)
}
