package domain

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicateCode      = errors.New("código de ítem duplicado")
	ErrDuplicateBatchCode = errors.New("código de bobina duplicado")
	ErrDuplicateUniqueID  = errors.New("identificador de equipo duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrInsufficientStock  = errors.New("stock insuficiente")
	ErrBatchInUse         = errors.New("bobina en uso por una cuadrilla")
	ErrInstanceNotInStock = errors.New("el equipo no está en stock")
	ErrInvalidTransition  = errors.New("transición de estado inválida")
	ErrHasDependencies    = errors.New("el recurso tiene dependencias activas")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
)

// InsufficientStockError identifica el ítem corto y las cantidades involucradas.
// Unwrap a ErrInsufficientStock para que los handlers usen errors.Is.
type InsufficientStockError struct {
	ItemCode  string
	Requested decimal.Decimal
	Available decimal.Decimal
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("stock insuficiente de %s: solicitado %s, disponible %s",
		e.ItemCode, e.Requested, e.Available)
}

func (e *InsufficientStockError) Unwrap() error { return ErrInsufficientStock }

// DependentBatchesError lista las bobinas que impiden borrar un ítem, para que el
// caller decida si fuerza la cascada.
type DependentBatchesError struct {
	ItemCode   string
	BatchCodes []string
}

func (e *DependentBatchesError) Error() string {
	return fmt.Sprintf("el ítem %s tiene bobinas dependientes: %s",
		e.ItemCode, strings.Join(e.BatchCodes, ", "))
}

func (e *DependentBatchesError) Unwrap() error { return ErrHasDependencies }

// InvalidTransitionError describe una transición rechazada del ciclo de vida de equipos.
type InvalidTransitionError struct {
	UniqueID string
	From     string
	To       string
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("equipo %s: transición %s → %s no permitida", e.UniqueID, e.From, e.To)
}

func (e *InvalidTransitionError) Unwrap() error { return ErrInvalidTransition }
