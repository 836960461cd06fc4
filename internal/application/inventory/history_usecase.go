package inventory

import (
	"time"

	"github.com/dvergaras/fieldops-api/internal/application/dto"
	"github.com/dvergaras/fieldops-api/internal/domain"
	"github.com/dvergaras/fieldops-api/internal/domain/entity"
	"github.com/dvergaras/fieldops-api/internal/domain/repository"
)

// HistoryUseCase consulta el libro de movimientos: proyección de solo lectura,
// ordenada de más reciente a más antigua, sin efectos secundarios.
type HistoryUseCase struct {
	movRepo repository.MovementRepository
}

// NewHistoryUseCase construye el caso de uso.
func NewHistoryUseCase(movRepo repository.MovementRepository) *HistoryUseCase {
	return &HistoryUseCase{movRepo: movRepo}
}

// Query lista movimientos según filtros del request.
func (uc *HistoryUseCase) Query(in dto.HistoryQueryRequest) ([]*entity.Movement, error) {
	in.DefaultPage()
	filter := repository.MovementFilter{
		ItemID:    in.ItemID,
		CrewID:    in.CrewID,
		OrderID:   in.OrderID,
		BatchCode: in.BatchCode,
		Limit:     in.Limit,
		Offset:    in.Offset,
	}
	var err error
	if filter.From, err = parseDate(in.From, false); err != nil {
		return nil, err
	}
	if filter.To, err = parseDate(in.To, true); err != nil {
		return nil, err
	}
	return uc.movRepo.List(filter)
}

// parseDate acepta RFC 3339 o fecha simple; endOfDay extiende 2006-01-02 al
// final del día para que el rango sea inclusivo.
func parseDate(s string, endOfDay bool) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return &t, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}
	if endOfDay {
		t = t.Add(24*time.Hour - time.Nanosecond)
	}
	return &t, nil
}
