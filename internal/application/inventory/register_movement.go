package inventory

import (
	"context"

	"github.com/dvergaras/fieldops-api/internal/application/dto"
	"github.com/dvergaras/fieldops-api/internal/domain"
	"github.com/dvergaras/fieldops-api/internal/domain/entity"
)

var actionToType = map[string]string{
	dto.ActionRestock:    entity.MovementTypeEntry,
	dto.ActionAssign:     entity.MovementTypeAssignment,
	dto.ActionReturn:     entity.MovementTypeReturn,
	dto.ActionUsageOrder: entity.MovementTypeUsageOrder,
	dto.ActionAdjustment: entity.MovementTypeAdjustment,
}

// RegisterMovementFromRequest adapta el request HTTP al caso de uso
// RegisterMovement(ctx, actor, MovementInput). Usar desde handlers HTTP.
func (uc *RegisterMovementUseCase) RegisterMovementFromRequest(ctx context.Context, actor Actor, in dto.RegisterMovementRequest) error {
	movType, ok := actionToType[in.Action]
	if !ok {
		return domain.ErrInvalidInput
	}
	lines, err := linesFromRequest(in.Data.Items)
	if err != nil {
		return err
	}
	return uc.RegisterMovement(ctx, actor, MovementInput{
		Type:    movType,
		CrewID:  in.Data.CrewID,
		OrderID: in.Data.OrderID,
		Reason:  in.Data.Reason,
		Lines:   lines,
	})
}
