package inventory

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/agro-inventario/internal/domain"
	"github.com/jhoicas/agro-inventario/internal/domain/entity"
	inv "github.com/jhoicas/agro-inventario/internal/domain/inventory"
	"github.com/jhoicas/agro-inventario/internal/domain/repository"
)

// MovementInput entrada para aplicar un movimiento.
// Quantity nil significa "ausente" y se rechaza: nunca se asume un valor por defecto.
type MovementInput struct {
	Module   entity.Module
	ItemID   string
	Kind     entity.MovementKind
	Quantity *decimal.Decimal
	UnitCost *decimal.Decimal
	Note     string
}

// MovementResult ítem actualizado y movimiento registrado.
type MovementResult struct {
	Item     *entity.Item
	Movement *entity.Movement
}

// ApplyMovementUseCase resuelve el saldo de un ítem bajo bloqueo exclusivo:
// lee el saldo, pliega el movimiento, y registra movimiento + saldo en una sola unidad atómica.
type ApplyMovementUseCase struct {
	txRunner TxRunner
	opts     Options
}

// NewApplyMovementUseCase construye el caso de uso.
func NewApplyMovementUseCase(txRunner TxRunner, opts Options) *ApplyMovementUseCase {
	return &ApplyMovementUseCase{txRunner: txRunner, opts: opts.withDefaults("balance")}
}

// ApplyMovement valida, aplica y persiste el movimiento. Errores:
// ErrInvalidInput (ValidationError), ErrNotFound, ErrInsufficientStock, ErrConflict, ErrStorage.
// Un movimiento rechazado no deja rastro en el libro.
func (uc *ApplyMovementUseCase) ApplyMovement(ctx context.Context, in MovementInput) (*MovementResult, error) {
	in.ItemID = strings.TrimSpace(in.ItemID)
	if in.ItemID == "" {
		return nil, domain.NewValidationError("itemId", "es obligatorio")
	}
	if err := inv.ValidateMovement(in.Kind, in.Quantity, in.UnitCost); err != nil {
		return nil, err
	}

	// El id se fija antes de reintentar: si un commit llegó a la base pero informó error,
	// el siguiente intento lo encuentra y no vuelve a plegar.
	movementID := uuid.New().String()
	var res *MovementResult
	err := uc.opts.retry(ctx, func() error {
		var err error
		res, err = uc.apply(ctx, in, movementID)
		return err
	})
	if err != nil {
		return nil, err
	}

	uc.opts.Logger.Info().
		Str("module", string(in.Module)).
		Str("item_id", res.Item.ID).
		Str("kind", string(res.Movement.Kind)).
		Str("quantity", res.Movement.Quantity.String()).
		Str("balance", res.Item.Quantity.String()).
		Msg("movimiento aplicado")
	uc.opts.notifyMovement(ctx, res.Item, res.Movement)
	return res, nil
}

func (uc *ApplyMovementUseCase) apply(ctx context.Context, in MovementInput, movementID string) (*MovementResult, error) {
	var res *MovementResult
	err := uc.txRunner.Run(ctx, in.ItemID, func(
		items repository.ItemRepository,
		movements repository.MovementRepository,
	) error {
		// Bajo bloqueo: el saldo leído no puede cambiar hasta el commit.
		item, err := items.GetForUpdate(ctx, in.ItemID)
		if err != nil {
			return err
		}
		if item == nil || item.Module != in.Module {
			return domain.ErrNotFound
		}
		prev, err := movements.GetByID(ctx, movementID)
		if err != nil {
			return err
		}
		if prev != nil {
			res = &MovementResult{Item: item, Movement: prev}
			return nil
		}

		qty := *in.Quantity
		balance, err := inv.Apply(item.Quantity, in.Kind, qty)
		if err != nil {
			return err
		}
		if err := inv.CheckAmount("quantity", balance); err != nil {
			return err
		}

		unitValue := item.UnitValue
		if uc.opts.WeightedCost && in.Kind == entity.MovementEntrance && in.UnitCost != nil {
			unitValue = inv.WeightedUnitValue(item.Quantity, item.UnitValue, qty, *in.UnitCost)
		}

		now := uc.opts.Clock().UTC()
		mov := &entity.Movement{
			ID:           movementID,
			ItemID:       item.ID,
			Kind:         in.Kind,
			Quantity:     qty,
			BalanceAfter: balance,
			UnitCost:     in.UnitCost,
			Note:         strings.TrimSpace(in.Note),
			OccurredAt:   now,
		}
		if err := movements.Create(ctx, mov); err != nil {
			return err
		}
		if err := items.UpdateBalance(ctx, item.ID, balance, unitValue, now); err != nil {
			return err
		}

		item.Quantity = balance
		item.UnitValue = unitValue
		item.UpdatedAt = now
		res = &MovementResult{Item: item, Movement: mov}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}
