package inventory

import (
	"context"
	"errors"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/agro-inventario/internal/domain"
	"github.com/jhoicas/agro-inventario/internal/domain/entity"
	inv "github.com/jhoicas/agro-inventario/internal/domain/inventory"
	"github.com/jhoicas/agro-inventario/internal/domain/repository"
)

// Límites del listado de movimientos.
const (
	DefaultMovementLimit = 30
	MaxMovementLimit     = 200
)

// AuditReport resultado de recomputar el saldo desde el libro.
type AuditReport struct {
	Module     entity.Module
	ItemID     string
	Name       string
	Quantity   decimal.Decimal // saldo cacheado en el ítem
	Replayed   decimal.Decimal // fold del libro desde 0
	Movements  int
	Consistent bool
	Problem    string // historial inválido o diferencia de saldo
}

// LedgerUseCase lectura del libro de movimientos y auditoría de saldos.
// La auditoría lee saldo e historial bajo el bloqueo del ítem, igual que un movimiento.
type LedgerUseCase struct {
	txRunner  TxRunner
	items     repository.ItemRepository
	movements repository.MovementRepository
	opts      Options
}

// NewLedgerUseCase construye el caso de uso.
func NewLedgerUseCase(txRunner TxRunner, items repository.ItemRepository, movements repository.MovementRepository, opts Options) *LedgerUseCase {
	return &LedgerUseCase{txRunner: txRunner, items: items, movements: movements, opts: opts.withDefaults("ledger")}
}

// ListMovements devuelve los movimientos más recientes primero. Con itemID vacío lista el módulo.
func (uc *LedgerUseCase) ListMovements(ctx context.Context, module entity.Module, itemID string, limit int) ([]*entity.Movement, error) {
	limit = clampLimit(limit, DefaultMovementLimit, MaxMovementLimit)
	itemID = strings.TrimSpace(itemID)
	if itemID == "" {
		return uc.movements.ListByModule(ctx, module, limit)
	}
	if _, err := uc.item(ctx, module, itemID); err != nil {
		return nil, err
	}
	return uc.movements.ListByItem(ctx, itemID, limit)
}

// Audit recomputa el saldo de un ítem plegando su historial en orden de seq.
func (uc *LedgerUseCase) Audit(ctx context.Context, module entity.Module, itemID string) (*AuditReport, error) {
	return uc.audit(ctx, module, strings.TrimSpace(itemID))
}

// AuditAll audita todos los ítems de todos los módulos y devuelve solo los inconsistentes.
func (uc *LedgerUseCase) AuditAll(ctx context.Context) (checked int, drift []*AuditReport, err error) {
	for _, m := range entity.Modules() {
		items, err := uc.items.List(ctx, repository.ItemFilter{Module: m})
		if err != nil {
			return checked, drift, err
		}
		for _, it := range items {
			if err := ctx.Err(); err != nil {
				return checked, drift, err
			}
			rep, err := uc.audit(ctx, m, it.ID)
			if errors.Is(err, domain.ErrNotFound) {
				continue // borrado después del listado
			}
			if err != nil {
				return checked, drift, err
			}
			checked++
			if !rep.Consistent {
				uc.opts.Logger.Warn().Str("item_id", it.ID).Str("problem", rep.Problem).Msg("saldo inconsistente")
				drift = append(drift, rep)
			}
		}
	}
	return checked, drift, nil
}

// audit no escribe nada; la unidad atómica solo aporta el bloqueo y una lectura coherente.
func (uc *LedgerUseCase) audit(ctx context.Context, module entity.Module, id string) (*AuditReport, error) {
	var (
		item    *entity.Item
		history []*entity.Movement
	)
	err := uc.txRunner.Run(ctx, id, func(items repository.ItemRepository, movements repository.MovementRepository) error {
		var err error
		item, err = items.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if item == nil || item.Module != module {
			return domain.ErrNotFound
		}
		history, err = movements.ListAllByItem(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}

	rep := &AuditReport{
		Module:    item.Module,
		ItemID:    item.ID,
		Name:      item.Name,
		Quantity:  item.Quantity,
		Movements: len(history),
	}
	replayed, err := inv.Replay(history)
	rep.Replayed = replayed
	switch {
	case err != nil:
		rep.Problem = err.Error()
	case !replayed.Equal(item.Quantity):
		rep.Problem = "el saldo del ítem no coincide con el libro"
	default:
		rep.Consistent = true
	}
	return rep, nil
}

func (uc *LedgerUseCase) item(ctx context.Context, module entity.Module, id string) (*entity.Item, error) {
	item, err := uc.items.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil || item.Module != module {
		return nil, domain.ErrNotFound
	}
	return item, nil
}
