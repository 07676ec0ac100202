package inventory

import (
	"context"

	"github.com/jhoicas/agro-inventario/internal/domain/entity"
)

//go:generate mockgen -source=notifier.go -destination=notifier_mock.go -package=inventory

// Notifier recibe avisos después del commit (eventos, invalidación de caché).
// Un error del notifier se registra en el log y nunca falla la operación.
type Notifier interface {
	MovementApplied(ctx context.Context, item *entity.Item, movement *entity.Movement) error
	ItemChanged(ctx context.Context, module entity.Module, itemID string) error
}
