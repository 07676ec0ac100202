package inventory

import (
	"context"
	"errors"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/jhoicas/agro-inventario/internal/domain"
	"github.com/jhoicas/agro-inventario/internal/domain/entity"
	"github.com/jhoicas/agro-inventario/pkg/logger"
)

// Options dependencias opcionales compartidas por los casos de uso de inventario.
type Options struct {
	Clock          Clock          // por defecto time.Now
	Logger         *logger.Logger // por defecto descarta
	Notifiers      []Notifier
	StorageRetries int           // 0 = sin reintentos
	RetryBackoff   time.Duration // intervalo inicial; por defecto 50ms
	WeightedCost   bool          // recalcular UnitValue con costo promedio ponderado en entradas
}

func (o Options) withDefaults(component string) Options {
	if o.Clock == nil {
		o.Clock = time.Now
	}
	if o.Logger == nil {
		o.Logger = logger.Nop()
	}
	o.Logger = o.Logger.WithComponent(component)
	if o.RetryBackoff <= 0 {
		o.RetryBackoff = 50 * time.Millisecond
	}
	return o
}

// retry reintenta op con backoff exponencial solo ante domain.ErrStorage.
// Cualquier otro error (validación, saldo, conflicto) se devuelve de inmediato.
func (o Options) retry(ctx context.Context, op func() error) error {
	if o.StorageRetries <= 0 {
		return op()
	}
	eb := backoff.NewExponentialBackOff()
	eb.InitialInterval = o.RetryBackoff
	eb.MaxElapsedTime = 0
	b := backoff.WithContext(backoff.WithMaxRetries(eb, uint64(o.StorageRetries)), ctx)

	attempt := 0
	return backoff.Retry(func() error {
		attempt++
		err := op()
		if err == nil {
			return nil
		}
		if errors.Is(err, domain.ErrStorage) {
			o.Logger.Warn().Err(err).Int("attempt", attempt).Msg("falla de almacenamiento, reintentando")
			return err
		}
		return backoff.Permanent(err)
	}, b)
}

func (o Options) notifyMovement(ctx context.Context, item *entity.Item, mov *entity.Movement) {
	for _, n := range o.Notifiers {
		if err := n.MovementApplied(ctx, item, mov); err != nil {
			o.Logger.Error().Err(err).Str("item_id", item.ID).Str("movement_id", mov.ID).Msg("notificar movimiento")
		}
	}
}

func (o Options) notifyItem(ctx context.Context, module entity.Module, itemID string) {
	for _, n := range o.Notifiers {
		if err := n.ItemChanged(ctx, module, itemID); err != nil {
			o.Logger.Error().Err(err).Str("item_id", itemID).Msg("notificar cambio de ítem")
		}
	}
}
