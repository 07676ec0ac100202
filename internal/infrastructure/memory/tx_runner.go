package memory

import (
	"context"

	"github.com/jhoicas/agro-inventario/internal/application/inventory"
	"github.com/jhoicas/agro-inventario/internal/domain/repository"
)

var _ inventory.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta unidades atómicas sobre Store con el ítem bloqueado.
type TxRunner struct {
	store *Store
}

// NewTxRunner construye el runner.
func NewTxRunner(store *Store) *TxRunner {
	return &TxRunner{store: store}
}

// Run bloquea itemID, ejecuta fn con repos que acumulan escrituras y publica todo si fn no falla.
// Una cancelación antes del commit descarta los cambios; el commit en sí no se interrumpe.
func (r *TxRunner) Run(ctx context.Context, itemID string, fn func(
	items repository.ItemRepository,
	movements repository.MovementRepository,
) error) error {
	release, err := r.store.locks.Acquire(ctx, itemID, r.store.lockTimeout)
	if err != nil {
		return err
	}
	defer release()

	c := newChanges()
	if err := fn(&ItemRepo{s: r.store, tx: c}, &MovementRepo{s: r.store, tx: c}); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	r.store.commit(c)
	return nil
}
