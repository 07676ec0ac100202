package memory

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/agro-inventario/internal/domain"
	"github.com/jhoicas/agro-inventario/internal/domain/entity"
	"github.com/jhoicas/agro-inventario/internal/domain/repository"
)

var _ repository.ItemRepository = (*ItemRepo)(nil)

// ItemRepo implementación de ItemRepository sobre Store.
// Dentro de TxRunner acumula escrituras; fuera de él cada escritura se publica de inmediato.
type ItemRepo struct {
	s  *Store
	tx *changes
}

// NewItemRepository construye el repositorio fuera de transacción.
func NewItemRepository(s *Store) *ItemRepo {
	return &ItemRepo{s: s}
}

func (r *ItemRepo) write(fn func(c *changes)) {
	if r.tx != nil {
		fn(r.tx)
		return
	}
	c := newChanges()
	fn(c)
	r.s.commit(c)
}

func (r *ItemRepo) get(id string) *entity.Item {
	base := r.s.getItem(id)
	if r.tx == nil {
		return base
	}
	return r.tx.view(base, id)
}

// Create registra un ítem nuevo.
func (r *ItemRepo) Create(_ context.Context, item *entity.Item) error {
	if r.get(item.ID) != nil {
		return fmt.Errorf("create item %s: %w", item.ID, domain.ErrConflict)
	}
	r.write(func(c *changes) { c.created[item.ID] = item.Clone() })
	return nil
}

// GetByID devuelve nil, nil si no existe.
func (r *ItemRepo) GetByID(_ context.Context, id string) (*entity.Item, error) {
	return r.get(id), nil
}

// GetForUpdate el bloqueo ya lo tiene TxRunner; devuelve la vista de la unidad atómica.
func (r *ItemRepo) GetForUpdate(ctx context.Context, id string) (*entity.Item, error) {
	return r.GetByID(ctx, id)
}

// Update persiste solo los campos de catálogo.
func (r *ItemRepo) Update(_ context.Context, item *entity.Item) error {
	if r.get(item.ID) == nil {
		return domain.ErrNotFound
	}
	r.write(func(c *changes) { c.updated[item.ID] = item.Clone() })
	return nil
}

// UpdateBalance persiste saldo y valor unitario.
func (r *ItemRepo) UpdateBalance(_ context.Context, id string, quantity, unitValue decimal.Decimal, updatedAt time.Time) error {
	if r.get(id) == nil {
		return domain.ErrNotFound
	}
	r.write(func(c *changes) {
		c.balances[id] = balance{quantity: quantity, unitValue: unitValue, updatedAt: updatedAt}
	})
	return nil
}

// Delete elimina el ítem junto con su historial.
func (r *ItemRepo) Delete(_ context.Context, id string) error {
	if r.get(id) == nil {
		return domain.ErrNotFound
	}
	r.write(func(c *changes) { c.deleted[id] = true })
	return nil
}

// List devuelve el estado publicado (no incluye escrituras pendientes).
func (r *ItemRepo) List(_ context.Context, filter repository.ItemFilter) ([]*entity.Item, error) {
	return r.s.listItems(filter.Module, filter.Category), nil
}
