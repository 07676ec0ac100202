package memory

import (
	"context"

	"github.com/jhoicas/agro-inventario/internal/domain"
	"github.com/jhoicas/agro-inventario/internal/domain/entity"
	"github.com/jhoicas/agro-inventario/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

// MovementRepo libro de movimientos sobre Store.
type MovementRepo struct {
	s  *Store
	tx *changes
}

// NewMovementRepository construye el repositorio fuera de transacción.
func NewMovementRepository(s *Store) *MovementRepo {
	return &MovementRepo{s: s}
}

// Create agrega el movimiento. Seq se asigna al publicar.
func (r *MovementRepo) Create(_ context.Context, m *entity.Movement) error {
	items := &ItemRepo{s: r.s, tx: r.tx}
	if items.get(m.ItemID) == nil {
		return domain.ErrNotFound
	}
	if r.tx != nil {
		r.tx.movements = append(r.tx.movements, m)
		return nil
	}
	c := newChanges()
	c.movements = append(c.movements, m)
	r.s.commit(c)
	return nil
}

// GetByID busca primero entre los pendientes de la unidad atómica.
func (r *MovementRepo) GetByID(_ context.Context, id string) (*entity.Movement, error) {
	if r.tx != nil {
		for _, m := range r.tx.movements {
			if m.ID == id {
				cp := *m
				return &cp, nil
			}
		}
	}
	m := r.s.movement(id)
	if m == nil {
		return nil, nil
	}
	if r.tx != nil && (r.tx.purged[m.ItemID] || r.tx.deleted[m.ItemID]) {
		return nil, nil
	}
	return m, nil
}

// ListByItem últimos limit movimientos del ítem.
func (r *MovementRepo) ListByItem(_ context.Context, itemID string, limit int) ([]*entity.Movement, error) {
	return r.s.recent(func(id string, _ *entity.Item) bool { return id == itemID }, limit), nil
}

// ListByModule últimos limit movimientos del módulo.
func (r *MovementRepo) ListByModule(_ context.Context, module entity.Module, limit int) ([]*entity.Movement, error) {
	return r.s.recent(func(_ string, it *entity.Item) bool { return it != nil && it.Module == module }, limit), nil
}

// ListAllByItem historial completo en seq ascendente, incluidos los pendientes de la unidad atómica.
func (r *MovementRepo) ListAllByItem(_ context.Context, itemID string) ([]*entity.Movement, error) {
	if r.tx != nil && (r.tx.purged[itemID] || r.tx.deleted[itemID]) {
		return []*entity.Movement{}, nil
	}
	list := r.s.history(itemID)
	if r.tx != nil {
		for _, m := range r.tx.movements {
			if m.ItemID == itemID {
				cp := *m
				list = append(list, &cp)
			}
		}
	}
	return list, nil
}

// DeleteByItem elimina el historial del ítem.
func (r *MovementRepo) DeleteByItem(_ context.Context, itemID string) error {
	if r.tx == nil {
		c := newChanges()
		c.purged[itemID] = true
		r.s.commit(c)
		return nil
	}
	r.tx.purged[itemID] = true
	kept := r.tx.movements[:0]
	for _, m := range r.tx.movements {
		if m.ItemID != itemID {
			kept = append(kept, m)
		}
	}
	r.tx.movements = kept
	return nil
}
