// Package memory implementa los puertos de persistencia en memoria de proceso.
// Cada unidad atómica bloquea su ítem con KeyLock, acumula las escrituras y las publica
// juntas en una sola sección crítica del store.
package memory

import (
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/agro-inventario/internal/domain/entity"
)

// Store estado compartido de ítems y movimientos.
type Store struct {
	mu        sync.RWMutex
	items     map[string]*entity.Item
	movements map[string][]*entity.Movement // por ítem, seq ascendente
	owners    map[string]string             // id de movimiento -> id de ítem
	seq       int64

	locks       *KeyLock
	lockTimeout time.Duration
}

// NewStore construye un store vacío. lockTimeout es la espera máxima por el bloqueo de un ítem.
func NewStore(lockTimeout time.Duration) *Store {
	return &Store{
		items:       make(map[string]*entity.Item),
		movements:   make(map[string][]*entity.Movement),
		owners:      make(map[string]string),
		locks:       NewKeyLock(),
		lockTimeout: lockTimeout,
	}
}

// changes escrituras pendientes de una unidad atómica.
type changes struct {
	created   map[string]*entity.Item
	updated   map[string]*entity.Item // solo campos de catálogo
	balances  map[string]balance
	deleted   map[string]bool // ítem + historial
	purged    map[string]bool // solo historial
	movements []*entity.Movement
}

type balance struct {
	quantity  decimal.Decimal
	unitValue decimal.Decimal
	updatedAt time.Time
}

func newChanges() *changes {
	return &changes{
		created:  make(map[string]*entity.Item),
		updated:  make(map[string]*entity.Item),
		balances: make(map[string]balance),
		deleted:  make(map[string]bool),
		purged:   make(map[string]bool),
	}
}

// view devuelve el ítem tal como lo ve la unidad atómica (cambios pendientes incluidos).
func (c *changes) view(base *entity.Item, id string) *entity.Item {
	if c.deleted[id] {
		return nil
	}
	it := base
	if cr, ok := c.created[id]; ok {
		it = cr.Clone()
	}
	if it == nil {
		return nil
	}
	if up, ok := c.updated[id]; ok {
		copyCatalog(it, up)
	}
	if b, ok := c.balances[id]; ok {
		it.Quantity, it.UnitValue, it.UpdatedAt = b.quantity, b.unitValue, b.updatedAt
	}
	return it
}

// commit publica los cambios en una sola sección crítica y asigna seq a los movimientos.
func (s *Store) commit(c *changes) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id := range c.purged {
		s.dropHistory(id)
	}
	for id, it := range c.created {
		s.items[id] = it.Clone()
	}
	for id, up := range c.updated {
		if it, ok := s.items[id]; ok {
			copyCatalog(it, up)
		}
	}
	for id, b := range c.balances {
		if it, ok := s.items[id]; ok {
			it.Quantity, it.UnitValue, it.UpdatedAt = b.quantity, b.unitValue, b.updatedAt
		}
	}
	for _, m := range c.movements {
		s.seq++
		m.Seq = s.seq
		cp := *m
		s.movements[m.ItemID] = append(s.movements[m.ItemID], &cp)
		s.owners[m.ID] = m.ItemID
	}
	for id := range c.deleted {
		delete(s.items, id)
		s.dropHistory(id)
	}
}

// dropHistory requiere s.mu tomado en escritura.
func (s *Store) dropHistory(itemID string) {
	for _, m := range s.movements[itemID] {
		delete(s.owners, m.ID)
	}
	delete(s.movements, itemID)
}

// copyCatalog copia los campos descriptivos; nunca Quantity.
func copyCatalog(dst, src *entity.Item) {
	cp := src.Clone()
	dst.Name = cp.Name
	dst.Category = cp.Category
	dst.Unit = cp.Unit
	dst.Minimum = cp.Minimum
	dst.UnitValue = cp.UnitValue
	dst.Location = cp.Location
	dst.Note = cp.Note
	dst.Expiration = cp.Expiration
	dst.UpdatedAt = cp.UpdatedAt
}

func (s *Store) getItem(id string) *entity.Item {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if it, ok := s.items[id]; ok {
		return it.Clone()
	}
	return nil
}

func (s *Store) listItems(module entity.Module, category entity.Category) []*entity.Item {
	s.mu.RLock()
	list := make([]*entity.Item, 0, len(s.items))
	for _, it := range s.items {
		if it.Module != module {
			continue
		}
		if category != "" && it.Category != category {
			continue
		}
		list = append(list, it.Clone())
	}
	s.mu.RUnlock()

	sort.Slice(list, func(i, j int) bool {
		if !list[i].CreatedAt.Equal(list[j].CreatedAt) {
			return list[i].CreatedAt.After(list[j].CreatedAt)
		}
		return list[i].ID > list[j].ID
	})
	return list
}

// movement copia de un movimiento publicado, o nil.
func (s *Store) movement(id string) *entity.Movement {
	s.mu.RLock()
	defer s.mu.RUnlock()
	itemID, ok := s.owners[id]
	if !ok {
		return nil
	}
	for _, m := range s.movements[itemID] {
		if m.ID == id {
			cp := *m
			return &cp
		}
	}
	return nil
}

// history copia del historial de un ítem en seq ascendente.
func (s *Store) history(itemID string) []*entity.Movement {
	s.mu.RLock()
	defer s.mu.RUnlock()
	src := s.movements[itemID]
	out := make([]*entity.Movement, len(src))
	for i, m := range src {
		cp := *m
		out[i] = &cp
	}
	return out
}

// recent últimos limit movimientos de los ítems que cumplen match (occurredAt desc, seq desc).
// match se evalúa con el store bloqueado en lectura.
func (s *Store) recent(match func(itemID string, item *entity.Item) bool, limit int) []*entity.Movement {
	s.mu.RLock()
	list := make([]*entity.Movement, 0)
	for itemID, hist := range s.movements {
		if !match(itemID, s.items[itemID]) {
			continue
		}
		for _, m := range hist {
			cp := *m
			list = append(list, &cp)
		}
	}
	s.mu.RUnlock()

	sort.Slice(list, func(i, j int) bool {
		if !list[i].OccurredAt.Equal(list[j].OccurredAt) {
			return list[i].OccurredAt.After(list[j].OccurredAt)
		}
		return list[i].Seq > list[j].Seq
	})
	if len(list) > limit {
		list = list[:limit]
	}
	return list
}
