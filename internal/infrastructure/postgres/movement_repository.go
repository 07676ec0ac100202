package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/agro-inventario/internal/domain/entity"
	"github.com/jhoicas/agro-inventario/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

// MovementRepo libro de movimientos sobre PostgreSQL (usable con pool o tx).
type MovementRepo struct {
	q Querier
}

// NewMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

const movementColumns = `m.seq, m.id, m.item_id, m.kind, m.quantity, m.balance_after, m.unit_cost, m.note, m.occurred_at`

// Create agrega el movimiento; seq lo asigna la secuencia BIGSERIAL.
func (r *MovementRepo) Create(ctx context.Context, m *entity.Movement) error {
	query := `
		INSERT INTO movements (id, item_id, kind, quantity, balance_after, unit_cost, note, occurred_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING seq`
	err := r.q.QueryRow(ctx, query,
		m.ID, m.ItemID, string(m.Kind), m.Quantity, m.BalanceAfter, m.UnitCost, m.Note, m.OccurredAt,
	).Scan(&m.Seq)
	return mapError("create movement", err)
}

// GetByID devuelve nil, nil si no existe.
func (r *MovementRepo) GetByID(ctx context.Context, id string) (*entity.Movement, error) {
	list, err := r.list(ctx, "get movement", `SELECT `+movementColumns+` FROM movements m WHERE m.id = $1`, id)
	if err != nil || len(list) == 0 {
		return nil, err
	}
	return list[0], nil
}

// ListByItem últimos limit movimientos del ítem (occurred_at desc, seq desc).
func (r *MovementRepo) ListByItem(ctx context.Context, itemID string, limit int) ([]*entity.Movement, error) {
	query := `SELECT ` + movementColumns + ` FROM movements m
		WHERE m.item_id = $1
		ORDER BY m.occurred_at DESC, m.seq DESC
		LIMIT $2`
	return r.list(ctx, "list movements by item", query, itemID, limit)
}

// ListByModule últimos limit movimientos de los ítems del módulo.
func (r *MovementRepo) ListByModule(ctx context.Context, module entity.Module, limit int) ([]*entity.Movement, error) {
	query := `SELECT ` + movementColumns + ` FROM movements m
		JOIN items i ON i.id = m.item_id
		WHERE i.module = $1
		ORDER BY m.occurred_at DESC, m.seq DESC
		LIMIT $2`
	return r.list(ctx, "list movements by module", query, string(module), limit)
}

// ListAllByItem historial completo en orden de seq (replay).
func (r *MovementRepo) ListAllByItem(ctx context.Context, itemID string) ([]*entity.Movement, error) {
	query := `SELECT ` + movementColumns + ` FROM movements m WHERE m.item_id = $1 ORDER BY m.seq ASC`
	return r.list(ctx, "list history", query, itemID)
}

// DeleteByItem elimina el historial del ítem (borrado en cascada explícito dentro de la tx).
func (r *MovementRepo) DeleteByItem(ctx context.Context, itemID string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM movements WHERE item_id = $1`, itemID)
	return mapError("delete movements", err)
}

func (r *MovementRepo) list(ctx context.Context, op, query string, args ...any) ([]*entity.Movement, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, mapError(op, err)
	}
	list, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*entity.Movement, error) {
		var m entity.Movement
		var kind string
		if err := row.Scan(&m.Seq, &m.ID, &m.ItemID, &kind, &m.Quantity, &m.BalanceAfter, &m.UnitCost, &m.Note, &m.OccurredAt); err != nil {
			return nil, err
		}
		m.Kind = entity.MovementKind(kind)
		m.OccurredAt = m.OccurredAt.UTC()
		return &m, nil
	})
	if err != nil {
		return nil, mapError(op, err)
	}
	return list, nil
}
