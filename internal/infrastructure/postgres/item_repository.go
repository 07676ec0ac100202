package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/agro-inventario/internal/domain"
	"github.com/jhoicas/agro-inventario/internal/domain/entity"
	"github.com/jhoicas/agro-inventario/internal/domain/repository"
)

var _ repository.ItemRepository = (*ItemRepo)(nil)

// ItemRepo implementación de ItemRepository sobre PostgreSQL (usable con pool o tx).
type ItemRepo struct {
	q Querier
}

// NewItemRepository construye el adaptador. Pasar pool o tx (Querier).
func NewItemRepository(q Querier) *ItemRepo {
	return &ItemRepo{q: q}
}

const itemColumns = `id, module, name, category, unit, quantity, minimum, unit_value, location, note, expiration, created_at, updated_at`

func scanItem(row pgx.Row) (*entity.Item, error) {
	var it entity.Item
	var module, category, unit string
	err := row.Scan(
		&it.ID, &module, &it.Name, &category, &unit, &it.Quantity, &it.Minimum, &it.UnitValue,
		&it.Location, &it.Note, &it.Expiration, &it.CreatedAt, &it.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	it.Module = entity.Module(module)
	it.Category = entity.Category(category)
	it.Unit = entity.Unit(unit)
	if it.Expiration != nil {
		d := entity.ToDate(*it.Expiration)
		it.Expiration = &d
	}
	return &it, nil
}

// Create persiste un ítem nuevo.
func (r *ItemRepo) Create(ctx context.Context, it *entity.Item) error {
	query := `
		INSERT INTO items (` + itemColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(ctx, query,
		it.ID, string(it.Module), it.Name, string(it.Category), string(it.Unit), it.Quantity, it.Minimum,
		it.UnitValue, it.Location, it.Note, it.Expiration, it.CreatedAt, it.UpdatedAt,
	)
	return mapError("create item", err)
}

// GetByID devuelve nil, nil si no existe.
func (r *ItemRepo) GetByID(ctx context.Context, id string) (*entity.Item, error) {
	return r.get(ctx, `SELECT `+itemColumns+` FROM items WHERE id = $1`, id, "get item")
}

// GetForUpdate obtiene el ítem y bloquea la fila hasta el fin de la tx (SELECT FOR UPDATE).
// La espera la acota lock_timeout (ver TxRunner); al vencer devuelve ErrConflict.
func (r *ItemRepo) GetForUpdate(ctx context.Context, id string) (*entity.Item, error) {
	return r.get(ctx, `SELECT `+itemColumns+` FROM items WHERE id = $1 FOR UPDATE`, id, "get item for update")
}

func (r *ItemRepo) get(ctx context.Context, query, id, op string) (*entity.Item, error) {
	it, err := scanItem(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, mapError(op, err)
	}
	return it, nil
}

// Update persiste solo los campos de catálogo (nunca quantity).
func (r *ItemRepo) Update(ctx context.Context, it *entity.Item) error {
	query := `
		UPDATE items SET name = $2, category = $3, unit = $4, minimum = $5, unit_value = $6,
			location = $7, note = $8, expiration = $9, updated_at = $10
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		it.ID, it.Name, string(it.Category), string(it.Unit), it.Minimum, it.UnitValue,
		it.Location, it.Note, it.Expiration, it.UpdatedAt,
	)
	if err != nil {
		return mapError("update item", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdateBalance persiste saldo y valor unitario resultantes de un movimiento.
func (r *ItemRepo) UpdateBalance(ctx context.Context, id string, quantity, unitValue decimal.Decimal, updatedAt time.Time) error {
	tag, err := r.q.Exec(ctx,
		`UPDATE items SET quantity = $2, unit_value = $3, updated_at = $4 WHERE id = $1`,
		id, quantity, unitValue, updatedAt,
	)
	if err != nil {
		return mapError("update balance", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina el ítem; la FK ON DELETE CASCADE arrastra sus movimientos.
func (r *ItemRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM items WHERE id = $1`, id)
	if err != nil {
		return mapError("delete item", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List devuelve los ítems del módulo (y categoría, si se indica), más recientes primero.
func (r *ItemRepo) List(ctx context.Context, filter repository.ItemFilter) ([]*entity.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE module = $1`
	args := []any{string(filter.Module)}
	if filter.Category != "" {
		query += fmt.Sprintf(" AND category = $%d", len(args)+1)
		args = append(args, string(filter.Category))
	}
	query += " ORDER BY created_at DESC, id DESC"

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, mapError("list items", err)
	}
	defer rows.Close()

	list := make([]*entity.Item, 0)
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, mapError("scan item", err)
		}
		list = append(list, it)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError("list items", err)
	}
	return list, nil
}
