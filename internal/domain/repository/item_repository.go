package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/agro-inventario/internal/domain/entity"
)

// ItemFilter filtros que la persistencia resuelve directamente.
// Búsqueda de texto y "bajo mínimo" se aplican en la capa de aplicación.
type ItemFilter struct {
	Module   entity.Module
	Category entity.Category // vacío = todas
}

// ItemRepository define el puerto de persistencia para Item (catálogo + saldo cacheado).
type ItemRepository interface {
	Create(ctx context.Context, item *entity.Item) error
	// GetByID devuelve nil, nil si no existe.
	GetByID(ctx context.Context, id string) (*entity.Item, error)
	// GetForUpdate igual que GetByID pero bloquea el ítem hasta el fin de la unidad atómica.
	GetForUpdate(ctx context.Context, id string) (*entity.Item, error)
	// Update persiste solo los campos de catálogo; nunca escribe quantity.
	Update(ctx context.Context, item *entity.Item) error
	// UpdateBalance persiste el saldo (y el valor unitario) resultante de un movimiento.
	UpdateBalance(ctx context.Context, id string, quantity, unitValue decimal.Decimal, updatedAt time.Time) error
	Delete(ctx context.Context, id string) error
	// List devuelve los ítems del filtro, más recientes primero.
	List(ctx context.Context, filter ItemFilter) ([]*entity.Item, error)
}
