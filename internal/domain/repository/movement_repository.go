package repository

import (
	"context"

	"github.com/jhoicas/agro-inventario/internal/domain/entity"
)

// MovementRepository puerto del libro de movimientos (solo agregar, nunca editar).
type MovementRepository interface {
	// Create agrega el movimiento y le asigna Seq.
	Create(ctx context.Context, movement *entity.Movement) error
	// GetByID devuelve el movimiento o nil si no existe. Permite reintentos idempotentes.
	GetByID(ctx context.Context, id string) (*entity.Movement, error)
	// ListByItem devuelve los últimos limit movimientos del ítem (occurredAt desc, seq desc).
	ListByItem(ctx context.Context, itemID string, limit int) ([]*entity.Movement, error)
	// ListByModule igual que ListByItem pero para todos los ítems del módulo.
	ListByModule(ctx context.Context, module entity.Module, limit int) ([]*entity.Movement, error)
	// ListAllByItem devuelve el historial completo en orden de seq ascendente (replay).
	ListAllByItem(ctx context.Context, itemID string) ([]*entity.Movement, error)
	// DeleteByItem elimina el historial de un ítem (solo en borrado en cascada del ítem).
	DeleteByItem(ctx context.Context, itemID string) error
}
