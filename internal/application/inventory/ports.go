package inventory

import (
	"context"
	"time"

	"github.com/jhoicas/agro-inventario/internal/domain/repository"
)

// TxRunner ejecuta fn como una unidad atómica con el ítem itemID bloqueado en exclusiva.
// Si fn devuelve error nada de lo escrito se persiste. Implementaciones: memoria y PostgreSQL.
type TxRunner interface {
	Run(ctx context.Context, itemID string, fn func(
		items repository.ItemRepository,
		movements repository.MovementRepository,
	) error) error
}

// Clock fuente de tiempo inyectable (tests).
type Clock func() time.Time
