package main

import (
	"context"
	"fmt"

	"github.com/jhoicas/agro-inventario/internal/application/inventory"
	"github.com/jhoicas/agro-inventario/internal/domain/repository"
	"github.com/jhoicas/agro-inventario/internal/infrastructure/memory"
	"github.com/jhoicas/agro-inventario/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/agro-inventario/internal/interfaces/http"
	"github.com/jhoicas/agro-inventario/pkg/config"
	"github.com/jhoicas/agro-inventario/pkg/logger"
)

// storage repositorios y ejecutor de transacciones del backend elegido.
type storage struct {
	runner    inventory.TxRunner
	items     repository.ItemRepository
	movements repository.MovementRepository
	check     httpRouter.HealthCheck
	close     func()
}

func openStorage(ctx context.Context, cfg *config.Config, log *logger.Logger) (*storage, error) {
	switch cfg.Store.Driver {
	case config.DriverMemory:
		log.Warn().Msg("almacenamiento en memoria: los datos se pierden al reiniciar")
		s := memory.NewStore(cfg.Inventory.LockTimeout)
		return &storage{
			runner:    memory.NewTxRunner(s),
			items:     memory.NewItemRepository(s),
			movements: memory.NewMovementRepository(s),
			close:     func() {},
		}, nil

	case config.DriverPostgres:
		dsn := cfg.DB.ConnectionString()
		if cfg.DB.Migrate {
			if err := postgres.Migrate(dsn); err != nil {
				return nil, fmt.Errorf("migraciones: %w", err)
			}
			log.Info().Msg("migraciones aplicadas")
		}
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			return nil, fmt.Errorf("conexión a PostgreSQL: %w", err)
		}
		return &storage{
			runner:    postgres.NewTxRunner(pool, cfg.Inventory.LockTimeout),
			items:     postgres.NewItemRepository(pool),
			movements: postgres.NewMovementRepository(pool),
			check:     pool.Ping,
			close:     pool.Close,
		}, nil
	}
	return nil, fmt.Errorf("driver de almacenamiento desconocido %q", cfg.Store.Driver)
}
