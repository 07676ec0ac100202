package main

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"

	"github.com/jhoicas/agro-inventario/internal/infrastructure/postgres"
	"github.com/jhoicas/agro-inventario/pkg/config"
	"github.com/jhoicas/agro-inventario/pkg/logger"
)

// env configuración y logger compartidos por los subcomandos.
type env struct {
	cfg *config.Config
	log *logger.Logger
}

func newRootCmd() *cobra.Command {
	e := &env{}
	root := &cobra.Command{
		Use:           "inventoryctl",
		Short:         "Herramientas de operación del inventario agro",
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("cargar configuración: %w", err)
			}
			e.cfg = cfg
			e.log = logger.New(logger.Config{
				Env:     cfg.App.Env,
				Level:   cfg.App.LogLevel,
				Service: "inventoryctl",
				Output:  cmd.ErrOrStderr(),
			})
			return nil
		},
	}
	root.AddCommand(newAuditCmd(e), newSummaryCmd(e), newMigrateCmd(e))
	return root
}

// openPool abre PostgreSQL; los comandos operan siempre sobre la base persistente.
func (e *env) openPool(ctx context.Context) (*pgxpool.Pool, error) {
	if e.cfg.Store.Driver != config.DriverPostgres {
		return nil, fmt.Errorf("STORE_DRIVER=%s: inventoryctl requiere postgres", e.cfg.Store.Driver)
	}
	return postgres.NewPool(ctx, e.cfg.DB)
}
