package main

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/jhoicas/agro-inventario/internal/application/analytics"
	"github.com/jhoicas/agro-inventario/internal/infrastructure/postgres"
)

func newSummaryCmd(e *env) *cobra.Command {
	var horizon, limit int
	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Imprime el resumen de alertas en JSON",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			pool, err := e.openPool(ctx)
			if err != nil {
				return err
			}
			defer pool.Close()

			uc := analytics.NewSummaryUseCase(postgres.NewItemRepository(pool), analytics.SummaryConfig{
				HorizonDays: e.cfg.Summary.HorizonDays,
				UrgentLimit: e.cfg.Summary.UrgentLimit,
				Location:    e.cfg.App.Location(),
				Logger:      e.log,
			})
			out, err := uc.GetSummary(ctx, flagCount(cmd, "horizon", horizon), flagCount(cmd, "limit", limit))
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(out)
		},
	}
	cmd.Flags().IntVar(&horizon, "horizon", 0, "días hacia adelante (sin el flag = configurado)")
	cmd.Flags().IntVar(&limit, "limit", 0, "tamaño de la lista urgente (sin el flag = configurado)")
	return cmd
}

// flagCount 0 = flag ausente; un valor pasado explícitamente nunca baja de 1.
func flagCount(cmd *cobra.Command, name string, v int) int {
	if !cmd.Flags().Changed(name) {
		return 0
	}
	return max(v, 1)
}
