package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/jhoicas/agro-inventario/internal/application/inventory"
	"github.com/jhoicas/agro-inventario/internal/infrastructure/postgres"
)

func newAuditCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "audit",
		Short: "Recalcula el saldo de cada ítem desde su libro y reporta diferencias",
		Long: "Pliega el historial de movimientos de todos los ítems en orden de inserción y lo compara\n" +
			"con el saldo guardado. Termina con código distinto de cero si algún ítem no cuadra.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			pool, err := e.openPool(ctx)
			if err != nil {
				return err
			}
			defer pool.Close()

			ledger := inventory.NewLedgerUseCase(
				postgres.NewTxRunner(pool, e.cfg.Inventory.LockTimeout),
				postgres.NewItemRepository(pool),
				postgres.NewMovementRepository(pool),
				inventory.Options{Logger: e.log},
			)
			checked, drift, err := ledger.AuditAll(ctx)
			if err != nil {
				return fmt.Errorf("auditoría: %w", err)
			}
			return writeAudit(cmd.OutOrStdout(), checked, drift)
		},
	}
}

// writeAudit imprime las diferencias y devuelve error si hay alguna.
func writeAudit(w io.Writer, checked int, drift []*inventory.AuditReport) error {
	if len(drift) == 0 {
		fmt.Fprintf(w, "%d ítem(s) auditados, sin diferencias\n", checked)
		return nil
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "MÓDULO\tID\tNOMBRE\tSALDO\tLIBRO\tMOVS\tPROBLEMA")
	for _, r := range drift {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%d\t%s\n",
			r.Module, r.ItemID, r.Name, r.Quantity, r.Replayed, r.Movements, r.Problem)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	return fmt.Errorf("%d de %d ítem(s) con saldo inconsistente", len(drift), checked)
}
