package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jhoicas/agro-inventario/internal/infrastructure/postgres"
)

func newMigrateCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Migraciones del esquema PostgreSQL",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Aplica las migraciones pendientes",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				if err := postgres.Migrate(e.cfg.DB.ConnectionString()); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "migraciones aplicadas")
				return nil
			},
		},
		&cobra.Command{
			Use:   "down",
			Short: "Revierte todas las migraciones (borra los datos)",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				if err := postgres.MigrateDown(e.cfg.DB.ConnectionString()); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "migraciones revertidas")
				return nil
			},
		},
		&cobra.Command{
			Use:   "version",
			Short: "Muestra la versión aplicada del esquema",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				v, dirty, err := postgres.MigrationVersion(e.cfg.DB.ConnectionString())
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "versión %d (dirty=%t)\n", v, dirty)
				return nil
			},
		},
	)
	return cmd
}
