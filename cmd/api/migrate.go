package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/todoapp/todo-api/internal/repository"
)

func newMigrateCommand(a *app) *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Create any missing tables and indexes",
		RunE: func(cmd *cobra.Command, args []string) error {
			if dryRun {
				stmts, err := repository.Schema(a.cfg.Database.Driver)
				if err != nil {
					return err
				}
				for _, stmt := range stmts {
					fmt.Fprintln(cmd.OutOrStdout(), stmt+";")
				}
				return nil
			}

			db, err := repository.Open(cmd.Context(), a.cfg.Database.Driver, a.cfg.Database.DSN)
			if err != nil {
				return err
			}
			defer db.Close()

			return db.Migrate(cmd.Context())
		},
	}
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "print the DDL instead of applying it")

	return cmd
}
