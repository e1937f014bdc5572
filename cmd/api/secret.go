package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/todoapp/todo-api/internal/crypto"
)

func newSecretCommand() *cobra.Command {
	var length int

	cmd := &cobra.Command{
		Use:   "gen-secret",
		Short: "Print a random value for JWT_SECRET",
		// Runs before a secret exists, so configuration is not loaded.
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
		RunE: func(cmd *cobra.Command, args []string) error {
			secret, err := crypto.GenerateSecret(length)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), secret)
			return nil
		},
	}
	cmd.Flags().IntVar(&length, "length", crypto.DefaultSecretLength, "secret length (32-128)")

	return cmd
}
