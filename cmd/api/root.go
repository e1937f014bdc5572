package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/todoapp/todo-api/internal/config"
)

type app struct {
	configFile string
	cfg        config.Config
}

func newRootCommand() *cobra.Command {
	a := &app{}

	serve := newServeCommand(a)

	rootCmd := &cobra.Command{
		Use:           "todo-api",
		Short:         "Multi-user TODO API server",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.load()
		},
		RunE: serve.RunE,
	}
	rootCmd.Flags().AddFlagSet(serve.Flags())

	rootCmd.PersistentFlags().StringVar(&a.configFile, "config", "", "YAML config file (default: $TODO_CONFIG)")

	rootCmd.AddCommand(serve)
	rootCmd.AddCommand(newMigrateCommand(a))
	rootCmd.AddCommand(newSecretCommand())

	return rootCmd
}

func (a *app) load() error {
	cfg, err := config.Load(a.configFile)
	if err != nil {
		return err
	}

	logger, err := config.NewLogger(os.Stderr, cfg.Log)
	if err != nil {
		return err
	}
	slog.SetDefault(logger)

	a.cfg = cfg
	return nil
}
