package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/todoapp/todo-api/internal/crypto"
	"github.com/todoapp/todo-api/internal/repository"
	"github.com/todoapp/todo-api/internal/server"
	"github.com/todoapp/todo-api/internal/service"
)

func newServeCommand(a *app) *cobra.Command {
	var migrate bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API (default)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.serve(cmd.Context(), migrate)
		},
	}
	cmd.Flags().BoolVar(&migrate, "migrate", false, "apply the schema before serving")

	return cmd
}

func (a *app) serve(ctx context.Context, migrate bool) error {
	cfg := a.cfg

	db, err := repository.Open(ctx, cfg.Database.Driver, cfg.Database.DSN)
	if err != nil {
		return err
	}
	defer db.Close()

	if migrate {
		if err := db.Migrate(ctx); err != nil {
			return err
		}
	}

	issuer := crypto.NewTokenIssuer(cfg.JWT.Secret, cfg.JWT.Expiry)
	users := repository.NewUserRepository(db)
	todos := repository.NewTodoRepository(db)

	router := server.NewRouter(ctx, server.Deps{
		Auth:      service.NewAuthService(users, issuer),
		Todos:     service.NewTodoService(todos),
		Comments:  service.NewCommentService(todos, repository.NewCommentRepository(db)),
		Reactions: service.NewReactionService(todos, repository.NewReactionRepository(db)),

		Tokens: issuer,
		Users:  users,

		AllowedOrigins: cfg.CORS.AllowedOrigins,
		RateLimitRPS:   cfg.RateLimit.RPS,
		RateLimitBurst: cfg.RateLimit.Burst,
		TrustedProxies: cfg.Proxies,
	})

	return server.Run(ctx, server.New(":"+cfg.Port, router))
}
