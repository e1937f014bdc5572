package repository

import (
	"context"
	"fmt"
	"log/slog"
)

var postgresSchema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id            UUID PRIMARY KEY,
		email         VARCHAR(255) NOT NULL,
		password_hash VARCHAR(255) NOT NULL,
		created_at    TIMESTAMPTZ NOT NULL,
		updated_at    TIMESTAMPTZ NOT NULL,
		CONSTRAINT users_email_key UNIQUE (email)
	)`,
	`CREATE TABLE IF NOT EXISTS todos (
		id          UUID PRIMARY KEY,
		title       TEXT NOT NULL,
		description TEXT NULL,
		completed   BOOLEAN NOT NULL DEFAULT FALSE,
		user_id     UUID NOT NULL REFERENCES users (id),
		created_at  TIMESTAMPTZ NOT NULL,
		updated_at  TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_todos_user_created ON todos (user_id, created_at DESC)`,
	`CREATE TABLE IF NOT EXISTS comments (
		id         UUID PRIMARY KEY,
		content    TEXT NOT NULL,
		todo_id    UUID NOT NULL REFERENCES todos (id) ON DELETE CASCADE,
		user_id    UUID NOT NULL REFERENCES users (id),
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_comments_todo_created ON comments (todo_id, created_at DESC)`,
	`CREATE TABLE IF NOT EXISTS reactions (
		id         UUID PRIMARY KEY,
		todo_id    UUID NOT NULL REFERENCES todos (id) ON DELETE CASCADE,
		user_id    UUID NOT NULL REFERENCES users (id),
		emoji      VARCHAR(64) NOT NULL,
		created_at TIMESTAMPTZ NOT NULL,
		CONSTRAINT reactions_todo_user_emoji_key UNIQUE (todo_id, user_id, emoji)
	)`,
}

// Emoji uses a binary collation: the general utf8mb4 collations compare
// many distinct emoji as equal.
var mysqlSchema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id            CHAR(36) NOT NULL PRIMARY KEY,
		email         VARCHAR(255) NOT NULL,
		password_hash VARCHAR(255) NOT NULL,
		created_at    DATETIME(6) NOT NULL,
		updated_at    DATETIME(6) NOT NULL,
		UNIQUE KEY users_email_key (email)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	`CREATE TABLE IF NOT EXISTS todos (
		id          CHAR(36) NOT NULL PRIMARY KEY,
		title       TEXT NOT NULL,
		description TEXT NULL,
		completed   BOOLEAN NOT NULL DEFAULT FALSE,
		user_id     CHAR(36) NOT NULL,
		created_at  DATETIME(6) NOT NULL,
		updated_at  DATETIME(6) NOT NULL,
		KEY idx_todos_user_created (user_id, created_at),
		CONSTRAINT todos_user_id_fkey FOREIGN KEY (user_id) REFERENCES users (id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	`CREATE TABLE IF NOT EXISTS comments (
		id         CHAR(36) NOT NULL PRIMARY KEY,
		content    TEXT NOT NULL,
		todo_id    CHAR(36) NOT NULL,
		user_id    CHAR(36) NOT NULL,
		created_at DATETIME(6) NOT NULL,
		updated_at DATETIME(6) NOT NULL,
		KEY idx_comments_todo_created (todo_id, created_at),
		CONSTRAINT comments_todo_id_fkey FOREIGN KEY (todo_id) REFERENCES todos (id) ON DELETE CASCADE,
		CONSTRAINT comments_user_id_fkey FOREIGN KEY (user_id) REFERENCES users (id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	`CREATE TABLE IF NOT EXISTS reactions (
		id         CHAR(36) NOT NULL PRIMARY KEY,
		todo_id    CHAR(36) NOT NULL,
		user_id    CHAR(36) NOT NULL,
		emoji      VARCHAR(64) CHARACTER SET utf8mb4 COLLATE utf8mb4_bin NOT NULL,
		created_at DATETIME(6) NOT NULL,
		UNIQUE KEY reactions_todo_user_emoji_key (todo_id, user_id, emoji),
		CONSTRAINT reactions_todo_id_fkey FOREIGN KEY (todo_id) REFERENCES todos (id) ON DELETE CASCADE,
		CONSTRAINT reactions_user_id_fkey FOREIGN KEY (user_id) REFERENCES users (id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
}

// Schema returns the DDL statements for driver.
func Schema(driver string) ([]string, error) {
	switch driver {
	case DriverPostgres:
		return postgresSchema, nil
	case DriverMySQL:
		return mysqlSchema, nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}
}

// Migrate creates any missing tables and indexes. It is safe to run on every
// start.
func (d *DB) Migrate(ctx context.Context) error {
	stmts, err := Schema(d.DriverName())
	if err != nil {
		return err
	}

	for i, stmt := range stmts {
		if _, err := d.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migration step %d: %w", i+1, err)
		}
	}

	slog.Info("schema up to date", "driver", d.DriverName(), "statements", len(stmts))
	return nil
}
