package repository

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/go-sql-driver/mysql"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

// Supported database/sql driver names.
const (
	DriverPostgres = "postgres"
	DriverMySQL    = "mysql"
)

// DB wraps a connection pool with a statement builder using the driver's
// placeholder format.
type DB struct {
	*sqlx.DB
	sq sq.StatementBuilderType
}

// Open creates a connection pool for driver and verifies it with a ping.
func Open(ctx context.Context, driver, dsn string) (*DB, error) {
	switch driver {
	case DriverPostgres:
	case DriverMySQL:
		normalized, err := mysqlDSN(dsn)
		if err != nil {
			return nil, fmt.Errorf("parsing mysql dsn: %w", err)
		}
		dsn = normalized
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}

	db, err := sqlx.Open(driver, dsn)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	slog.Info("database connected", "driver", driver)
	return NewDB(db), nil
}

// NewDB wraps an existing pool. The placeholder format follows db.DriverName().
func NewDB(db *sqlx.DB) *DB {
	format := sq.PlaceholderFormat(sq.Question)
	if db.DriverName() == DriverPostgres {
		format = sq.Dollar
	}
	return &DB{
		DB: db,
		sq: sq.StatementBuilder.PlaceholderFormat(format),
	}
}

// mysqlDSN forces the connection options the repositories rely on:
// time.Time scanning, UTC, and RowsAffected counting matched rows rather
// than changed rows.
func mysqlDSN(dsn string) (string, error) {
	cfg, err := mysql.ParseDSN(dsn)
	if err != nil {
		return "", err
	}
	cfg.ParseTime = true
	cfg.ClientFoundRows = true
	cfg.Loc = time.UTC
	return cfg.FormatDSN(), nil
}

// WithTx runs fn inside a transaction. The transaction is committed when fn
// returns nil and rolled back when it returns an error or panics.
func (d *DB) WithTx(ctx context.Context, opts *sql.TxOptions, fn func(tx *sqlx.Tx) error) (err error) {
	tx, err := d.BeginTxx(ctx, opts)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("rollback failed: %v (original error: %w)", rbErr, err)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

func getx(ctx context.Context, q sqlx.QueryerContext, dest any, b sq.Sqlizer) error {
	query, args, err := b.ToSql()
	if err != nil {
		return err
	}
	return sqlx.GetContext(ctx, q, dest, query, args...)
}

func selectx(ctx context.Context, q sqlx.QueryerContext, dest any, b sq.Sqlizer) error {
	query, args, err := b.ToSql()
	if err != nil {
		return err
	}
	return sqlx.SelectContext(ctx, q, dest, query, args...)
}

func execx(ctx context.Context, e sqlx.ExecerContext, b sq.Sqlizer) (sql.Result, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return nil, err
	}
	return e.ExecContext(ctx, query, args...)
}

// execAffecting runs b and returns ErrNotFound when no row matched.
func execAffecting(ctx context.Context, e sqlx.ExecerContext, b sq.Sqlizer) error {
	result, err := execx(ctx, e, b)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// NewID returns a time-ordered UUID string.
func NewID() string {
	return uuid.Must(uuid.NewV7()).String()
}

// now returns the current time at the precision both schemas store.
func now() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}
