package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/go-sql-driver/mysql"
	"github.com/lib/pq"
)

var (
	ErrNotFound   = errors.New("record not found")
	ErrDuplicate  = errors.New("duplicate key violation")
	ErrForeignKey = errors.New("foreign key violation")
)

// Error carries the operation and table a driver error came from.
type Error struct {
	Op         string
	Table      string
	Constraint string
	Err        error
}

func (e *Error) Error() string {
	parts := []string{"repository: " + e.Op}
	if e.Table != "" {
		parts = append(parts, "table="+e.Table)
	}
	if e.Constraint != "" {
		parts = append(parts, "constraint="+e.Constraint)
	}
	if e.Err != nil {
		parts = append(parts, e.Err.Error())
	}
	return strings.Join(parts, ": ")
}

func (e *Error) Unwrap() error {
	return e.Err
}

// classify maps driver errors onto the package sentinels.
func classify(err error, op, table string) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, sql.ErrNoRows) || errors.Is(err, ErrNotFound) {
		return &Error{Op: op, Table: table, Err: ErrNotFound}
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case "23505":
			return &Error{Op: op, Table: table, Constraint: pqErr.Constraint, Err: ErrDuplicate}
		case "23503":
			return &Error{Op: op, Table: table, Constraint: pqErr.Constraint, Err: ErrForeignKey}
		}
	}

	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		switch myErr.Number {
		case 1062:
			return &Error{Op: op, Table: table, Err: ErrDuplicate}
		case 1451, 1452:
			return &Error{Op: op, Table: table, Err: ErrForeignKey}
		}
	}

	return &Error{Op: op, Table: table, Err: fmt.Errorf("%w", err)}
}
