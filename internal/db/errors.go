package db

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// ErrNoRows is returned when a lookup matches nothing
var ErrNoRows = errors.New("no rows in result set")

// NotFound reports a missing conversion. It matches ErrNoRows.
func NotFound(id int64) error {
	return fmt.Errorf("conversion %d: %w", id, ErrNoRows)
}

// IsNoRows reports whether err means nothing was found, for either backend.
func IsNoRows(err error) bool {
	if err == nil {
		return false
	}
	return errors.Is(err, ErrNoRows) ||
		errors.Is(err, sql.ErrNoRows) ||
		errors.Is(err, pgx.ErrNoRows)
}
