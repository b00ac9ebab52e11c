package sqlite

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/jusunglee/gurmukhi/internal/db"
	_ "modernc.org/sqlite"
)

//go:embed schema.sql
var schemaSQL string

// timeLayout is fixed width so stored timestamps sort as text.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

// dbtx is satisfied by both *sql.DB and *sql.Tx.
type dbtx interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Repository implements db.Repository using SQLite
type Repository struct {
	db *sql.DB
	q  dbtx
}

// New opens the database at dbPath, creating it and its schema if needed.
func New(ctx context.Context, dbPath string) (*Repository, error) {
	// Strip sqlite:// prefix if present
	dbPath = strings.TrimPrefix(dbPath, "sqlite://")

	sqliteDB, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening SQLite database: %w", err)
	}

	// Every connection to :memory: is a separate database.
	if dbPath == ":memory:" {
		sqliteDB.SetMaxOpenConns(1)
	}

	if _, err := sqliteDB.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		sqliteDB.Close()
		return nil, fmt.Errorf("setting WAL mode: %w", err)
	}

	if _, err := sqliteDB.ExecContext(ctx, schemaSQL); err != nil {
		sqliteDB.Close()
		return nil, fmt.Errorf("initializing schema: %w", err)
	}
	slog.Debug("opened SQLite history", "path", dbPath)

	return &Repository{db: sqliteDB, q: sqliteDB}, nil
}

func (r *Repository) Close() error {
	return r.db.Close()
}

func (r *Repository) WithTx(ctx context.Context, fn func(repo db.Repository) error) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(&Repository{db: r.db, q: tx}); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("transaction error: %w, rollback error: %v", err, rbErr)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

func (r *Repository) SaveConversion(ctx context.Context, arg db.SaveConversionParams) (db.Conversion, error) {
	now := time.Now().UTC()
	result, err := r.q.ExecContext(ctx, `
		INSERT INTO conversions (source, encoding, style, result, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, arg.Source, arg.Encoding, arg.Style, arg.Result, now.Format(timeLayout))
	if err != nil {
		return db.Conversion{}, fmt.Errorf("inserting conversion: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return db.Conversion{}, err
	}

	return r.GetConversion(ctx, id)
}

func (r *Repository) GetConversion(ctx context.Context, id int64) (db.Conversion, error) {
	row := r.q.QueryRowContext(ctx, `
		SELECT id, source, encoding, style, result, created_at
		FROM conversions
		WHERE id = ?
	`, id)

	c, err := scanConversion(row)
	if errors.Is(err, sql.ErrNoRows) {
		return db.Conversion{}, db.NotFound(id)
	}
	return c, err
}

func (r *Repository) ListConversions(ctx context.Context, arg db.ListConversionsParams) ([]db.Conversion, error) {
	rows, err := r.q.QueryContext(ctx, `
		SELECT id, source, encoding, style, result, created_at
		FROM conversions
		WHERE ? = '' OR style = ?
		ORDER BY id DESC
		LIMIT ?
	`, arg.Style, arg.Style, arg.EffectiveLimit())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanConversions(rows)
}

func (r *Repository) CountConversions(ctx context.Context, style string) (int64, error) {
	var count int64
	err := r.q.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM conversions WHERE ? = '' OR style = ?
	`, style, style).Scan(&count)
	return count, err
}

func (r *Repository) DeleteConversionsBefore(ctx context.Context, before time.Time) (int64, error) {
	result, err := r.q.ExecContext(ctx, `
		DELETE FROM conversions WHERE created_at < ?
	`, before.UTC().Format(timeLayout))
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanConversion(row scanner) (db.Conversion, error) {
	var c db.Conversion
	var createdAtStr string
	if err := row.Scan(&c.ID, &c.Source, &c.Encoding, &c.Style, &c.Result, &createdAtStr); err != nil {
		return db.Conversion{}, err
	}
	c.CreatedAt, _ = time.Parse(timeLayout, createdAtStr)
	return c, nil
}

func scanConversions(rows *sql.Rows) ([]db.Conversion, error) {
	var conversions []db.Conversion
	for rows.Next() {
		c, err := scanConversion(rows)
		if err != nil {
			return nil, err
		}
		conversions = append(conversions, c)
	}
	return conversions, rows.Err()
}
