package postgres

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jusunglee/gurmukhi/internal/db"
)

//go:embed schema.sql
var schemaSQL string

// querier is satisfied by both *pgxpool.Pool and pgx.Tx.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Repository implements db.Repository using PostgreSQL via pgx
type Repository struct {
	pool *pgxpool.Pool
	q    querier
}

// New connects to databaseURL and makes sure the schema exists.
func New(ctx context.Context, databaseURL string) (*Repository, error) {
	pool, err := db.NewPool(ctx, databaseURL)
	if err != nil {
		return nil, err
	}

	if _, err := pool.Exec(ctx, schemaSQL); err != nil {
		pool.Close()
		return nil, fmt.Errorf("initializing schema: %w", err)
	}

	return &Repository{pool: pool, q: pool}, nil
}

func (r *Repository) Close() error {
	r.pool.Close()
	return nil
}

func (r *Repository) WithTx(ctx context.Context, fn func(repo db.Repository) error) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}

	// fn may panic; roll back so the connection goes back to the pool.
	defer func() {
		if p := recover(); p != nil {
			tx.Rollback(ctx)
			panic(p)
		}
	}()

	err = fn(&Repository{pool: r.pool, q: tx})
	if err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil {
			return fmt.Errorf("transaction error: %w, rollback error: %v", err, rbErr)
		}
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

const conversionColumns = `id, source, encoding, style, result, created_at`

func (r *Repository) SaveConversion(ctx context.Context, arg db.SaveConversionParams) (db.Conversion, error) {
	rows, err := r.q.Query(ctx, `
		INSERT INTO conversions (source, encoding, style, result)
		VALUES ($1, $2, $3, $4)
		RETURNING `+conversionColumns,
		arg.Source, arg.Encoding, arg.Style, arg.Result)
	if err != nil {
		return db.Conversion{}, fmt.Errorf("inserting conversion: %w", err)
	}
	c, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByPos[db.Conversion])
	if err != nil {
		return db.Conversion{}, fmt.Errorf("inserting conversion: %w", err)
	}
	return c, nil
}

func (r *Repository) GetConversion(ctx context.Context, id int64) (db.Conversion, error) {
	rows, err := r.q.Query(ctx, `
		SELECT `+conversionColumns+`
		FROM conversions
		WHERE id = $1
	`, id)
	if err != nil {
		return db.Conversion{}, err
	}
	c, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByPos[db.Conversion])
	if errors.Is(err, pgx.ErrNoRows) {
		return db.Conversion{}, db.NotFound(id)
	}
	return c, err
}

func (r *Repository) ListConversions(ctx context.Context, arg db.ListConversionsParams) ([]db.Conversion, error) {
	rows, err := r.q.Query(ctx, `
		SELECT `+conversionColumns+`
		FROM conversions
		WHERE $1::text = '' OR style = $1
		ORDER BY id DESC
		LIMIT $2
	`, arg.Style, arg.EffectiveLimit())
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowToStructByPos[db.Conversion])
}

func (r *Repository) CountConversions(ctx context.Context, style string) (int64, error) {
	var count int64
	err := r.q.QueryRow(ctx, `
		SELECT COUNT(*) FROM conversions WHERE $1::text = '' OR style = $1
	`, style).Scan(&count)
	return count, err
}

func (r *Repository) DeleteConversionsBefore(ctx context.Context, before time.Time) (int64, error) {
	tag, err := r.q.Exec(ctx, `DELETE FROM conversions WHERE created_at < $1`, before)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
