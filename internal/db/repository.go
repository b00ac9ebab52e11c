package db

import (
	"context"
	"time"
)

// Conversion is one recorded transliteration.
type Conversion struct {
	ID        int64
	Source    string
	Encoding  string
	Style     string
	Result    string
	CreatedAt time.Time
}

type SaveConversionParams struct {
	Source   string
	Encoding string
	Style    string
	Result   string
}

// ListConversionsParams filters the history. An empty Style matches every
// style; Limit <= 0 means DefaultListLimit.
type ListConversionsParams struct {
	Style string
	Limit int32
}

const DefaultListLimit = 20

// Repository defines the interface for the conversion history
type Repository interface {
	SaveConversion(ctx context.Context, arg SaveConversionParams) (Conversion, error)
	GetConversion(ctx context.Context, id int64) (Conversion, error)
	// ListConversions returns the newest conversions first.
	ListConversions(ctx context.Context, arg ListConversionsParams) ([]Conversion, error)
	CountConversions(ctx context.Context, style string) (int64, error)

	// Retention
	DeleteConversionsBefore(ctx context.Context, before time.Time) (int64, error)

	// Transaction support
	WithTx(ctx context.Context, fn func(repo Repository) error) error

	// Lifecycle
	Close() error
}

// EffectiveLimit returns the row limit after applying the default.
func (p ListConversionsParams) EffectiveLimit() int32 {
	if p.Limit <= 0 {
		return DefaultListLimit
	}
	return p.Limit
}
