package domain

import (
	"context"
	"io"

	"packrat/internal/core/catalog"
)

// SyncPort runs one full snapshot through normalize, aggregate, and upsert
type SyncPort interface {
	Sync(ctx context.Context, req SyncRequest) (Summary, error)
}

// QueryPort reads the persisted catalog
type QueryPort interface {
	Get(ctx context.Context, name string) (Row, error)
	List(ctx context.Context, prefix string, limit, offset int) ([]Row, int, error)
	Runs(ctx context.Context, limit int) ([]Run, error)
}

// Fetcher downloads one bulk snapshot into dir and returns its path
type Fetcher interface {
	Snapshot(ctx context.Context, dataType string, dir string) (string, error)
}

// Decoder turns a raw snapshot stream into card records
type Decoder func(r io.Reader) ([]catalog.Card, error)

// StorageRepo is the persistence surface the service binds per queryer
type StorageRepo interface {
	EnsureSchema(ctx context.Context) error
	Upsert(ctx context.Context, e catalog.Entry) error

	Get(ctx context.Context, name string) (Row, error)
	List(ctx context.Context, prefix string, limit, offset int) ([]Row, error)
	Count(ctx context.Context, prefix string) (int, error)

	InsertRun(ctx context.Context, r Run) error
	FinishRun(ctx context.Context, id, status, errMsg string, prints, cards int) error
	Runs(ctx context.Context, limit int) ([]Run, error)
}
