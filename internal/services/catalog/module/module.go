// Package module assembles the catalog service from config and deps
package module

import (
	"context"
	"time"

	"packrat/internal/adapters/ingest/scryfall"
	"packrat/internal/modkit"
	"packrat/internal/services/catalog/domain"
	"packrat/internal/services/catalog/repo"
	"packrat/internal/services/catalog/service"
)

const (
	defaultSnapshotDir  = "data"
	defaultFetchTimeout = 5 * time.Minute
)

// Module owns the catalog service and exposes its ports
type Module struct {
	svc *service.Service
}

// New builds the module; env under CORE_CATALOG_ provides the defaults
// (CORE_CATALOG_SNAPSHOT_DIR, CORE_CATALOG_FETCH_TIMEOUT) and options
// override them
func New(d modkit.Deps, opts ...Option) *Module {
	cfg := d.Cfg.Prefix("CORE_CATALOG_")

	s := settings{
		snapshotDir: cfg.MayString("SNAPSHOT_DIR", defaultSnapshotDir),
		fetchTO:     cfg.MayDuration("FETCH_TIMEOUT", defaultFetchTimeout),
	}
	for _, o := range opts {
		o(&s)
	}
	if s.repo == nil {
		s.repo = repo.NewPG()
	}
	if s.fetch == nil {
		s.fetch = &scryfallFetcher{inner: scryfall.NewHTTPFetcherWithTimeout(s.fetchTO)}
	}
	if s.decode == nil {
		s.decode = scryfall.DecodeCards
	}

	return &Module{svc: service.New(d.PG, s.repo, s.fetch, s.decode, s.snapshotDir)}
}

// Sync exposes the pipeline port
func (m *Module) Sync() domain.SyncPort { return m.svc }

// Query exposes the read port
func (m *Module) Query() domain.QueryPort { return m.svc }

// scryfallFetcher adapts the upstream client to the string-typed port
type scryfallFetcher struct{ inner *scryfall.HTTPFetcher }

func (f *scryfallFetcher) Snapshot(ctx context.Context, dataType, dir string) (string, error) {
	t, err := scryfall.ParseBulkDataType(dataType)
	if err != nil {
		return "", err
	}
	return f.inner.Snapshot(ctx, t, dir)
}
