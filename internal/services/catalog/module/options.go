package module

import (
	"time"

	"packrat/internal/modkit/repokit"
	"packrat/internal/services/catalog/domain"
)

// Option tweaks module construction
type Option func(*settings)

type settings struct {
	fetch       domain.Fetcher
	decode      domain.Decoder
	repo        repokit.Binder[domain.StorageRepo]
	snapshotDir string
	fetchTO     time.Duration
}

// WithFetcher overrides the snapshot fetcher (tests use a local one)
func WithFetcher(f domain.Fetcher) Option { return func(s *settings) { s.fetch = f } }

// WithDecoder overrides the snapshot decoder
func WithDecoder(d domain.Decoder) Option { return func(s *settings) { s.decode = d } }

// WithRepo overrides the storage binder
func WithRepo(b repokit.Binder[domain.StorageRepo]) Option {
	return func(s *settings) { s.repo = b }
}

// WithSnapshotDir overrides where downloaded snapshots land
func WithSnapshotDir(dir string) Option { return func(s *settings) { s.snapshotDir = dir } }

// WithFetchTimeout overrides the bulk download timeout
func WithFetchTimeout(d time.Duration) Option { return func(s *settings) { s.fetchTO = d } }
