// Package service implements the catalog sync pipeline and read queries
package service

import (
	"context"
	"os"
	"time"

	"github.com/google/uuid"

	"packrat/internal/core/catalog"
	"packrat/internal/modkit/repokit"
	perr "packrat/internal/platform/errors"
	"packrat/internal/platform/logger"
	"packrat/internal/services/catalog/domain"
)

// Service orchestrates fetch, normalize, aggregate, and upsert, and serves
// reads off the same storage binder
type Service struct {
	db     repokit.TxRunner
	repo   repokit.Binder[domain.StorageRepo]
	fetch  domain.Fetcher
	decode domain.Decoder

	snapshotDir string
}

// New wires a Service from its dependencies
func New(db repokit.TxRunner, repo repokit.Binder[domain.StorageRepo], fetch domain.Fetcher,
	decode domain.Decoder, snapshotDir string,
) *Service {
	return &Service{db: db, repo: repo, fetch: fetch, decode: decode, snapshotDir: snapshotDir}
}

// Sync runs one full pipeline pass for req and reports what it did
//
// A snapshot path in req short-circuits the download and replays that file,
// which is how same-day reruns avoid pulling the bulk payload twice. Every
// aggregated entry is upserted in its own transaction; the first failed row
// aborts the run after its contents were logged
func (s *Service) Sync(ctx context.Context, req domain.SyncRequest) (domain.Summary, error) {
	runID := uuid.NewString()
	ctx = logger.WithRun(ctx, runID)
	log := logger.C(ctx)

	started := time.Now().UTC()
	log.Info().Str("data_type", req.DataType).Msg("sync run starting")

	path := req.SnapshotPath
	if path == "" {
		var err error
		path, err = s.fetch.Snapshot(ctx, req.DataType, s.snapshotDir)
		if err != nil {
			return domain.Summary{}, err
		}
	} else if _, err := os.Stat(path); err != nil {
		return domain.Summary{}, perr.NotFoundf("snapshot file %q not found", path)
	}

	f, err := os.Open(path)
	if err != nil {
		return domain.Summary{}, perr.Wrapf(err, perr.ErrorCodeUnknown, "open snapshot %q", path)
	}
	defer func() { _ = f.Close() }()

	cards, err := s.decode(f)
	if err != nil {
		return domain.Summary{}, err
	}

	prints, err := catalog.NormalizeAll(cards)
	if err != nil {
		return domain.Summary{}, err
	}
	entries, err := catalog.Aggregate(prints)
	if err != nil {
		return domain.Summary{}, err
	}
	log.Info().
		Int("prints", len(prints)).
		Int("cards", len(entries)).
		Str("snapshot", path).
		Msg("snapshot normalized and aggregated")

	if err := s.db.Tx(ctx, func(q repokit.Queryer) error {
		r := s.repo.Bind(q)
		if err := r.EnsureSchema(ctx); err != nil {
			return err
		}
		return r.InsertRun(ctx, domain.Run{
			ID:           runID,
			DataType:     req.DataType,
			SnapshotFile: path,
			Status:       domain.RunStatusRunning,
			StartedAt:    started,
		})
	}); err != nil {
		return domain.Summary{}, err
	}

	for _, e := range entries {
		if err := s.db.Tx(ctx, func(q repokit.Queryer) error {
			return s.repo.Bind(q).Upsert(ctx, e)
		}); err != nil {
			log.Error().
				Err(err).
				Str("name", e.Name).
				Str("set_name", e.SetName).
				Str("rarity", e.Rarity).
				Str("colors", e.Colors).
				Str("cmc", e.CMC).
				Str("type_line", e.TypeLine).
				Msg("upsert failed, aborting run")
			s.finish(ctx, runID, domain.RunStatusError, err.Error(), len(prints), len(entries))
			return domain.Summary{}, err
		}
	}

	s.finish(ctx, runID, domain.RunStatusOK, "", len(prints), len(entries))
	log.Info().Msg("sync run finished")

	return domain.Summary{
		RunID:        runID,
		SnapshotPath: path,
		Prints:       len(prints),
		Cards:        len(entries),
	}, nil
}

// finish closes the run record; bookkeeping failures are logged, not raised,
// so they never mask the pipeline outcome
func (s *Service) finish(ctx context.Context, runID, status, errMsg string, prints, cards int) {
	err := s.db.Tx(ctx, func(q repokit.Queryer) error {
		return s.repo.Bind(q).FinishRun(ctx, runID, status, errMsg, prints, cards)
	})
	if err != nil {
		logger.C(ctx).Warn().Err(err).Str("status", status).Msg("could not finalize sync run record")
	}
}

// Get returns one card row by exact name
func (s *Service) Get(ctx context.Context, name string) (domain.Row, error) {
	if name == "" {
		return domain.Row{}, perr.WithField(perr.InvalidArgf("card name is required"), "name")
	}
	return s.repo.Bind(s.db).Get(ctx, name)
}

// List pages through cards and returns the total count for the same filter
func (s *Service) List(ctx context.Context, prefix string, limit, offset int) ([]domain.Row, int, error) {
	if limit <= 0 || limit > 500 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	r := s.repo.Bind(s.db)
	rows, err := r.List(ctx, prefix, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	total, err := r.Count(ctx, prefix)
	if err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

// Runs returns recent sync runs, newest first
func (s *Service) Runs(ctx context.Context, limit int) ([]domain.Run, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return s.repo.Bind(s.db).Runs(ctx, limit)
}
