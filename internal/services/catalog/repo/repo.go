// Package repo contains the Postgres persistence for the catalog service
package repo

import (
	"context"

	"packrat/internal/core/catalog"
	"packrat/internal/modkit/repokit"
	perr "packrat/internal/platform/errors"
	"packrat/internal/platform/store"
	"packrat/internal/services/catalog/domain"
)

type pg struct{ q repokit.Queryer }

// NewPG returns a binder that attaches the storage repo to a queryer
func NewPG() repokit.Binder[domain.StorageRepo] {
	return repokit.BindFunc[domain.StorageRepo](func(q repokit.Queryer) domain.StorageRepo {
		return &pg{q: q}
	})
}

const createCardsSQL = `
	CREATE TABLE IF NOT EXISTS cards (
		name      TEXT PRIMARY KEY,
		set_name  TEXT NOT NULL DEFAULT '',
		rarity    TEXT NOT NULL DEFAULT '',
		colors    TEXT NOT NULL DEFAULT '',
		cmc       TEXT NOT NULL DEFAULT '',
		type_line TEXT NOT NULL DEFAULT '',
		deck      TEXT NOT NULL DEFAULT ''
	)`

const createRunsSQL = `
	CREATE TABLE IF NOT EXISTS sync_runs (
		id            TEXT PRIMARY KEY,
		data_type     TEXT NOT NULL,
		snapshot_file TEXT NOT NULL DEFAULT '',
		prints        BIGINT NOT NULL DEFAULT 0,
		cards         BIGINT NOT NULL DEFAULT 0,
		status        TEXT NOT NULL,
		error         TEXT NOT NULL DEFAULT '',
		started_at    TIMESTAMPTZ NOT NULL,
		finished_at   TIMESTAMPTZ
	)`

// EnsureSchema creates the catalog tables when they do not exist yet
func (r *pg) EnsureSchema(ctx context.Context) error {
	if _, err := store.Exec(ctx, r.q, createCardsSQL); err != nil {
		return perr.FromPostgres(err, "create cards table")
	}
	if _, err := store.Exec(ctx, r.q, createRunsSQL); err != nil {
		return perr.FromPostgres(err, "create sync_runs table")
	}
	return nil
}

// Upsert writes one aggregated entry, inserting a fresh row or refreshing the
// catalog columns of an existing one. The deck column is never touched on
// conflict so assignments survive resyncs
func (r *pg) Upsert(ctx context.Context, e catalog.Entry) error {
	const q = `
		INSERT INTO cards (name, set_name, rarity, colors, cmc, type_line, deck)
		VALUES ($1, $2, $3, $4, $5, $6, '')
		ON CONFLICT (name) DO UPDATE SET
			set_name  = EXCLUDED.set_name,
			rarity    = EXCLUDED.rarity,
			colors    = EXCLUDED.colors,
			cmc       = EXCLUDED.cmc,
			type_line = EXCLUDED.type_line`

	if _, err := store.Exec(ctx, r.q, q, e.Name, e.SetName, e.Rarity, e.Colors, e.CMC, e.TypeLine); err != nil {
		return perr.AttachFieldFromPg(perr.FromPostgresf(err, "upsert card %q", e.Name))
	}
	return nil
}

func scanRow(row repokit.Row) (domain.Row, error) {
	var out domain.Row
	err := row.Scan(&out.Name, &out.SetName, &out.Rarity, &out.Colors, &out.CMC, &out.TypeLine, &out.Deck)
	return out, err
}

// Get fetches one card row by exact name
func (r *pg) Get(ctx context.Context, name string) (domain.Row, error) {
	const q = `
		SELECT name, set_name, rarity, colors, cmc, type_line, deck
		FROM cards
		WHERE name = $1`

	row, err := store.One(ctx, r.q, scanRow, q, name)
	if err != nil {
		if perr.IsCode(err, perr.ErrorCodeNotFound) {
			return domain.Row{}, perr.NotFoundf("card %q not found", name)
		}
		return domain.Row{}, perr.FromPostgres(err, "get card")
	}
	return row, nil
}

// List pages through cards ordered by name, optionally filtered by a
// case-insensitive name prefix
func (r *pg) List(ctx context.Context, prefix string, limit, offset int) ([]domain.Row, error) {
	const q = `
		SELECT name, set_name, rarity, colors, cmc, type_line, deck
		FROM cards
		WHERE ($1 = '' OR name ILIKE $1 || '%')
		ORDER BY name
		LIMIT $2 OFFSET $3`

	rows, err := store.Many(ctx, r.q, scanRow, q, prefix, limit, offset)
	if err != nil {
		return nil, perr.FromPostgres(err, "list cards")
	}
	return rows, nil
}

// Count returns the number of cards matching the same filter List uses
func (r *pg) Count(ctx context.Context, prefix string) (int, error) {
	const q = `SELECT COUNT(*) FROM cards WHERE ($1 = '' OR name ILIKE $1 || '%')`

	n, err := store.Scalar[int64](ctx, r.q, q, prefix)
	if err != nil {
		return 0, perr.FromPostgres(err, "count cards")
	}
	return int(n), nil
}

// InsertRun records the start of a sync run
func (r *pg) InsertRun(ctx context.Context, run domain.Run) error {
	const q = `
		INSERT INTO sync_runs (id, data_type, snapshot_file, prints, cards, status, error, started_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := store.Exec(ctx, r.q, q,
		run.ID, run.DataType, run.SnapshotFile, run.Prints, run.Cards, run.Status, run.Error, run.StartedAt)
	if err != nil {
		return perr.FromPostgres(err, "insert sync run")
	}
	return nil
}

// FinishRun closes out a run with its final status and counts
func (r *pg) FinishRun(ctx context.Context, id, status, errMsg string, prints, cards int) error {
	const q = `
		UPDATE sync_runs
		SET status = $2, error = $3, prints = $4, cards = $5, finished_at = NOW()
		WHERE id = $1`

	tag, err := store.Exec(ctx, r.q, q, id, status, errMsg, prints, cards)
	if err != nil {
		return perr.FromPostgres(err, "finish sync run")
	}
	if tag.RowsAffected() == 0 {
		return perr.NotFoundf("sync run %q not found", id)
	}
	return nil
}

// Runs returns the most recent sync runs, newest first
func (r *pg) Runs(ctx context.Context, limit int) ([]domain.Run, error) {
	const q = `
		SELECT id, data_type, snapshot_file, prints, cards, status, error, started_at, finished_at
		FROM sync_runs
		ORDER BY started_at DESC
		LIMIT $1`

	runs, err := store.Many(ctx, r.q, func(row repokit.Row) (domain.Run, error) {
		var out domain.Run
		err := row.Scan(&out.ID, &out.DataType, &out.SnapshotFile, &out.Prints, &out.Cards,
			&out.Status, &out.Error, &out.StartedAt, &out.FinishedAt)
		return out, err
	}, q, limit)
	if err != nil {
		return nil, perr.FromPostgres(err, "list sync runs")
	}
	return runs, nil
}
