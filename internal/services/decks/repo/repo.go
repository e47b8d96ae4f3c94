// Package repo contains the Postgres persistence for the decks service
package repo

import (
	"context"

	"packrat/internal/modkit/repokit"
	perr "packrat/internal/platform/errors"
	"packrat/internal/platform/store"
	"packrat/internal/services/decks/domain"
)

type pg struct{ q repokit.Queryer }

// NewPG returns a binder that attaches the decks repo to a queryer
func NewPG() repokit.Binder[domain.Repo] {
	return repokit.BindFunc[domain.Repo](func(q repokit.Queryer) domain.Repo {
		return &pg{q: q}
	})
}

// Assign sets the deck column of one card; clearing uses an empty deck
func (r *pg) Assign(ctx context.Context, name, deck string) error {
	const q = `UPDATE cards SET deck = $2 WHERE name = $1`

	tag, err := store.Exec(ctx, r.q, q, name, deck)
	if err != nil {
		return perr.FromPostgresf(err, "assign card %q to deck", name)
	}
	if tag.RowsAffected() == 0 {
		return perr.NotFoundf("card %q not found", name)
	}
	return nil
}

// RecommendSets ranks sets by how many deck-assigned cards they contain. A
// card printed in several sets counts toward each of them, since any one
// printing would do
func (r *pg) RecommendSets(ctx context.Context, limit int) ([]domain.SetRecommendation, error) {
	const q = `
		SELECT s.set_name, COUNT(*) AS assigned
		FROM cards c, LATERAL unnest(string_to_array(c.set_name, ', ')) AS s(set_name)
		WHERE c.deck <> '' AND s.set_name <> ''
		GROUP BY s.set_name
		ORDER BY assigned DESC, s.set_name
		LIMIT $1`

	recs, err := store.Many(ctx, r.q, func(row repokit.Row) (domain.SetRecommendation, error) {
		var out domain.SetRecommendation
		err := row.Scan(&out.SetName, &out.AssignedCards)
		return out, err
	}, q, limit)
	if err != nil {
		return nil, perr.FromPostgres(err, "recommend sets")
	}
	return recs, nil
}

// Decks lists the distinct deck names in use
func (r *pg) Decks(ctx context.Context) ([]string, error) {
	const q = `SELECT DISTINCT deck FROM cards WHERE deck <> '' ORDER BY deck`

	decks, err := store.Many(ctx, r.q, func(row repokit.Row) (string, error) {
		var d string
		err := row.Scan(&d)
		return d, err
	}, q)
	if err != nil {
		return nil, perr.FromPostgres(err, "list decks")
	}
	return decks, nil
}
