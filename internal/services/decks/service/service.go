// Package service implements deck assignment and set recommendations
package service

import (
	"context"

	"packrat/internal/modkit/repokit"
	perr "packrat/internal/platform/errors"
	"packrat/internal/services/decks/domain"
)

// Service serves deck assignment and purchase recommendations
type Service struct {
	db   repokit.TxRunner
	repo repokit.Binder[domain.Repo]
}

// New wires a Service from its dependencies
func New(db repokit.TxRunner, repo repokit.Binder[domain.Repo]) *Service {
	return &Service{db: db, repo: repo}
}

// Assign records which deck a card belongs to. The column lives outside the
// sync pipeline and survives catalog resyncs
func (s *Service) Assign(ctx context.Context, name, deck string) error {
	if name == "" {
		return perr.WithField(perr.InvalidArgf("card name is required"), "name")
	}
	return s.db.Tx(ctx, func(q repokit.Queryer) error {
		return s.repo.Bind(q).Assign(ctx, name, deck)
	})
}

// RecommendSets ranks sets by assigned-card coverage, best buys first
func (s *Service) RecommendSets(ctx context.Context, limit int) ([]domain.SetRecommendation, error) {
	if limit <= 0 || limit > 100 {
		limit = 10
	}
	return s.repo.Bind(s.db).RecommendSets(ctx, limit)
}

// Decks lists the deck names currently in use
func (s *Service) Decks(ctx context.Context) ([]string, error) {
	return s.repo.Bind(s.db).Decks(ctx)
}
