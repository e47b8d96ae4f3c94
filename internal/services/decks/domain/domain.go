// Package domain defines the types and interfaces for the decks service
package domain

import "context"

// SetRecommendation says how many assigned cards one set could supply
type SetRecommendation struct {
	SetName       string `json:"set_name"`
	AssignedCards int64  `json:"assigned_cards"`
}

// Port is the deck-facing surface
type Port interface {
	Assign(ctx context.Context, name, deck string) error
	RecommendSets(ctx context.Context, limit int) ([]SetRecommendation, error)
	Decks(ctx context.Context) ([]string, error)
}

// Repo is the persistence surface the service binds per queryer
type Repo interface {
	Assign(ctx context.Context, name, deck string) error
	RecommendSets(ctx context.Context, limit int) ([]SetRecommendation, error)
	Decks(ctx context.Context) ([]string, error)
}
