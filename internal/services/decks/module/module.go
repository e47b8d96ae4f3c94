// Package module assembles the decks service
package module

import (
	"packrat/internal/modkit"
	"packrat/internal/services/decks/domain"
	"packrat/internal/services/decks/repo"
	"packrat/internal/services/decks/service"
)

// Module owns the decks service and exposes its port
type Module struct {
	svc *service.Service
}

// New wires the module
func New(d modkit.Deps) *Module {
	return &Module{svc: service.New(d.PG, repo.NewPG())}
}

// Port exposes the deck-facing surface
func (m *Module) Port() domain.Port { return m.svc }
