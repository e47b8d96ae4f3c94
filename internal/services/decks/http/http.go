// Package http mounts the decks endpoints
package http

import (
	"encoding/json"
	stdhttp "net/http"

	perr "packrat/internal/platform/errors"
	phttp "packrat/internal/platform/net/http"
	"packrat/internal/platform/net/http/bind"
	"packrat/internal/services/decks/domain"
)

// Mount attaches the decks routes to r
func Mount(r phttp.Router, p domain.Port) {
	r.Post("/cards/{name}/deck", assign(p))
	r.Get("/decks", listDecks(p))
	r.Get("/recommendations", recommend(p))
}

type assignBody struct {
	Deck string `json:"deck"`
}

func assign(p domain.Port) stdhttp.HandlerFunc {
	return func(w stdhttp.ResponseWriter, r *stdhttp.Request) {
		var body assignBody
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			phttp.RespondError(w, r, perr.JSONErrf("request body is not valid json"))
			return
		}
		name := phttp.Param(r, "name")
		if err := p.Assign(r.Context(), name, body.Deck); err != nil {
			phttp.RespondError(w, r, err)
			return
		}
		phttp.RespondOK(w, r, map[string]string{"name": name, "deck": body.Deck})
	}
}

func listDecks(p domain.Port) stdhttp.HandlerFunc {
	return func(w stdhttp.ResponseWriter, r *stdhttp.Request) {
		decks, err := p.Decks(r.Context())
		if err != nil {
			phttp.RespondError(w, r, err)
			return
		}
		phttp.RespondOK(w, r, decks)
	}
}

type recommendQuery struct {
	Limit int `form:"limit" validate:"omitempty,min=1,max=100"`
}

func recommend(p domain.Port) stdhttp.HandlerFunc {
	return func(w stdhttp.ResponseWriter, r *stdhttp.Request) {
		var in recommendQuery
		if err := bind.Query(r, &in); err != nil {
			phttp.RespondError(w, r, err)
			return
		}
		recs, err := p.RecommendSets(r.Context(), in.Limit)
		if err != nil {
			phttp.RespondError(w, r, err)
			return
		}
		phttp.RespondOK(w, r, recs)
	}
}
