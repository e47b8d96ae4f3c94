// Package http mounts the catalog read endpoints
package http

import (
	stdhttp "net/http"

	phttp "packrat/internal/platform/net/http"
	"packrat/internal/platform/net/http/bind"
	"packrat/internal/services/catalog/domain"
)

type listQuery struct {
	Prefix   string `form:"prefix" validate:"omitempty,max=200"`
	Page     int    `form:"page" validate:"omitempty,min=1"`
	PageSize int    `form:"page_size" validate:"omitempty,min=1,max=500"`
}

// Mount attaches the catalog routes to r
func Mount(r phttp.Router, q domain.QueryPort) {
	r.Get("/cards", listCards(q))
	r.Get("/cards/{name}", getCard(q))
	r.Get("/runs", listRuns(q))
}

func listCards(q domain.QueryPort) stdhttp.HandlerFunc {
	return func(w stdhttp.ResponseWriter, r *stdhttp.Request) {
		var in listQuery
		if err := bind.Query(r, &in); err != nil {
			phttp.RespondError(w, r, err)
			return
		}
		if in.Page == 0 {
			in.Page = 1
		}
		if in.PageSize == 0 {
			in.PageSize = 50
		}

		rows, total, err := q.List(r.Context(), in.Prefix, in.PageSize, (in.Page-1)*in.PageSize)
		if err != nil {
			phttp.RespondError(w, r, err)
			return
		}
		phttp.RespondList(w, r, rows, total, in.Page, in.PageSize)
	}
}

func getCard(q domain.QueryPort) stdhttp.HandlerFunc {
	return func(w stdhttp.ResponseWriter, r *stdhttp.Request) {
		row, err := q.Get(r.Context(), phttp.Param(r, "name"))
		if err != nil {
			phttp.RespondError(w, r, err)
			return
		}
		phttp.RespondOK(w, r, row)
	}
}

type runsQuery struct {
	Limit int `form:"limit" validate:"omitempty,min=1,max=100"`
}

func listRuns(q domain.QueryPort) stdhttp.HandlerFunc {
	return func(w stdhttp.ResponseWriter, r *stdhttp.Request) {
		var in runsQuery
		if err := bind.Query(r, &in); err != nil {
			phttp.RespondError(w, r, err)
			return
		}
		runs, err := q.Runs(r.Context(), in.Limit)
		if err != nil {
			phttp.RespondError(w, r, err)
			return
		}
		phttp.RespondOK(w, r, runs)
	}
}
