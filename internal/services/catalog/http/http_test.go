package http

import (
	"context"
	"encoding/json"
	stdhttp "net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	perr "packrat/internal/platform/errors"
	phttp "packrat/internal/platform/net/http"
	"packrat/internal/services/catalog/domain"
)

type fakeQuery struct {
	rows []domain.Row
}

func (f *fakeQuery) Get(_ context.Context, name string) (domain.Row, error) {
	for _, r := range f.rows {
		if r.Name == name {
			return r, nil
		}
	}
	return domain.Row{}, perr.NotFoundf("card %q not found", name)
}

func (f *fakeQuery) List(_ context.Context, prefix string, limit, offset int) ([]domain.Row, int, error) {
	return f.rows, len(f.rows), nil
}

func (f *fakeQuery) Runs(context.Context, int) ([]domain.Run, error) {
	return []domain.Run{{ID: "run-1", Status: domain.RunStatusOK}}, nil
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	q := &fakeQuery{rows: []domain.Row{
		{Name: "Bolt", SetName: "A, B", Rarity: "common", Colors: "R", CMC: "1", TypeLine: "Instant"},
	}}
	m := chi.NewRouter()
	Mount(phttp.AdaptChi(m), q)

	srv := httptest.NewServer(m)
	t.Cleanup(srv.Close)
	return srv
}

func getEnvelope(t *testing.T, url string) (int, phttp.Envelope) {
	t.Helper()

	resp, err := stdhttp.Get(url)
	if err != nil {
		t.Fatalf("get %s: %v", url, err)
	}
	defer func() { _ = resp.Body.Close() }()

	var env phttp.Envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	return resp.StatusCode, env
}

func TestListCards_OK(t *testing.T) {
	srv := newTestServer(t)

	status, env := getEnvelope(t, srv.URL+"/cards?prefix=Bo&page=1&page_size=10")
	if status != stdhttp.StatusOK {
		t.Fatalf("status = %d", status)
	}
	if env.Page == nil || env.Page.Total != 1 || env.Page.PageSize != 10 {
		t.Fatalf("page block mismatch: %+v", env.Page)
	}
}

func TestListCards_BadPageSize(t *testing.T) {
	srv := newTestServer(t)

	status, env := getEnvelope(t, srv.URL+"/cards?page_size=9999")
	if status != stdhttp.StatusBadRequest {
		t.Fatalf("status = %d, want 400", status)
	}
	if env.Error == "" {
		t.Fatalf("expected error message: %+v", env)
	}
}

func TestGetCard_FoundAndMissing(t *testing.T) {
	srv := newTestServer(t)

	status, env := getEnvelope(t, srv.URL+"/cards/Bolt")
	if status != stdhttp.StatusOK {
		t.Fatalf("status = %d", status)
	}
	data, _ := json.Marshal(env.Data)
	var row domain.Row
	if err := json.Unmarshal(data, &row); err != nil {
		t.Fatalf("decode row: %v", err)
	}
	if row.Name != "Bolt" || row.SetName != "A, B" {
		t.Fatalf("row mismatch: %+v", row)
	}

	status, _ = getEnvelope(t, srv.URL+"/cards/Missing")
	if status != stdhttp.StatusNotFound {
		t.Fatalf("status = %d, want 404", status)
	}
}

func TestListRuns_OK(t *testing.T) {
	srv := newTestServer(t)

	status, _ := getEnvelope(t, srv.URL+"/runs")
	if status != stdhttp.StatusOK {
		t.Fatalf("status = %d", status)
	}
}
