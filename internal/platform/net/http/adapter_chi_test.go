package http

import (
	"io"
	stdhttp "net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
)

func TestAdaptChi_RoutesAndParam(t *testing.T) {
	t.Parallel()

	m := chi.NewRouter()
	r := AdaptChi(m)

	r.Get("/cards/{name}", func(w stdhttp.ResponseWriter, req *stdhttp.Request) {
		_, _ = io.WriteString(w, Param(req, "name"))
	})
	r.Route("/v1", func(sub Router) {
		sub.Post("/decks/{deck}", func(w stdhttp.ResponseWriter, req *stdhttp.Request) {
			w.WriteHeader(stdhttp.StatusCreated)
			_, _ = io.WriteString(w, Param(req, "deck"))
		})
	})

	srv := httptest.NewServer(r.Mux())
	t.Cleanup(srv.Close)

	resp, err := stdhttp.Get(srv.URL + "/cards/Bolt")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	if resp.StatusCode != stdhttp.StatusOK || string(body) != "Bolt" {
		t.Fatalf("get mismatch: %d %q", resp.StatusCode, body)
	}

	resp, err = stdhttp.Post(srv.URL+"/v1/decks/burn", "application/json", nil)
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	body, _ = io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	if resp.StatusCode != stdhttp.StatusCreated || string(body) != "burn" {
		t.Fatalf("post mismatch: %d %q", resp.StatusCode, body)
	}
}
