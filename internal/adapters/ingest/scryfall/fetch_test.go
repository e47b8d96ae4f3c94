package scryfall

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	perr "packrat/internal/platform/errors"
)

// newTestFetcher points an HTTPFetcher at a fake bulk-data api that serves
// index from /bulk-data and payload from /files/default.json
func newTestFetcher(t *testing.T, index string, payload string, indexStatus, fileStatus int) *HTTPFetcher {
	t.Helper()

	mux := http.NewServeMux()
	var srv *httptest.Server
	mux.HandleFunc("/bulk-data", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(indexStatus)
		body := index
		if body == "" {
			body = `{"data":[{"type":"default_cards","download_uri":"` + srv.URL + `/files/default.json"}]}`
		}
		_, _ = io.WriteString(w, body)
	})
	mux.HandleFunc("/files/default.json", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(fileStatus)
		_, _ = io.WriteString(w, payload)
	})
	srv = httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	f := NewHTTPFetcherWithTimeout(5 * time.Second)
	f.BaseURL = srv.URL + "/bulk-data"
	return f
}

func TestResolve_PicksMatchingDescriptor(t *testing.T) {
	index := `{"data":[
		{"type":"oracle_cards","download_uri":"https://example.invalid/oracle.json"},
		{"type":"default_cards","download_uri":"https://example.invalid/default.json"}
	]}`
	f := newTestFetcher(t, index, "", http.StatusOK, http.StatusOK)

	desc, err := f.Resolve(context.Background(), DefaultCards)
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if desc.DownloadURI != "https://example.invalid/default.json" {
		t.Fatalf("wrong descriptor picked: %+v", desc)
	}
}

func TestResolve_IndexFailureIsFetchError(t *testing.T) {
	f := newTestFetcher(t, `{}`, "", http.StatusServiceUnavailable, http.StatusOK)

	_, err := f.Resolve(context.Background(), DefaultCards)
	if !perr.IsCode(err, perr.ErrorCodeFetch) {
		t.Fatalf("expected fetch error code, got %v (%v)", perr.CodeOf(err), err)
	}
}

func TestResolve_UnknownTypeIsNotFound(t *testing.T) {
	index := `{"data":[{"type":"rulings","download_uri":"https://example.invalid/rulings.json"}]}`
	f := newTestFetcher(t, index, "", http.StatusOK, http.StatusOK)

	_, err := f.Resolve(context.Background(), AllCards)
	if !perr.IsCode(err, perr.ErrorCodeNotFound) {
		t.Fatalf("expected not found code, got %v (%v)", perr.CodeOf(err), err)
	}
}

func TestDownload_FileFailureIsDownloadError(t *testing.T) {
	f := newTestFetcher(t, "", "", http.StatusOK, http.StatusForbidden)

	_, err := f.Download(context.Background(), DefaultCards)
	if !perr.IsCode(err, perr.ErrorCodeDownload) {
		t.Fatalf("expected download error code, got %v (%v)", perr.CodeOf(err), err)
	}
}

func TestSnapshot_WritesDatedFile(t *testing.T) {
	payload := `[{"name":"Bolt","set_name":"A","rarity":"common","colors":[["R"]],"cmc":1.0,"type_line":"Instant"}]`
	f := newTestFetcher(t, "", payload, http.StatusOK, http.StatusOK)

	dir := t.TempDir()
	path, err := f.Snapshot(context.Background(), DefaultCards, dir)
	if err != nil {
		t.Fatalf("Snapshot returned error: %v", err)
	}

	wantName := SnapshotName(DefaultCards, time.Now().UTC())
	if filepath.Base(path) != wantName {
		t.Fatalf("snapshot name = %q, want %q", filepath.Base(path), wantName)
	}
	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading snapshot: %v", err)
	}
	if string(got) != payload {
		t.Fatalf("snapshot content mismatch: %q", got)
	}
	// no stray .part file left behind
	if _, err := os.Stat(path + ".part"); !os.IsNotExist(err) {
		t.Fatalf("temp file still present: %v", err)
	}
}

func TestParseBulkDataType(t *testing.T) {
	for _, ok := range []string{"oracle_cards", "unique_artwork", "default_cards", "all_cards", "rulings"} {
		if _, err := ParseBulkDataType(ok); err != nil {
			t.Fatalf("ParseBulkDataType(%q) returned error: %v", ok, err)
		}
	}
	if _, err := ParseBulkDataType("holofoil_cards"); err == nil {
		t.Fatal("expected error for unknown type")
	}
}
