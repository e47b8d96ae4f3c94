package scryfall

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	perr "packrat/internal/platform/errors"
	"packrat/internal/platform/logger"
)

const (
	defaultBaseURL = "https://api.scryfall.com/bulk-data"

	// the bulk files run to hundreds of megabytes; both requests share one
	// generous timeout instead of retrying
	defaultHTTPTO = 5 * time.Minute
)

// Fetcher resolves and downloads one bulk snapshot
type Fetcher interface {
	Download(ctx context.Context, t BulkDataType) (io.ReadCloser, error)
}

// HTTPFetcher fetches directly from the Scryfall api
type HTTPFetcher struct {
	Client  *http.Client
	BaseURL string
}

// NewHTTPFetcher creates an HTTPFetcher with the default multi-minute timeout
func NewHTTPFetcher() *HTTPFetcher {
	return NewHTTPFetcherWithTimeout(defaultHTTPTO)
}

// NewHTTPFetcherWithTimeout creates an HTTPFetcher with an explicit timeout
func NewHTTPFetcherWithTimeout(d time.Duration) *HTTPFetcher {
	return &HTTPFetcher{Client: &http.Client{Timeout: d}, BaseURL: defaultBaseURL}
}

// Resolve fetches the bulk-data index and returns the descriptor whose type
// tag matches t
func (f *HTTPFetcher) Resolve(ctx context.Context, t BulkDataType) (BulkDescriptor, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.BaseURL, nil)
	if err != nil {
		return BulkDescriptor{}, err
	}
	resp, err := f.Client.Do(req)
	if err != nil {
		return BulkDescriptor{}, perr.Wrap(err, perr.ErrorCodeFetch, "failed to fetch bulk data index")
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return BulkDescriptor{}, perr.Fetchf("failed to fetch bulk data index: status %d", resp.StatusCode)
	}

	var idx BulkIndex
	if err := json.NewDecoder(resp.Body).Decode(&idx); err != nil {
		return BulkDescriptor{}, perr.Wrap(err, perr.ErrorCodeJSON, "bulk data index is not valid json")
	}
	for _, d := range idx.Data {
		if d.Type == t.String() {
			return d, nil
		}
	}
	return BulkDescriptor{}, perr.NotFoundf("data type %q not found in bulk data index", t)
}

// Download implements Fetcher: it resolves t and streams the bulk file
func (f *HTTPFetcher) Download(ctx context.Context, t BulkDataType) (io.ReadCloser, error) {
	desc, err := f.Resolve(ctx, t)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, desc.DownloadURI, nil)
	if err != nil {
		return nil, err
	}
	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeDownload, "failed to download bulk file")
	}
	if resp.StatusCode != http.StatusOK {
		if cerr := resp.Body.Close(); cerr != nil {
			return nil, perr.Downloadf("failed to download bulk file: status %d (body close err: %v)",
				resp.StatusCode, cerr)
		}
		return nil, perr.Downloadf("failed to download bulk file: status %d", resp.StatusCode)
	}
	return resp.Body, nil
}

// Snapshot downloads the bulk file for t into dir under its dated name and
// returns the path. The write is atomic: a .part file is renamed into place
// only after the full body landed on disk
func (f *HTTPFetcher) Snapshot(ctx context.Context, t BulkDataType, dir string) (string, error) {
	rc, err := f.Download(ctx, t)
	if err != nil {
		return "", err
	}
	defer func() { _ = rc.Close() }()

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	path := filepath.Join(dir, SnapshotName(t, time.Now().UTC()))
	tmp := path + ".part"
	defer func() { _ = os.Remove(tmp) }()

	out, err := os.Create(tmp)
	if err != nil {
		return "", err
	}
	n, werr := io.Copy(out, rc)
	cerr := out.Close()
	if werr != nil {
		return "", werr
	}
	if cerr != nil {
		return "", cerr
	}
	if err := os.Rename(tmp, path); err != nil {
		return "", err
	}

	logger.C(ctx).Info().
		Str("path", path).
		Int64("bytes", n).
		Str("data_type", t.String()).
		Msg("snapshot downloaded")
	return path, nil
}
