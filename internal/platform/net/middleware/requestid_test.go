package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	pnet "packrat/internal/platform/net"
)

func TestRequestID_GeneratesAndStamps(t *testing.T) {
	var seen string
	h := RequestID(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		seen = pnet.RequestID(r.Context())
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if seen == "" {
		t.Fatalf("handler saw no request id")
	}
	if got := rec.Header().Get("X-Request-ID"); got != seen {
		t.Fatalf("header id %q != ctx id %q", got, seen)
	}
}

func TestRequestID_HonorsInbound(t *testing.T) {
	var seen string
	h := RequestID(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		seen = pnet.RequestID(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "client-42")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if seen != "client-42" {
		t.Fatalf("inbound id not honored, got %q", seen)
	}
}
