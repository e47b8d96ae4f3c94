package middleware

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestCaptureWriter_RecordsStatusAndBytes(t *testing.T) {
	rec := httptest.NewRecorder()
	cw := &captureWriter{ResponseWriter: rec, status: http.StatusOK}

	cw.WriteHeader(http.StatusTeapot)
	n, err := io.WriteString(cw, "short and stout")
	if err != nil {
		t.Fatalf("write: %v", err)
	}
	if cw.status != http.StatusTeapot {
		t.Fatalf("status = %d", cw.status)
	}
	if cw.bytes != n {
		t.Fatalf("bytes = %d, want %d", cw.bytes, n)
	}
}

func TestAccessLogZerolog_DoesNotAlterResponse(t *testing.T) {
	h := AccessLogZerolog(AccessLogOptions{Slow: time.Second})(
		http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusAccepted)
			_, _ = io.WriteString(w, "ok")
		}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/cards", nil))

	if rec.Code != http.StatusAccepted || rec.Body.String() != "ok" {
		t.Fatalf("response altered: %d %q", rec.Code, rec.Body.String())
	}
}
