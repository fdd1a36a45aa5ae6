package server

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"bytesize/internal/config"
	"bytesize/internal/httpapi"
	"bytesize/internal/version"
	"bytesize/pkg/bytesize"
)

func newTestHandler(t *testing.T, limit bytesize.ByteSize) http.Handler {
	t.Helper()
	cfg := config.Default()
	cfg.Server.MaxBodySize = limit
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewHandler(&cfg, NewEngine(httpapi.NewHandler(&cfg, logger)))
}

func TestServerHeader(t *testing.T) {
	version.Override("v9.9.9")
	t.Cleanup(func() { version.Override("dev") })

	rec := httptest.NewRecorder()
	newTestHandler(t, bytesize.MiB).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if got := rec.Header().Get("Server"); got != "bytesize/v9.9.9" {
		t.Fatalf("Server header = %q", got)
	}
}

func TestBodyLimit(t *testing.T) {
	h := newTestHandler(t, 16*bytesize.B)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/parse", strings.NewReader("1 KiB\n2 KiB\n")))
	if rec.Code != http.StatusOK {
		t.Fatalf("small body: status = %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	body := strings.Repeat("1 KiB\n", 10)
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/parse", strings.NewReader(body)))
	if rec.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("large body: status = %d, want 413", rec.Code)
	}
}

func TestMaxBodySizeClamps(t *testing.T) {
	cfg := config.Default()
	cfg.Server.MaxBodySize = bytesize.ByteSize(1<<64 - 1)
	if got := maxBodySize(&cfg); got != 1<<63-1 {
		t.Fatalf("maxBodySize = %d", got)
	}
}
