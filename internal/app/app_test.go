package app

import (
	"bytes"
	"io"
	"log/slog"
	"strings"
	"testing"

	"go.uber.org/fx"

	"bytesize/internal/config"
)

func TestOptionsGraph(t *testing.T) {
	cfg := config.Default()
	logger := NewLogger(io.Discard, slog.LevelInfo)
	if err := fx.ValidateApp(Options(&cfg, logger)); err != nil {
		t.Fatalf("ValidateApp: %v", err)
	}
}

func TestLogStartup(t *testing.T) {
	var buf bytes.Buffer
	cfg := config.Default()
	logStartup(NewLogger(&buf, slog.LevelInfo), &cfg)
	out := buf.String()
	for _, want := range []string{`msg="configuration loaded"`, "addr=127.0.0.1:8080", "display_format=iec", `max_body_size="1.0 MiB"`} {
		if !strings.Contains(out, want) {
			t.Fatalf("log output %q missing %q", out, want)
		}
	}
}
