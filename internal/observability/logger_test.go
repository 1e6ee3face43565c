package observability

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestInitLevel(t *testing.T) {
	var buf bytes.Buffer
	Init(&buf, slog.LevelInfo)
	t.Cleanup(func() { Init(&bytes.Buffer{}, slog.LevelWarn) })

	Logger().Debug("hidden")
	WithFields("session", "alice").Info("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("debug line leaked: %q", out)
	}
	if !strings.Contains(out, "shown") || !strings.Contains(out, "session=alice") {
		t.Errorf("expected info line with field, got %q", out)
	}
}
