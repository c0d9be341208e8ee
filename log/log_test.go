package log

import (
	"bytes"
	"os"
	"strings"
	"testing"
)

func TestLevelFiltersOutput(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	defer SetOutput(os.Stderr)
	defer SetLevel(InfoLevel)

	SetLevel(InfoLevel)
	Debug("hidden")
	Info("shown")
	if strings.Contains(buf.String(), "hidden") || !strings.Contains(buf.String(), "shown") {
		t.Fatalf("unexpected output at INFO: %q", buf.String())
	}

	buf.Reset()
	SetLevel(DebugLevel)
	Debugf("db.insert_response: id=%d", 3)
	if !strings.Contains(buf.String(), "id=3") {
		t.Fatalf("expected debug line, got %q", buf.String())
	}
}
