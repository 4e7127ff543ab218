package logger

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestBuild_JSONLevelFilter(t *testing.T) {
	var buf bytes.Buffer
	l := build(&buf, "json", zerolog.WarnLevel)
	l.Info().Msg("hidden")
	l.Warn().Str("source", "csv").Msg("shown")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected one line, got %q", buf.String())
	}
	var rec map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &rec); err != nil {
		t.Fatal(err)
	}
	if rec["message"] != "shown" || rec["source"] != "csv" || rec["level"] != "warn" {
		t.Errorf("unexpected record %v", rec)
	}
}

func TestNew_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	l, closer, err := New(Config{Level: "debug", Format: "json", Output: path})
	if err != nil {
		t.Fatal(err)
	}
	l.Debug().Msg("hello")
	if err := closer.Close(); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "hello") {
		t.Errorf("log file missing message: %q", data)
	}
}

func TestNew_BadLevel(t *testing.T) {
	if _, _, err := New(Config{Level: "loud"}); err == nil {
		t.Error("expected an error for an unknown level")
	}
}
