package main

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"mjlog/internal/render"
)

var samplePath = filepath.Join("..", "..", "testdata", "sample.mjlog")

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := newRootCmd(&stdout, &stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), err
}

func TestDecodeYAML(t *testing.T) {
	out, err := execute(t, "decode", samplePath, samplePath)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !strings.Contains(out, "source: sample.mjlog") {
		t.Fatalf("expected source in output:\n%s", out)
	}
	if got := strings.Count(out, "\n---\n"); got != 1 {
		t.Fatalf("expected 1 document separator, got %d", got)
	}
}

func TestDecodeJSON(t *testing.T) {
	out, err := execute(t, "decode", "--format", "json", samplePath)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	var doc render.GameDoc
	if err := json.Unmarshal([]byte(out), &doc); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(doc.Rounds) != 2 {
		t.Fatalf("expected 2 rounds, got %d", len(doc.Rounds))
	}
}

func TestDecodeErrors(t *testing.T) {
	if _, err := execute(t, "decode", "--format", "toml", samplePath); err == nil {
		t.Fatal("expected unknown format error")
	}
	if _, err := execute(t, "decode", "missing.mjlog"); err == nil {
		t.Fatal("expected missing file error")
	}
	if _, err := execute(t, "decode"); err == nil {
		t.Fatal("expected argument error")
	}
}

func TestImport(t *testing.T) {
	t.Setenv("DB_PATH", filepath.Join(t.TempDir(), "games.db"))

	out, err := execute(t, "import", samplePath)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if !strings.Contains(out, "sample.mjlog\t2 rounds") {
		t.Fatalf("unexpected import output %q", out)
	}
}
