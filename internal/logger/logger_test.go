package logger

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{" WARN ", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"", zerolog.InfoLevel},
		{"loud", zerolog.InfoLevel},
	}
	for _, tt := range tests {
		if got := ParseLevel(tt.in); got != tt.want {
			t.Fatalf("ParseLevel(%q): expected %v, got %v", tt.in, tt.want, got)
		}
	}
}

func TestNewConsole(t *testing.T) {
	var buf bytes.Buffer
	log := NewConsole(&buf, zerolog.WarnLevel)

	log.Info().Msg("hidden")
	log.Warn().Str("file", "a.mjlog").Msg("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("expected info to be filtered, got %q", out)
	}
	if !strings.Contains(out, "shown") || !strings.Contains(out, "a.mjlog") {
		t.Fatalf("expected warn line, got %q", out)
	}
}
