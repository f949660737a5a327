package tile

import (
	"errors"
	"testing"
)

func TestDecodeRoundTrip(t *testing.T) {
	for raw := 0; raw < Count; raw++ {
		got, err := Decode(raw)
		if err != nil {
			t.Fatalf("decode %d: %v", raw, err)
		}
		if got.ID() != raw {
			t.Fatalf("expected id %d, got %d", raw, got.ID())
		}
		again, err := FromKind(got.Kind(), got.Copy())
		if err != nil {
			t.Fatalf("from kind %d/%d: %v", got.Kind(), got.Copy(), err)
		}
		if again != got {
			t.Fatalf("expected %d, got %d", got, again)
		}
	}
}

func TestDecodeOutOfRange(t *testing.T) {
	for _, raw := range []int{-1, 136, 1000} {
		if _, err := Decode(raw); !errors.Is(err, ErrOutOfRange) {
			t.Fatalf("decode %d: expected ErrOutOfRange, got %v", raw, err)
		}
	}
}

func TestParse(t *testing.T) {
	got, err := Parse("53")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if got != 53 {
		t.Fatalf("expected 53, got %d", got)
	}
	if _, err := Parse("x1"); err == nil {
		t.Fatal("expected error for non-numeric tile")
	}
	if _, err := Parse("136"); !errors.Is(err, ErrOutOfRange) {
		t.Fatalf("expected ErrOutOfRange, got %v", err)
	}
}

func TestNames(t *testing.T) {
	tests := []struct {
		id    int
		label string
		copy  int
		str   string
	}{
		{0, "1s", 0, "1s0"},
		{35, "9s", 3, "9s3"},
		{36, "1p", 0, "1p0"},
		{74, "1m", 2, "1m2"},
		{108, "ew", 0, "ew0"},
		{123, "nw", 3, "nw3"},
		{135, "rd", 3, "rd3"},
	}
	for _, tt := range tests {
		tl := Tile(tt.id)
		label, c := tl.Name()
		if label != tt.label || c != tt.copy {
			t.Errorf("tile %d: expected (%s,%d), got (%s,%d)", tt.id, tt.label, tt.copy, label, c)
		}
		if tl.String() != tt.str {
			t.Errorf("tile %d: expected %s, got %s", tt.id, tt.str, tl.String())
		}
	}
}

func TestSuited(t *testing.T) {
	if !Tile(107).Suited() {
		t.Fatal("expected 9m to be suited")
	}
	if Tile(108).Suited() {
		t.Fatal("expected east wind to be an honor")
	}
	if Tile(0).Glyph() != "🀐" {
		t.Fatalf("unexpected glyph %s", Tile(0).Glyph())
	}
}
