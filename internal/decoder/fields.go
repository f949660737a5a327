package decoder

import (
	"fmt"
	"strconv"
	"strings"

	"mjlog/internal/meld"
	"mjlog/internal/record"
	"mjlog/internal/tile"
)

func required(r record.Record, key string) (string, error) {
	v, ok := r.Get(key)
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrMissingField, key)
	}
	return v, nil
}

func parseInt(key, s string) (int, error) {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("%w: %s=%q", ErrMalformedField, key, s)
	}
	if v < 0 {
		return 0, fmt.Errorf("%w: %s=%d is negative", ErrMalformedField, key, v)
	}
	return v, nil
}

func intField(r record.Record, key string) (int, error) {
	s, err := required(r, key)
	if err != nil {
		return 0, err
	}
	return parseInt(key, s)
}

func seatField(r record.Record, key string) (int, error) {
	seat, err := intField(r, key)
	if err != nil {
		return 0, err
	}
	if seat > 3 {
		return 0, fmt.Errorf("%w: %s=%d", ErrUnknownSeat, key, seat)
	}
	return seat, nil
}

func splitList(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return strings.Split(s, ",")
}

// intList decodes a comma separated list of non-negative integers.
func intList(key, s string) ([]int, error) {
	parts := splitList(s)
	out := make([]int, 0, len(parts))
	for _, p := range parts {
		v, err := parseInt(key, p)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// signedList is intList for fields that may carry negative values.
func signedList(key, s string) ([]int, error) {
	parts := splitList(s)
	out := make([]int, 0, len(parts))
	for _, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, fmt.Errorf("%w: %s=%q", ErrMalformedField, key, s)
		}
		out = append(out, v)
	}
	return out, nil
}

func floatList(key, s string) ([]float64, error) {
	parts := splitList(s)
	out := make([]float64, 0, len(parts))
	for _, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %s=%q", ErrMalformedField, key, s)
		}
		out = append(out, v)
	}
	return out, nil
}

func tileList(key, s string) ([]tile.Tile, error) {
	ids, err := intList(key, s)
	if err != nil {
		return nil, err
	}
	tiles := make([]tile.Tile, len(ids))
	for i, id := range ids {
		t, err := tile.Decode(id)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", key, err)
		}
		tiles[i] = t
	}
	return tiles, nil
}

func requiredTiles(r record.Record, key string) ([]tile.Tile, error) {
	s, err := required(r, key)
	if err != nil {
		return nil, err
	}
	return tileList(key, s)
}

func fixedInts(r record.Record, key string, n int) ([]int, error) {
	s, err := required(r, key)
	if err != nil {
		return nil, err
	}
	vals, err := intList(key, s)
	if err != nil {
		return nil, err
	}
	if len(vals) != n {
		return nil, fmt.Errorf("%w: %s has %d values, want %d", ErrShapeMismatch, key, len(vals), n)
	}
	return vals, nil
}

// meldCode narrows a parsed meld code, rejecting values that do not fit the
// 16 bit layout before they can wrap.
func meldCode(key string, v int) (uint32, error) {
	if v > meld.MaxCode {
		return 0, fmt.Errorf("%w: %s=%d exceeds 16 bits", meld.ErrMalformed, key, v)
	}
	return uint32(v), nil
}

func lookup(table []string, idx int, kind error) (string, error) {
	if idx < 0 || idx >= len(table) {
		return "", fmt.Errorf("%w: %d", kind, idx)
	}
	return table[idx], nil
}
