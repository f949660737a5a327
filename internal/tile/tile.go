// Package tile maps tile identifiers in [0,135] to their kind and copy.
//
// A tile id encodes its kind as id/4 (0-8, 9-17 and 18-26 are the three
// suits, 27-30 the winds, 31-33 the dragons) and which of the four physical
// copies it is as id%4.
package tile

import (
	"errors"
	"fmt"
	"strconv"
)

const (
	Count = 136
	Kinds = 34
	Max   = Count - 1
)

var ErrOutOfRange = errors.New("tile out of range")

var labels = [Kinds]string{
	"1s", "2s", "3s", "4s", "5s", "6s", "7s", "8s", "9s",
	"1p", "2p", "3p", "4p", "5p", "6p", "7p", "8p", "9p",
	"1m", "2m", "3m", "4m", "5m", "6m", "7m", "8m", "9m",
	"ew", "sw", "ww", "nw",
	"wd", "gd", "rd",
}

var glyphs = [Kinds]string{
	"🀐", "🀑", "🀒", "🀓", "🀔", "🀕", "🀖", "🀗", "🀘",
	"🀙", "🀚", "🀛", "🀜", "🀝", "🀞", "🀟", "🀠", "🀡",
	"🀇", "🀈", "🀉", "🀊", "🀋", "🀌", "🀍", "🀎", "🀏",
	"🀀", "🀁", "🀂", "🀃",
	"🀆", "🀅", "🀄",
}

type Tile int

// Decode validates a raw tile id.
func Decode(raw int) (Tile, error) {
	if raw < 0 || raw > Max {
		return 0, fmt.Errorf("%w: %d", ErrOutOfRange, raw)
	}
	return Tile(raw), nil
}

// Parse decodes a decimal tile id.
func Parse(s string) (Tile, error) {
	raw, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("parse tile %q: %w", s, err)
	}
	return Decode(raw)
}

// FromKind builds the tile for a kind and copy index.
func FromKind(kind, copyIndex int) (Tile, error) {
	if kind < 0 || kind >= Kinds || copyIndex < 0 || copyIndex > 3 {
		return 0, fmt.Errorf("%w: kind %d copy %d", ErrOutOfRange, kind, copyIndex)
	}
	return Tile(kind*4 + copyIndex), nil
}

func (t Tile) ID() int { return int(t) }

func (t Tile) Kind() int { return int(t) / 4 }

func (t Tile) Copy() int { return int(t) % 4 }

func (t Tile) Valid() bool { return t >= 0 && t <= Max }

// Suited reports whether the tile belongs to one of the three numbered suits.
func (t Tile) Suited() bool { return t.Kind() < 27 }

func (t Tile) Label() string {
	if !t.Valid() {
		return "??"
	}
	return labels[t.Kind()]
}

// Name returns the kind label and the copy digit.
func (t Tile) Name() (string, int) {
	return t.Label(), t.Copy()
}

func (t Tile) Glyph() string {
	if !t.Valid() {
		return "?"
	}
	return glyphs[t.Kind()]
}

func (t Tile) String() string {
	return t.Label() + strconv.Itoa(t.Copy())
}

// IDs flattens tiles back into their raw ids.
func IDs(tiles []Tile) []int {
	out := make([]int, len(tiles))
	for i, t := range tiles {
		out[i] = t.ID()
	}
	return out
}
