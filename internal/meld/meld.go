// Package meld decodes the packed meld code carried by call records.
//
// Layout of the code, low bits first:
//
//	bits 0-1  offset of the seat the tile came from (0 = the caller)
//	bit  2    run
//	bits 3-4  triplet (bit 3) or added triplet (bit 4)
//	bit  5    bonus-tile swap
//
// Each variant packs its tiles into the remaining bits differently.
package meld

import (
	"errors"
	"fmt"

	"mjlog/internal/tile"
)

// MaxCode is the largest packed meld code.
const MaxCode = 0xFFFF

var ErrMalformed = errors.New("malformed meld")

type Kind string

const (
	KindRun          Kind = "run"
	KindTriplet      Kind = "triplet"
	KindAddedTriplet Kind = "added-triplet"
	KindQuad         Kind = "quad"
	KindBonusSwap    Kind = "bonus-swap"
)

// Meld is one decoded call. From is the offset (1-3) of the seat the tile
// was taken from, relative to Seat; it is nil for a closed quad and for a
// bonus swap. Called is the position of the taken tile for runs and
// triplets and the seat offset mod 4 for called quads.
type Meld struct {
	Kind   Kind
	Code   uint32
	Seat   int
	Tiles  []tile.Tile
	From   *int
	Called *int
}

// Open reports whether the meld took a tile from another seat.
func (m Meld) Open() bool { return m.From != nil }

// FromSeat resolves From to an absolute seat.
func (m Meld) FromSeat() (int, bool) {
	if m.From == nil {
		return 0, false
	}
	return (m.Seat + *m.From) % 4, true
}

// copies lists, for the copy index left out of a triplet, the copy indices
// of the three tiles that form it.
var copies = [4][3]int{
	{1, 2, 3},
	{0, 2, 3},
	{0, 1, 3},
	{0, 1, 2},
}

// Decode unpacks code as called by seat.
func Decode(code uint32, seat int) (Meld, error) {
	if code > MaxCode {
		return Meld{}, fmt.Errorf("%w: code %d exceeds 16 bits", ErrMalformed, code)
	}
	if seat < 0 || seat > 3 {
		return Meld{}, fmt.Errorf("%w: seat %d", ErrMalformed, seat)
	}

	m := Meld{Code: code, Seat: seat}
	from := int(code & 0x3)

	var err error
	switch {
	case code&0x4 != 0:
		err = m.decodeRun(code, from)
	case code&0x18 != 0:
		err = m.decodeTriplet(code, from)
	case code&0x20 != 0:
		err = m.decodeBonusSwap(code)
	default:
		err = m.decodeQuad(code, from)
	}
	if err != nil {
		return Meld{}, err
	}
	return m, nil
}

func (m *Meld) decodeRun(code uint32, from int) error {
	m.Kind = KindRun
	c0 := int(code>>3) & 0x3
	c1 := int(code>>5) & 0x3
	c2 := int(code>>7) & 0x3

	baseAndCalled := int(code >> 10)
	called := baseAndCalled % 3
	base := baseAndCalled / 3
	if base >= 21 {
		return fmt.Errorf("%w: run base %d", ErrMalformed, base)
	}
	// 7 starting ranks per suit expand to the 9-rank kind space.
	base = (base/7)*9 + base%7

	tiles, err := buildTiles([][2]int{{base, c0}, {base + 1, c1}, {base + 2, c2}})
	if err != nil {
		return err
	}
	m.Tiles = tiles
	m.From = &from
	m.Called = &called
	return nil
}

func (m *Meld) decodeTriplet(code uint32, from int) error {
	extra := int(code>>5) & 0x3
	others := copies[extra]

	baseAndCalled := int(code >> 9)
	called := baseAndCalled % 3
	base := baseAndCalled / 3
	if base >= tile.Kinds {
		return fmt.Errorf("%w: triplet kind %d", ErrMalformed, base)
	}

	parts := [][2]int{{base, others[0]}, {base, others[1]}, {base, others[2]}}
	if code&0x8 != 0 {
		m.Kind = KindTriplet
	} else {
		m.Kind = KindAddedTriplet
		parts = append(parts, [2]int{base, extra})
	}

	tiles, err := buildTiles(parts)
	if err != nil {
		return err
	}
	m.Tiles = tiles
	m.From = &from
	m.Called = &called
	return nil
}

func (m *Meld) decodeBonusSwap(code uint32) error {
	m.Kind = KindBonusSwap
	t, err := tile.Decode(int(code >> 8))
	if err != nil {
		return fmt.Errorf("%w: %w", ErrMalformed, err)
	}
	m.Tiles = []tile.Tile{t}
	return nil
}

func (m *Meld) decodeQuad(code uint32, from int) error {
	m.Kind = KindQuad
	baseAndCalled := int(code >> 8)
	if from != 0 {
		called := baseAndCalled % 4
		m.From = &from
		m.Called = &called
	}
	base := baseAndCalled / 4
	if base >= tile.Kinds {
		return fmt.Errorf("%w: quad kind %d", ErrMalformed, base)
	}

	tiles, err := buildTiles([][2]int{{base, 0}, {base, 1}, {base, 2}, {base, 3}})
	if err != nil {
		return err
	}
	m.Tiles = tiles
	return nil
}

func buildTiles(parts [][2]int) ([]tile.Tile, error) {
	tiles := make([]tile.Tile, 0, len(parts))
	for _, p := range parts {
		t, err := tile.FromKind(p[0], p[1])
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
		}
		tiles = append(tiles, t)
	}
	return tiles, nil
}
