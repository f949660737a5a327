package meld

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"mjlog/internal/tile"
)

func intp(v int) *int { return &v }

func TestDecode(t *testing.T) {
	tests := []struct {
		name string
		code uint32
		seat int
		want Meld
	}{
		{
			name: "run from the first kind",
			code: 295,
			seat: 1,
			want: Meld{Kind: KindRun, Code: 295, Seat: 1, Tiles: []tile.Tile{0, 5, 10}, From: intp(3), Called: intp(0)},
		},
		{
			name: "run ending on the last rank of a suit",
			code: 19463,
			seat: 0,
			want: Meld{Kind: KindRun, Code: 19463, Seat: 0, Tiles: []tile.Tile{24, 28, 32}, From: intp(3), Called: intp(1)},
		},
		{
			name: "run starting the second suit",
			code: 23559,
			seat: 2,
			want: Meld{Kind: KindRun, Code: 23559, Seat: 2, Tiles: []tile.Tile{36, 40, 44}, From: intp(3), Called: intp(2)},
		},
		{
			name: "run ending the third suit",
			code: 61445,
			seat: 3,
			want: Meld{Kind: KindRun, Code: 61445, Seat: 3, Tiles: []tile.Tile{96, 100, 104}, From: intp(1), Called: intp(0)},
		},
		{
			name: "triplet",
			code: 48202,
			seat: 0,
			want: Meld{Kind: KindTriplet, Code: 48202, Seat: 0, Tiles: []tile.Tile{124, 125, 127}, From: intp(2), Called: intp(1)},
		},
		{
			name: "added triplet",
			code: 48210,
			seat: 0,
			want: Meld{Kind: KindAddedTriplet, Code: 48210, Seat: 0, Tiles: []tile.Tile{124, 125, 127, 126}, From: intp(2), Called: intp(1)},
		},
		{
			name: "closed quad",
			code: 5120,
			seat: 2,
			want: Meld{Kind: KindQuad, Code: 5120, Seat: 2, Tiles: []tile.Tile{20, 21, 22, 23}},
		},
		{
			name: "called quad",
			code: 5889,
			seat: 2,
			want: Meld{Kind: KindQuad, Code: 5889, Seat: 2, Tiles: []tile.Tile{20, 21, 22, 23}, From: intp(1), Called: intp(3)},
		},
		{
			name: "bonus swap",
			code: 30752,
			seat: 1,
			want: Meld{Kind: KindBonusSwap, Code: 30752, Seat: 1, Tiles: []tile.Tile{120}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Decode(tt.code, tt.seat)
			if err != nil {
				t.Fatalf("decode: %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Fatalf("meld mismatch (-want +got):\n%s", diff)
			}
			again, err := Decode(tt.code, tt.seat)
			if err != nil {
				t.Fatalf("decode again: %v", err)
			}
			if diff := cmp.Diff(got, again); diff != "" {
				t.Fatalf("decode not deterministic:\n%s", diff)
			}
		})
	}
}

func TestDecodeRunsStayInSuit(t *testing.T) {
	for base := 0; base < 21; base++ {
		code := uint32(base*3)<<10 | 0x4 | 0x3
		m, err := Decode(code, 0)
		if err != nil {
			t.Fatalf("base %d: %v", base, err)
		}
		suit := m.Tiles[0].Kind() / 9
		for i, tl := range m.Tiles {
			if tl.Kind()/9 != suit {
				t.Fatalf("base %d: tile %d crosses suit (%v)", base, i, m.Tiles)
			}
			if tl.Kind() != m.Tiles[0].Kind()+i {
				t.Fatalf("base %d: tiles not consecutive (%v)", base, m.Tiles)
			}
		}
	}
}

func TestDecodeTripletCopies(t *testing.T) {
	for extra := 0; extra < 4; extra++ {
		baseAndCalled := 9 * 3
		triplet := uint32(baseAndCalled)<<9 | uint32(extra)<<5 | 0x8 | 0x1
		m, err := Decode(triplet, 0)
		if err != nil {
			t.Fatalf("triplet: %v", err)
		}
		if len(m.Tiles) != 3 {
			t.Fatalf("expected 3 tiles, got %d", len(m.Tiles))
		}
		seen := map[int]bool{}
		for _, tl := range m.Tiles {
			if tl.Kind() != 9 {
				t.Fatalf("expected kind 9, got %d", tl.Kind())
			}
			if tl.Copy() == extra || seen[tl.Copy()] {
				t.Fatalf("unexpected copy set %v for extra %d", m.Tiles, extra)
			}
			seen[tl.Copy()] = true
		}

		added := uint32(baseAndCalled)<<9 | uint32(extra)<<5 | 0x10 | 0x1
		m, err = Decode(added, 0)
		if err != nil {
			t.Fatalf("added triplet: %v", err)
		}
		if len(m.Tiles) != 4 {
			t.Fatalf("expected 4 tiles, got %d", len(m.Tiles))
		}
		if m.Tiles[3].Copy() != extra {
			t.Fatalf("expected added copy %d, got %d", extra, m.Tiles[3].Copy())
		}
	}
}

func TestDecodeQuadFrom(t *testing.T) {
	closed, err := Decode(5120, 3)
	if err != nil {
		t.Fatalf("closed quad: %v", err)
	}
	if closed.Open() || closed.Called != nil {
		t.Fatalf("expected closed quad without from, got %+v", closed)
	}
	if _, ok := closed.FromSeat(); ok {
		t.Fatal("expected no from seat")
	}

	for off := 1; off < 4; off++ {
		m, err := Decode(uint32(5*4+off)<<8|uint32(off), 3)
		if err != nil {
			t.Fatalf("open quad: %v", err)
		}
		if m.Called == nil || *m.Called < 0 || *m.Called > 3 {
			t.Fatalf("expected called in [0,3], got %v", m.Called)
		}
		seat, ok := m.FromSeat()
		if !ok || seat != (3+off)%4 {
			t.Fatalf("expected from seat %d, got %d (%v)", (3+off)%4, seat, ok)
		}
	}
}

func TestDecodeMalformed(t *testing.T) {
	tests := []struct {
		name string
		code uint32
		seat int
	}{
		{"run base past last suit", 64517, 0},
		{"triplet kind past honors", 52233, 0},
		{"quad kind past honors", 34816, 0},
		{"bonus tile out of range", 136<<8 | 0x20, 0},
		{"code wider than 16 bits", 1 << 16, 0},
		{"seat out of range", 295, 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Decode(tt.code, tt.seat); !errors.Is(err, ErrMalformed) {
				t.Fatalf("expected ErrMalformed, got %v", err)
			}
		})
	}
}
