package repository

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"mjlog/internal/db"
	"mjlog/internal/domain"
	"mjlog/internal/meld"
	"mjlog/internal/tile"
)

// Lists are stored as comma separated text. An empty column reads back as nil.

func joinInts(vals []int) string {
	parts := make([]string, len(vals))
	for i, v := range vals {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, ",")
}

func splitInts(s string) ([]int, error) {
	if s == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	out := make([]int, len(parts))
	for i, p := range parts {
		v, err := strconv.Atoi(p)
		if err != nil {
			return nil, fmt.Errorf("invalid list value %q: %w", p, err)
		}
		out[i] = v
	}
	return out, nil
}

func joinTiles(tiles []tile.Tile) string {
	return joinInts(tile.IDs(tiles))
}

func splitTiles(s string) ([]tile.Tile, error) {
	ids, err := splitInts(s)
	if err != nil || ids == nil {
		return nil, err
	}
	tiles := make([]tile.Tile, len(ids))
	for i, id := range ids {
		if tiles[i], err = tile.Decode(id); err != nil {
			return nil, err
		}
	}
	return tiles, nil
}

func ptr64(v int) *int64 {
	n := int64(v)
	return &n
}

func decodeMeld(code int64, seat int) (meld.Meld, error) {
	if code < 0 || code > meld.MaxCode {
		return meld.Meld{}, fmt.Errorf("%w: stored code %d", meld.ErrMalformed, code)
	}
	return meld.Decode(uint32(code), seat)
}

func eventParams(ev domain.Event) db.InsertEventParams {
	params := db.InsertEventParams{Kind: string(ev.Kind())}
	switch e := ev.(type) {
	case domain.Dora:
		params.Tile = ptr64(e.Tile.ID())
	case domain.Draw:
		params.Seat = ptr64(e.Seat)
		params.Tile = ptr64(e.Tile.ID())
	case domain.Discard:
		params.Seat = ptr64(e.Seat)
		params.Tile = ptr64(e.Tile.ID())
		params.Connected = e.Connected
	case domain.Call:
		params.Seat = ptr64(e.Seat)
		params.MeldCode = ptr64(int(e.Meld.Code))
	case domain.Riichi:
		params.Seat = ptr64(e.Seat)
		params.Accepted = e.Accepted
	}
	return params
}

func eventFromRow(row db.Event) (domain.Event, error) {
	seat := func() (int, error) {
		if row.Seat == nil {
			return 0, fmt.Errorf("%s event without seat", row.Kind)
		}
		return int(*row.Seat), nil
	}
	tileOf := func() (tile.Tile, error) {
		if row.Tile == nil {
			return 0, fmt.Errorf("%s event without tile", row.Kind)
		}
		return tile.Decode(int(*row.Tile))
	}

	switch domain.EventKind(row.Kind) {
	case domain.EventDora:
		t, err := tileOf()
		if err != nil {
			return nil, err
		}
		return domain.Dora{Tile: t}, nil
	case domain.EventDraw, domain.EventDiscard:
		s, err := seat()
		if err != nil {
			return nil, err
		}
		t, err := tileOf()
		if err != nil {
			return nil, err
		}
		if row.Kind == string(domain.EventDraw) {
			return domain.Draw{Seat: s, Tile: t}, nil
		}
		return domain.Discard{Seat: s, Tile: t, Connected: row.Connected}, nil
	case domain.EventCall:
		s, err := seat()
		if err != nil {
			return nil, err
		}
		if row.MeldCode == nil {
			return nil, fmt.Errorf("call event without meld code")
		}
		m, err := decodeMeld(*row.MeldCode, s)
		if err != nil {
			return nil, err
		}
		return domain.Call{Seat: s, Meld: m}, nil
	case domain.EventRiichi:
		s, err := seat()
		if err != nil {
			return nil, err
		}
		return domain.Riichi{Seat: s, Accepted: row.Accepted}, nil
	}
	return nil, fmt.Errorf("unknown event kind %q", row.Kind)
}

func outcomeParams(o domain.Outcome) (db.InsertOutcomeParams, error) {
	codes := make([]int, len(o.Melds))
	for i, m := range o.Melds {
		codes[i] = int(m.Code)
	}

	params := db.InsertOutcomeParams{
		Kind:      string(o.Kind),
		Seat:      int64(o.Seat),
		Hand:      joinTiles(o.Hand),
		Fu:        int64(o.Fu),
		Points:    int64(o.Points),
		LimitName: o.Limit,
		Dora:      joinTiles(o.Dora),
		UraDora:   joinTiles(o.UraDora),
		Waits:     joinTiles(o.Waits),
		MeldCodes: joinInts(codes),
		Closed:    o.Closed,
	}
	if o.From != nil {
		params.FromSeat = ptr64(*o.From)
	}

	// yaku and yakuman are exclusive; an empty column means the list was absent
	if o.Yaku != nil {
		raw, err := json.Marshal(o.Yaku)
		if err != nil {
			return params, fmt.Errorf("failed to encode yaku: %w", err)
		}
		params.Yaku = string(raw)
	}
	if o.Yakuman != nil {
		raw, err := json.Marshal(o.Yakuman)
		if err != nil {
			return params, fmt.Errorf("failed to encode yakuman: %w", err)
		}
		params.Yakuman = string(raw)
	}
	return params, nil
}

func outcomeFromRow(row db.Outcome) (domain.Outcome, error) {
	o := domain.Outcome{
		Kind:   domain.WinKind(row.Kind),
		Seat:   int(row.Seat),
		Fu:     int(row.Fu),
		Points: int(row.Points),
		Limit:  row.LimitName,
		Closed: row.Closed,
	}
	if row.FromSeat != nil {
		from := int(*row.FromSeat)
		o.From = &from
	}

	var err error
	if o.Hand, err = splitTiles(row.Hand); err != nil {
		return o, fmt.Errorf("hand: %w", err)
	}
	if o.Dora, err = splitTiles(row.Dora); err != nil {
		return o, fmt.Errorf("dora: %w", err)
	}
	if o.UraDora, err = splitTiles(row.UraDora); err != nil {
		return o, fmt.Errorf("ura dora: %w", err)
	}
	if o.Waits, err = splitTiles(row.Waits); err != nil {
		return o, fmt.Errorf("waits: %w", err)
	}

	codes, err := splitInts(row.MeldCodes)
	if err != nil {
		return o, fmt.Errorf("melds: %w", err)
	}
	for _, code := range codes {
		m, err := decodeMeld(int64(code), o.Seat)
		if err != nil {
			return o, err
		}
		o.Melds = append(o.Melds, m)
	}

	if row.Yaku != "" {
		if err := json.Unmarshal([]byte(row.Yaku), &o.Yaku); err != nil {
			return o, fmt.Errorf("failed to decode yaku: %w", err)
		}
	}
	if row.Yakuman != "" {
		if err := json.Unmarshal([]byte(row.Yakuman), &o.Yakuman); err != nil {
			return o, fmt.Errorf("failed to decode yakuman: %w", err)
		}
	}
	return o, nil
}
