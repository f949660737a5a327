package decoder

import (
	"fmt"

	"mjlog/internal/domain"
	"mjlog/internal/meld"
	"mjlog/internal/record"
)

// uraDoraKeys lists the attributes that may carry the hidden dora; the first
// one present is the one decoded.
var uraDoraKeys = []string{"doraHaiUra", "uradoraHai"}

func handleAGARI(s *state, r record.Record) error {
	round, err := s.round()
	if err != nil {
		return err
	}
	o, err := decodeOutcome(r)
	if err != nil {
		return err
	}
	round.Outcomes = append(round.Outcomes, o)
	return nil
}

func decodeOutcome(r record.Record) (domain.Outcome, error) {
	var o domain.Outcome

	seat, err := seatField(r, "who")
	if err != nil {
		return o, err
	}
	from, err := seatField(r, "fromWho")
	if err != nil {
		return o, err
	}
	o.Seat = seat
	if from == seat {
		o.Kind = domain.SelfDraw
	} else {
		o.Kind = domain.DiscardWin
		o.From = &from
	}

	if o.Hand, err = requiredTiles(r, "hai"); err != nil {
		return o, err
	}

	ten, err := fixedInts(r, "ten", 3)
	if err != nil {
		return o, err
	}
	o.Fu, o.Points = ten[0], ten[1]
	limit, err := lookup(limitNames, ten[2], ErrUnresolvedLimit)
	if err != nil {
		return o, err
	}
	o.Limit = limit

	if o.Dora, err = requiredTiles(r, "doraHai"); err != nil {
		return o, err
	}
	if o.Waits, err = requiredTiles(r, "machi"); err != nil {
		return o, err
	}
	for _, key := range uraDoraKeys {
		raw, ok := r.Get(key)
		if !ok {
			continue
		}
		if o.UraDora, err = tileList(key, raw); err != nil {
			return o, err
		}
		break
	}

	o.Closed = true
	if raw, ok := r.Get("m"); ok {
		codes, err := intList("m", raw)
		if err != nil {
			return o, err
		}
		for _, v := range codes {
			code, err := meldCode("m", v)
			if err != nil {
				return o, err
			}
			m, err := meld.Decode(code, seat)
			if err != nil {
				return o, err
			}
			if m.Open() {
				o.Closed = false
			}
			o.Melds = append(o.Melds, m)
		}
	}

	if raw, ok := r.Get("yaku"); ok {
		o.Yaku, err = decodeYaku(raw)
	} else if raw, ok := r.Get("yakuman"); ok {
		o.Yakuman, err = decodeYakuman(raw)
	}
	return o, err
}

// decodeYaku reads flattened (yaku index, han) pairs.
func decodeYaku(raw string) ([]domain.YakuHan, error) {
	vals, err := intList("yaku", raw)
	if err != nil {
		return nil, err
	}
	if len(vals)%2 != 0 {
		return nil, fmt.Errorf("%w: yaku has %d values, want pairs", ErrShapeMismatch, len(vals))
	}
	out := make([]domain.YakuHan, 0, len(vals)/2)
	for i := 0; i < len(vals); i += 2 {
		name, err := lookup(yakuNames, vals[i], ErrUnresolvedYaku)
		if err != nil {
			return nil, err
		}
		out = append(out, domain.YakuHan{Name: name, Han: vals[i+1]})
	}
	return out, nil
}

func decodeYakuman(raw string) ([]string, error) {
	idx, err := intList("yakuman", raw)
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(idx))
	for _, i := range idx {
		name, err := lookup(yakuNames, i, ErrUnresolvedYaku)
		if err != nil {
			return nil, err
		}
		out = append(out, name)
	}
	return out, nil
}
