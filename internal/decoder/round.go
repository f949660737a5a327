package decoder

import (
	"fmt"
	"strings"

	"mjlog/internal/domain"
	"mjlog/internal/meld"
	"mjlog/internal/record"
	"mjlog/internal/tile"
)

// handleINIT opens a new round. The seed holds the round index, repeat
// count, riichi sticks, two dice and the first dora indicator.
func handleINIT(s *state, r record.Record) error {
	seed, err := fixedInts(r, "seed", 6)
	if err != nil {
		return err
	}
	name, err := lookup(roundNames, seed[0], ErrUnresolvedRound)
	if err != nil {
		return err
	}
	dora, err := tile.Decode(seed[5])
	if err != nil {
		return fmt.Errorf("seed: %w", err)
	}
	dealer, err := seatField(r, "oya")
	if err != nil {
		return err
	}

	round := &domain.Round{
		ID: domain.RoundID{
			Name:         name,
			Repeat:       seed[1],
			RiichiSticks: seed[2],
		},
		Dealer: dealer,
	}

	for seat, key := range handKeys {
		raw, ok := r.Get(key)
		if !ok || raw == "" {
			continue
		}
		tiles, err := tileList(key, raw)
		if err != nil {
			return err
		}
		round.Hands = append(round.Hands, domain.Hand{Seat: seat, Tiles: tiles})
	}

	if raw, ok := r.Get("ten"); ok {
		scores, err := signedList("ten", raw)
		if err != nil {
			return err
		}
		round.Scores = scores
	}

	s.openRound(round)
	s.logger.Debug().
		Str("round", name).
		Int("repeat", seed[1]).
		Int("dealer", dealer).
		Msg("round opened")
	return s.appendEvent(domain.Dora{Tile: dora})
}

func handleN(s *state, r record.Record) error {
	if _, err := s.round(); err != nil {
		return err
	}
	seat, err := seatField(r, "who")
	if err != nil {
		return err
	}
	raw, err := intField(r, "m")
	if err != nil {
		return err
	}
	code, err := meldCode("m", raw)
	if err != nil {
		return err
	}
	m, err := meld.Decode(code, seat)
	if err != nil {
		return err
	}
	return s.appendEvent(domain.Call{Seat: seat, Meld: m})
}

func handleDORA(s *state, r record.Record) error {
	if _, err := s.round(); err != nil {
		return err
	}
	id, err := intField(r, "hai")
	if err != nil {
		return err
	}
	t, err := tile.Decode(id)
	if err != nil {
		return err
	}
	return s.appendEvent(domain.Dora{Tile: t})
}

// handleREACH records a declaration on step 1 and its acceptance, once the
// stick is paid, on step 2.
func handleREACH(s *state, r record.Record) error {
	round, err := s.round()
	if err != nil {
		return err
	}
	seat, err := seatField(r, "who")
	if err != nil {
		return err
	}
	step, err := intField(r, "step")
	if err != nil {
		return err
	}

	switch step {
	case 1:
		return s.appendEvent(domain.Riichi{Seat: seat})
	case 2:
		for i := len(round.Events) - 1; i >= 0; i-- {
			if rc, ok := round.Events[i].(domain.Riichi); ok && rc.Seat == seat && !rc.Accepted {
				rc.Accepted = true
				round.Events[i] = rc
				return nil
			}
		}
		s.logger.Debug().Int("seat", seat).Msg("riichi acceptance without declaration")
		return nil
	default:
		return fmt.Errorf("%w: step=%d", ErrMalformedField, step)
	}
}

// handleDefault covers the seat-encoded draw and discard tags, such as
// "T52" or "E108". Anything else is an unknown record and is skipped.
func handleDefault(s *state, r record.Record) error {
	seat, draw, ok := seatTag(r.Tag)
	if !ok {
		s.logger.Debug().Str("tag", r.Tag).Msg("ignoring unknown record")
		return nil
	}
	if _, err := s.round(); err != nil {
		return err
	}
	t, err := tile.Parse(r.Tag[1:])
	if err != nil {
		return err
	}

	if draw {
		return s.appendEvent(domain.Draw{Seat: seat, Tile: t})
	}
	connected := false
	if seat < len(s.game.Players) {
		connected = s.game.Players[seat].Connected
	}
	return s.appendEvent(domain.Discard{Seat: seat, Tile: t, Connected: connected})
}

func seatTag(tag string) (seat int, draw bool, ok bool) {
	if len(tag) < 2 {
		return 0, false, false
	}
	for _, c := range tag[1:] {
		if c < '0' || c > '9' {
			return 0, false, false
		}
	}
	if i := strings.IndexByte(drawLetters, tag[0]); i >= 0 {
		return i, true, true
	}
	if i := strings.IndexByte(discardLetters, tag[0]); i >= 0 {
		return i, false, true
	}
	return 0, false, false
}
