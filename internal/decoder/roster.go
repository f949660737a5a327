package decoder

import (
	"fmt"
	"net/url"

	"mjlog/internal/domain"
	"mjlog/internal/record"
)

const maxPlayers = 4

func handleGO(s *state, r record.Record) error {
	gameType, err := required(r, "type")
	if err != nil {
		return err
	}
	lobby, err := required(r, "lobby")
	if err != nil {
		return err
	}
	s.game.Type = gameType
	s.game.Lobby = lobby
	return nil
}

// handleUN registers the roster when rank data is present and otherwise
// marks the listed seats as reconnected.
func handleUN(s *state, r record.Record) error {
	if !r.Has("dan") {
		return markConnected(s, r)
	}

	var added []*domain.Player
	for _, key := range nameKeys {
		raw, ok := r.Get(key)
		if !ok {
			continue
		}
		name, err := url.PathUnescape(raw)
		if err != nil {
			return fmt.Errorf("%w: %s: %v", ErrMalformedField, key, err)
		}
		added = append(added, &domain.Player{
			Seat: len(s.game.Players) + len(added),
			Name: name,
		})
	}
	if len(s.game.Players)+len(added) > maxPlayers {
		return fmt.Errorf("%w: roster would hold %d players", ErrShapeMismatch, len(s.game.Players)+len(added))
	}

	dan, _ := r.Get("dan")
	rankIdx, err := intList("dan", dan)
	if err != nil {
		return err
	}
	sx, err := required(r, "sx")
	if err != nil {
		return err
	}
	sexes := splitList(sx)
	rateStr, err := required(r, "rate")
	if err != nil {
		return err
	}
	rates, err := floatList("rate", rateStr)
	if err != nil {
		return err
	}
	lists := []struct {
		key string
		n   int
	}{
		{"dan", len(rankIdx)},
		{"sx", len(sexes)},
		{"rate", len(rates)},
	}
	for _, l := range lists {
		if l.n < len(added) {
			return fmt.Errorf("%w: %s has %d values for %d players", ErrShapeMismatch, l.key, l.n, len(added))
		}
	}

	for i, p := range added {
		rank, err := lookup(ranks, rankIdx[i], ErrUnresolvedRank)
		if err != nil {
			return err
		}
		p.Rank = rank
		p.Sex = sexes[i]
		p.Rate = rates[i]
		p.Connected = true
	}
	s.game.Players = append(s.game.Players, added...)

	s.logger.Debug().Int("players", len(s.game.Players)).Msg("roster registered")
	return nil
}

func markConnected(s *state, r record.Record) error {
	for seat, key := range nameKeys {
		if !r.Has(key) {
			continue
		}
		if seat >= len(s.game.Players) {
			return fmt.Errorf("%w: %d", ErrUnknownSeat, seat)
		}
		s.game.Players[seat].Connected = true
	}
	return nil
}

func handleBYE(s *state, r record.Record) error {
	seat, err := seatField(r, "who")
	if err != nil {
		return err
	}
	if seat >= len(s.game.Players) {
		return fmt.Errorf("%w: %d", ErrUnknownSeat, seat)
	}
	s.game.Players[seat].Connected = false
	return nil
}
