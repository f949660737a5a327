// Package decoder rebuilds a Game from the flat record stream of a match log.
//
// Records carry no nesting: a round is whatever follows an INIT record until
// the next INIT or the end of the stream, and draws and discards name their
// seat through the first letter of the tag.
package decoder

import (
	"io"

	"github.com/rs/zerolog"

	"mjlog/internal/domain"
	"mjlog/internal/record"
)

type handler func(s *state, r record.Record) error

var handlers = map[string]handler{
	"GO":       handleGO,
	"UN":       handleUN,
	"BYE":      handleBYE,
	"TAIKYOKU": handleTAIKYOKU,
	"INIT":     handleINIT,
	"N":        handleN,
	"DORA":     handleDORA,
	"REACH":    handleREACH,
	"AGARI":    handleAGARI,
}

// Decoder is safe for concurrent use; every Decode call owns its own state.
type Decoder struct {
	logger zerolog.Logger
}

func New(logger zerolog.Logger) *Decoder {
	return &Decoder{logger: logger.With().Str("component", "decoder").Logger()}
}

type state struct {
	game    *domain.Game
	current int
	logger  zerolog.Logger
}

func (s *state) round() (*domain.Round, error) {
	if s.current < 0 {
		return nil, ErrNotInRound
	}
	return s.game.Rounds[s.current], nil
}

func (s *state) openRound(r *domain.Round) {
	s.game.Rounds = append(s.game.Rounds, r)
	s.current = len(s.game.Rounds) - 1
}

func (s *state) appendEvent(e domain.Event) error {
	round, err := s.round()
	if err != nil {
		return err
	}
	round.Events = append(round.Events, e)
	return nil
}

// Decode folds records, in order, into a Game. The first failing record
// aborts the decode.
func (d *Decoder) Decode(records []record.Record) (*domain.Game, error) {
	s := &state{
		game:    &domain.Game{},
		current: -1,
		logger:  d.logger,
	}

	for i, r := range records {
		h, ok := handlers[r.Tag]
		if !ok {
			h = handleDefault
		}
		if err := h(s, r); err != nil {
			return nil, &RecordError{Index: i, Tag: r.Tag, Err: err}
		}
	}

	d.logger.Debug().
		Int("records", len(records)).
		Int("players", len(s.game.Players)).
		Int("rounds", len(s.game.Rounds)).
		Msg("log decoded")
	return s.game, nil
}

func (d *Decoder) DecodeReader(src io.Reader) (*domain.Game, error) {
	records, err := record.Read(src)
	if err != nil {
		return nil, err
	}
	return d.Decode(records)
}

func handleTAIKYOKU(s *state, r record.Record) error {
	return nil
}
