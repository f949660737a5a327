package decoder

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownSeat     = errors.New("unknown seat")
	ErrNotInRound      = errors.New("no round in progress")
	ErrMissingField    = errors.New("missing field")
	ErrMalformedField  = errors.New("malformed field")
	ErrShapeMismatch   = errors.New("list shape mismatch")
	ErrUnresolvedYaku  = errors.New("unresolved yaku index")
	ErrUnresolvedLimit = errors.New("unresolved limit index")
	ErrUnresolvedRank  = errors.New("unresolved rank index")
	ErrUnresolvedRound = errors.New("unresolved round index")
)

// RecordError locates a failure in the record stream.
type RecordError struct {
	Index int
	Tag   string
	Err   error
}

func (e *RecordError) Error() string {
	return fmt.Sprintf("record %d <%s>: %v", e.Index, e.Tag, e.Err)
}

func (e *RecordError) Unwrap() error { return e.Err }
