package domain

import (
	"mjlog/internal/meld"
	"mjlog/internal/tile"
)

type EventKind string

const (
	EventDora    EventKind = "Dora"
	EventDraw    EventKind = "Draw"
	EventDiscard EventKind = "Discard"
	EventCall    EventKind = "Call"
	EventRiichi  EventKind = "Riichi"
)

// Event is one of Dora, Draw, Discard, Call or Riichi.
type Event interface {
	Kind() EventKind
	event()
}

type Dora struct {
	Tile tile.Tile
}

type Draw struct {
	Seat int
	Tile tile.Tile
}

type Discard struct {
	Seat      int
	Tile      tile.Tile
	Connected bool
}

type Call struct {
	Seat int
	Meld meld.Meld
}

type Riichi struct {
	Seat     int
	Accepted bool
}

func (Dora) Kind() EventKind { return EventDora }
func (Draw) Kind() EventKind { return EventDraw }
func (Discard) Kind() EventKind { return EventDiscard }
func (Call) Kind() EventKind { return EventCall }
func (Riichi) Kind() EventKind { return EventRiichi }

func (Dora) event() {}
func (Draw) event() {}
func (Discard) event() {}
func (Call) event() {}
func (Riichi) event() {}

// Seat returns the acting seat of an event, if it has one.
func Seat(e Event) (int, bool) {
	switch ev := e.(type) {
	case Draw:
		return ev.Seat, true
	case Discard:
		return ev.Seat, true
	case Call:
		return ev.Seat, true
	case Riichi:
		return ev.Seat, true
	}
	return 0, false
}
