package domain

import (
	"time"

	"mjlog/internal/meld"
	"mjlog/internal/tile"
)

type Game struct {
	Type    string
	Lobby   string
	Players []*Player
	Rounds  []*Round
}

// StoredGame is a decoded game as kept by the repository. Game is nil in
// listings.
type StoredGame struct {
	ID         string
	Source     string
	RoundCount int
	CreatedAt  time.Time
	UpdatedAt  time.Time
	Game       *Game
}

type Player struct {
	Seat      int
	Name      string
	Rank      string
	Sex       string
	Rate      float64
	Connected bool
}

type RoundID struct {
	Name         string // e.g. "東1"
	Repeat       int    // honba
	RiichiSticks int
}

type Hand struct {
	Seat  int
	Tiles []tile.Tile
}

type Round struct {
	ID       RoundID
	Dealer   int
	Scores   []int // seat scores at round start, when the log carries them
	Hands    []Hand
	Events   []Event
	Outcomes []Outcome
}

type WinKind string

const (
	SelfDraw   WinKind = "TSUMO"
	DiscardWin WinKind = "RON"
)

type YakuHan struct {
	Name string
	Han  int
}

type Outcome struct {
	Kind    WinKind
	Seat    int
	From    *int // discarding seat, discard wins only
	Hand    []tile.Tile
	Fu      int
	Points  int
	Limit   string // empty below mangan
	Dora    []tile.Tile
	UraDora []tile.Tile
	Waits   []tile.Tile
	Melds   []meld.Meld
	Closed  bool
	Yaku    []YakuHan
	Yakuman []string
}

// HanTotal sums the han of all yaku.
func (o Outcome) HanTotal() int {
	total := 0
	for _, y := range o.Yaku {
		total += y.Han
	}
	return total
}
