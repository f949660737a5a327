package db

import (
	"time"
)

type Game struct {
	ID         string
	Source     string
	GameType   string
	Lobby      string
	RoundCount int64
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

type Player struct {
	GameID    string
	Seat      int64
	Name      string
	Rank      string
	Sex       string
	Rate      float64
	Connected bool
}

type Round struct {
	GameID       string
	Idx          int64
	Name         string
	RepeatCount  int64
	RiichiSticks int64
	Dealer       int64
	Scores       string
}

type RoundHand struct {
	GameID   string
	RoundIdx int64
	Seat     int64
	Tiles    string
}

type Event struct {
	GameID    string
	RoundIdx  int64
	Seq       int64
	Kind      string
	Seat      *int64
	Tile      *int64
	MeldCode  *int64
	Connected bool
	Accepted  bool
}

type Outcome struct {
	GameID    string
	RoundIdx  int64
	Idx       int64
	Kind      string
	Seat      int64
	FromSeat  *int64
	Hand      string
	Fu        int64
	Points    int64
	LimitName string
	Dora      string
	UraDora   string
	Waits     string
	MeldCodes string
	Closed    bool
	Yaku      string
	Yakuman   string
}
