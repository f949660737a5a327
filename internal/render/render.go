// Package render turns decoded games into YAML or JSON documents with tiles
// written as their label and copy digit, such as "5p0" or "rd3".
package render

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"gopkg.in/yaml.v3"

	"mjlog/internal/domain"
	"mjlog/internal/meld"
	"mjlog/internal/tile"
)

type GameDoc struct {
	ID      string      `json:"id,omitempty" yaml:"id,omitempty"`
	Source  string      `json:"source,omitempty" yaml:"source,omitempty"`
	Type    string      `json:"type" yaml:"type"`
	Lobby   string      `json:"lobby" yaml:"lobby"`
	Players []PlayerDoc `json:"players" yaml:"players"`
	Rounds  []RoundDoc  `json:"rounds" yaml:"rounds"`
}

type PlayerDoc struct {
	Seat      int     `json:"seat" yaml:"seat"`
	Name      string  `json:"name" yaml:"name"`
	Rank      string  `json:"rank" yaml:"rank"`
	Sex       string  `json:"sex" yaml:"sex"`
	Rate      float64 `json:"rate" yaml:"rate"`
	Connected bool    `json:"connected" yaml:"connected"`
}

type RoundDoc struct {
	Name         string       `json:"name" yaml:"name"`
	Repeat       int          `json:"repeat" yaml:"repeat"`
	RiichiSticks int          `json:"riichi_sticks" yaml:"riichi_sticks"`
	Dealer       int          `json:"dealer" yaml:"dealer"`
	Scores       []int        `json:"scores,omitempty" yaml:"scores,omitempty"`
	Hands        []HandDoc    `json:"hands,omitempty" yaml:"hands,omitempty"`
	Events       []EventDoc   `json:"events" yaml:"events"`
	Outcomes     []OutcomeDoc `json:"outcomes,omitempty" yaml:"outcomes,omitempty"`
}

type HandDoc struct {
	Seat  int      `json:"seat" yaml:"seat"`
	Tiles []string `json:"tiles" yaml:"tiles,flow"`
}

// EventDoc flattens every event kind; fields that do not apply are omitted.
type EventDoc struct {
	Type         string   `json:"type" yaml:"type"`
	Seat         *int     `json:"seat,omitempty" yaml:"seat,omitempty"`
	Tile         string   `json:"tile,omitempty" yaml:"tile,omitempty"`
	Disconnected bool     `json:"disconnected,omitempty" yaml:"disconnected,omitempty"`
	Accepted     *bool    `json:"accepted,omitempty" yaml:"accepted,omitempty"`
	Meld         *MeldDoc `json:"meld,omitempty" yaml:"meld,omitempty"`
}

type MeldDoc struct {
	Kind     string   `json:"kind" yaml:"kind"`
	Tiles    []string `json:"tiles" yaml:"tiles,flow"`
	FromSeat *int     `json:"from_seat,omitempty" yaml:"from_seat,omitempty"`
	Called   *int     `json:"called,omitempty" yaml:"called,omitempty"`
}

type YakuDoc struct {
	Name string `json:"name" yaml:"name"`
	Han  int    `json:"han" yaml:"han"`
}

type OutcomeDoc struct {
	Kind    string    `json:"kind" yaml:"kind"`
	Seat    int       `json:"seat" yaml:"seat"`
	From    *int      `json:"from,omitempty" yaml:"from,omitempty"`
	Hand    []string  `json:"hand" yaml:"hand,flow"`
	Melds   []MeldDoc `json:"melds,omitempty" yaml:"melds,omitempty"`
	Closed  bool      `json:"closed" yaml:"closed"`
	Waits   []string  `json:"waits" yaml:"waits,flow"`
	Fu      int       `json:"fu" yaml:"fu"`
	Points  int       `json:"points" yaml:"points"`
	Limit   string    `json:"limit,omitempty" yaml:"limit,omitempty"`
	Han     int       `json:"han,omitempty" yaml:"han,omitempty"`
	Yaku    []YakuDoc `json:"yaku,omitempty" yaml:"yaku,omitempty"`
	Yakuman []string  `json:"yakuman,omitempty" yaml:"yakuman,omitempty,flow"`
	Dora    []string  `json:"dora" yaml:"dora,flow"`
	UraDora []string  `json:"ura_dora,omitempty" yaml:"ura_dora,omitempty,flow"`
}

type SummaryDoc struct {
	ID        string    `json:"id" yaml:"id"`
	Source    string    `json:"source" yaml:"source"`
	Rounds    int       `json:"rounds" yaml:"rounds"`
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
	UpdatedAt time.Time `json:"updated_at" yaml:"updated_at"`
}

func FromStored(s *domain.StoredGame) GameDoc {
	var doc GameDoc
	if s.Game != nil {
		doc = FromGame(s.Game)
	}
	doc.ID = s.ID
	doc.Source = s.Source
	return doc
}

func Summaries(games []domain.StoredGame) []SummaryDoc {
	out := make([]SummaryDoc, len(games))
	for i, g := range games {
		out[i] = SummaryDoc{
			ID:        g.ID,
			Source:    g.Source,
			Rounds:    g.RoundCount,
			CreatedAt: g.CreatedAt,
			UpdatedAt: g.UpdatedAt,
		}
	}
	return out
}

func FromGame(g *domain.Game) GameDoc {
	doc := GameDoc{
		Type:    g.Type,
		Lobby:   g.Lobby,
		Players: make([]PlayerDoc, len(g.Players)),
		Rounds:  make([]RoundDoc, len(g.Rounds)),
	}
	for i, p := range g.Players {
		doc.Players[i] = PlayerDoc{
			Seat:      p.Seat,
			Name:      p.Name,
			Rank:      p.Rank,
			Sex:       p.Sex,
			Rate:      p.Rate,
			Connected: p.Connected,
		}
	}
	for i, r := range g.Rounds {
		doc.Rounds[i] = roundDoc(r)
	}
	return doc
}

func roundDoc(r *domain.Round) RoundDoc {
	doc := RoundDoc{
		Name:         r.ID.Name,
		Repeat:       r.ID.Repeat,
		RiichiSticks: r.ID.RiichiSticks,
		Dealer:       r.Dealer,
		Scores:       r.Scores,
		Events:       make([]EventDoc, 0, len(r.Events)),
	}
	for _, h := range r.Hands {
		doc.Hands = append(doc.Hands, HandDoc{Seat: h.Seat, Tiles: names(h.Tiles)})
	}
	for _, e := range r.Events {
		doc.Events = append(doc.Events, eventDoc(e))
	}
	for _, o := range r.Outcomes {
		doc.Outcomes = append(doc.Outcomes, outcomeDoc(o))
	}
	return doc
}

func eventDoc(e domain.Event) EventDoc {
	doc := EventDoc{Type: string(e.Kind())}
	if seat, ok := domain.Seat(e); ok {
		doc.Seat = &seat
	}
	switch ev := e.(type) {
	case domain.Dora:
		doc.Tile = ev.Tile.String()
	case domain.Draw:
		doc.Tile = ev.Tile.String()
	case domain.Discard:
		doc.Tile = ev.Tile.String()
		doc.Disconnected = !ev.Connected
	case domain.Call:
		m := meldDoc(ev.Meld)
		doc.Meld = &m
	case domain.Riichi:
		accepted := ev.Accepted
		doc.Accepted = &accepted
	}
	return doc
}

func meldDoc(m meld.Meld) MeldDoc {
	doc := MeldDoc{
		Kind:   string(m.Kind),
		Tiles:  names(m.Tiles),
		Called: m.Called,
	}
	if from, ok := m.FromSeat(); ok {
		doc.FromSeat = &from
	}
	return doc
}

func outcomeDoc(o domain.Outcome) OutcomeDoc {
	doc := OutcomeDoc{
		Kind:    string(o.Kind),
		Seat:    o.Seat,
		From:    o.From,
		Hand:    names(o.Hand),
		Closed:  o.Closed,
		Waits:   names(o.Waits),
		Fu:      o.Fu,
		Points:  o.Points,
		Limit:   o.Limit,
		Han:     o.HanTotal(),
		Yakuman: o.Yakuman,
		Dora:    names(o.Dora),
		UraDora: names(o.UraDora),
	}
	for _, m := range o.Melds {
		doc.Melds = append(doc.Melds, meldDoc(m))
	}
	for _, y := range o.Yaku {
		doc.Yaku = append(doc.Yaku, YakuDoc{Name: y.Name, Han: y.Han})
	}
	return doc
}

func names(tiles []tile.Tile) []string {
	if tiles == nil {
		return nil
	}
	out := make([]string, len(tiles))
	for i, t := range tiles {
		out[i] = t.String()
	}
	return out
}

func YAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode yaml: %w", err)
	}
	return enc.Close()
}

func JSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	return nil
}
