package db

import (
	"context"
)

const insertRound = `
INSERT INTO rounds (game_id, idx, name, repeat_count, riichi_sticks, dealer, scores)
VALUES (?, ?, ?, ?, ?, ?, ?)
`

type InsertRoundParams struct {
	GameID       string
	Idx          int64
	Name         string
	RepeatCount  int64
	RiichiSticks int64
	Dealer       int64
	Scores       string
}

func (q *Queries) InsertRound(ctx context.Context, arg InsertRoundParams) error {
	_, err := q.db.ExecContext(ctx, insertRound,
		arg.GameID,
		arg.Idx,
		arg.Name,
		arg.RepeatCount,
		arg.RiichiSticks,
		arg.Dealer,
		arg.Scores,
	)
	return err
}

const listRoundsByGame = `
SELECT game_id, idx, name, repeat_count, riichi_sticks, dealer, scores
FROM rounds
WHERE game_id = ?
ORDER BY idx
`

func (q *Queries) ListRoundsByGame(ctx context.Context, gameID string) ([]Round, error) {
	rows, err := q.db.QueryContext(ctx, listRoundsByGame, gameID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Round
	for rows.Next() {
		var i Round
		if err := rows.Scan(
			&i.GameID,
			&i.Idx,
			&i.Name,
			&i.RepeatCount,
			&i.RiichiSticks,
			&i.Dealer,
			&i.Scores,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const insertRoundHand = `
INSERT INTO round_hands (game_id, round_idx, seat, tiles)
VALUES (?, ?, ?, ?)
`

type InsertRoundHandParams struct {
	GameID   string
	RoundIdx int64
	Seat     int64
	Tiles    string
}

func (q *Queries) InsertRoundHand(ctx context.Context, arg InsertRoundHandParams) error {
	_, err := q.db.ExecContext(ctx, insertRoundHand,
		arg.GameID,
		arg.RoundIdx,
		arg.Seat,
		arg.Tiles,
	)
	return err
}

const listRoundHandsByGame = `
SELECT game_id, round_idx, seat, tiles
FROM round_hands
WHERE game_id = ?
ORDER BY round_idx, seat
`

func (q *Queries) ListRoundHandsByGame(ctx context.Context, gameID string) ([]RoundHand, error) {
	rows, err := q.db.QueryContext(ctx, listRoundHandsByGame, gameID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []RoundHand
	for rows.Next() {
		var i RoundHand
		if err := rows.Scan(
			&i.GameID,
			&i.RoundIdx,
			&i.Seat,
			&i.Tiles,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const insertEvent = `
INSERT INTO events (game_id, round_idx, seq, kind, seat, tile, meld_code, connected, accepted)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
`

type InsertEventParams struct {
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

func (q *Queries) InsertEvent(ctx context.Context, arg InsertEventParams) error {
	_, err := q.db.ExecContext(ctx, insertEvent,
		arg.GameID,
		arg.RoundIdx,
		arg.Seq,
		arg.Kind,
		arg.Seat,
		arg.Tile,
		arg.MeldCode,
		arg.Connected,
		arg.Accepted,
	)
	return err
}

const listEventsByGame = `
SELECT game_id, round_idx, seq, kind, seat, tile, meld_code, connected, accepted
FROM events
WHERE game_id = ?
ORDER BY round_idx, seq
`

func (q *Queries) ListEventsByGame(ctx context.Context, gameID string) ([]Event, error) {
	rows, err := q.db.QueryContext(ctx, listEventsByGame, gameID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Event
	for rows.Next() {
		var i Event
		if err := rows.Scan(
			&i.GameID,
			&i.RoundIdx,
			&i.Seq,
			&i.Kind,
			&i.Seat,
			&i.Tile,
			&i.MeldCode,
			&i.Connected,
			&i.Accepted,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const insertOutcome = `
INSERT INTO outcomes (
    game_id, round_idx, idx, kind, seat, from_seat, hand, fu, points, limit_name,
    dora, ura_dora, waits, meld_codes, closed, yaku, yakuman
)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`

type InsertOutcomeParams struct {
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

func (q *Queries) InsertOutcome(ctx context.Context, arg InsertOutcomeParams) error {
	_, err := q.db.ExecContext(ctx, insertOutcome,
		arg.GameID,
		arg.RoundIdx,
		arg.Idx,
		arg.Kind,
		arg.Seat,
		arg.FromSeat,
		arg.Hand,
		arg.Fu,
		arg.Points,
		arg.LimitName,
		arg.Dora,
		arg.UraDora,
		arg.Waits,
		arg.MeldCodes,
		arg.Closed,
		arg.Yaku,
		arg.Yakuman,
	)
	return err
}

const listOutcomesByGame = `
SELECT game_id, round_idx, idx, kind, seat, from_seat, hand, fu, points, limit_name,
       dora, ura_dora, waits, meld_codes, closed, yaku, yakuman
FROM outcomes
WHERE game_id = ?
ORDER BY round_idx, idx
`

func (q *Queries) ListOutcomesByGame(ctx context.Context, gameID string) ([]Outcome, error) {
	rows, err := q.db.QueryContext(ctx, listOutcomesByGame, gameID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Outcome
	for rows.Next() {
		var i Outcome
		if err := rows.Scan(
			&i.GameID,
			&i.RoundIdx,
			&i.Idx,
			&i.Kind,
			&i.Seat,
			&i.FromSeat,
			&i.Hand,
			&i.Fu,
			&i.Points,
			&i.LimitName,
			&i.Dora,
			&i.UraDora,
			&i.Waits,
			&i.MeldCodes,
			&i.Closed,
			&i.Yaku,
			&i.Yakuman,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
