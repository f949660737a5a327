package db

import (
	"context"
	"time"
)

const insertGame = `
INSERT INTO games (id, source, game_type, lobby, round_count, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?)
`

type InsertGameParams struct {
	ID         string
	Source     string
	GameType   string
	Lobby      string
	RoundCount int64
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (q *Queries) InsertGame(ctx context.Context, arg InsertGameParams) error {
	_, err := q.db.ExecContext(ctx, insertGame,
		arg.ID,
		arg.Source,
		arg.GameType,
		arg.Lobby,
		arg.RoundCount,
		arg.CreatedAt,
		arg.UpdatedAt,
	)
	return err
}

const deleteGame = `
DELETE FROM games WHERE id = ?
`

func (q *Queries) DeleteGame(ctx context.Context, id string) error {
	_, err := q.db.ExecContext(ctx, deleteGame, id)
	return err
}

const getGame = `
SELECT id, source, game_type, lobby, round_count, created_at, updated_at
FROM games
WHERE id = ?
`

func (q *Queries) GetGame(ctx context.Context, id string) (Game, error) {
	row := q.db.QueryRowContext(ctx, getGame, id)
	var i Game
	err := row.Scan(
		&i.ID,
		&i.Source,
		&i.GameType,
		&i.Lobby,
		&i.RoundCount,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const getGameBySource = `
SELECT id, source, game_type, lobby, round_count, created_at, updated_at
FROM games
WHERE source = ?
`

func (q *Queries) GetGameBySource(ctx context.Context, source string) (Game, error) {
	row := q.db.QueryRowContext(ctx, getGameBySource, source)
	var i Game
	err := row.Scan(
		&i.ID,
		&i.Source,
		&i.GameType,
		&i.Lobby,
		&i.RoundCount,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const listGames = `
SELECT id, source, game_type, lobby, round_count, created_at, updated_at
FROM games
ORDER BY created_at DESC, id
LIMIT ?
`

func (q *Queries) ListGames(ctx context.Context, limit int64) ([]Game, error) {
	rows, err := q.db.QueryContext(ctx, listGames, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Game
	for rows.Next() {
		var i Game
		if err := rows.Scan(
			&i.ID,
			&i.Source,
			&i.GameType,
			&i.Lobby,
			&i.RoundCount,
			&i.CreatedAt,
			&i.UpdatedAt,
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

const insertPlayer = `
INSERT INTO players (game_id, seat, name, rank, sex, rate, connected)
VALUES (?, ?, ?, ?, ?, ?, ?)
`

type InsertPlayerParams struct {
	GameID    string
	Seat      int64
	Name      string
	Rank      string
	Sex       string
	Rate      float64
	Connected bool
}

func (q *Queries) InsertPlayer(ctx context.Context, arg InsertPlayerParams) error {
	_, err := q.db.ExecContext(ctx, insertPlayer,
		arg.GameID,
		arg.Seat,
		arg.Name,
		arg.Rank,
		arg.Sex,
		arg.Rate,
		arg.Connected,
	)
	return err
}

const listPlayersByGame = `
SELECT game_id, seat, name, rank, sex, rate, connected
FROM players
WHERE game_id = ?
ORDER BY seat
`

func (q *Queries) ListPlayersByGame(ctx context.Context, gameID string) ([]Player, error) {
	rows, err := q.db.QueryContext(ctx, listPlayersByGame, gameID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Player
	for rows.Next() {
		var i Player
		if err := rows.Scan(
			&i.GameID,
			&i.Seat,
			&i.Name,
			&i.Rank,
			&i.Sex,
			&i.Rate,
			&i.Connected,
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
