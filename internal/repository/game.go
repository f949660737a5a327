package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/rs/zerolog"

	"mjlog/internal/db"
	"mjlog/internal/domain"
)

var ErrNotFound = errors.New("game not found")

type GameRepository struct {
	queries *db.Queries
	db      *sql.DB
	logger  zerolog.Logger
}

func NewGameRepository(sqlDB *sql.DB, queries *db.Queries, logger zerolog.Logger) *GameRepository {
	return &GameRepository{
		queries: queries,
		db:      sqlDB,
		logger:  logger,
	}
}

// Save stores game under source, replacing any game previously stored under
// the same source. The stored id is kept across replacements.
func (r *GameRepository) Save(ctx context.Context, source string, game *domain.Game) (*domain.StoredGame, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	qtx := r.queries.WithTx(tx)

	now := time.Now().UTC()
	stored := &domain.StoredGame{
		Source:     source,
		RoundCount: len(game.Rounds),
		CreatedAt:  now,
		UpdatedAt:  now,
		Game:       game,
	}

	existing, err := qtx.GetGameBySource(ctx, source)
	switch {
	case err == nil:
		stored.ID = existing.ID
		stored.CreatedAt = existing.CreatedAt
		if err := qtx.DeleteGame(ctx, existing.ID); err != nil {
			return nil, fmt.Errorf("failed to replace game %s: %w", existing.ID, err)
		}
		r.logger.Debug().Str("id", existing.ID).Str("source", source).Msg("replacing stored game")
	case errors.Is(err, sql.ErrNoRows):
		stored.ID, err = gonanoid.New()
		if err != nil {
			return nil, fmt.Errorf("failed to generate nanoid: %w", err)
		}
	default:
		return nil, fmt.Errorf("failed to look up source %s: %w", source, err)
	}

	err = qtx.InsertGame(ctx, db.InsertGameParams{
		ID:         stored.ID,
		Source:     source,
		GameType:   game.Type,
		Lobby:      game.Lobby,
		RoundCount: int64(stored.RoundCount),
		CreatedAt:  stored.CreatedAt,
		UpdatedAt:  stored.UpdatedAt,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to insert game: %w", err)
	}

	for _, p := range game.Players {
		err := qtx.InsertPlayer(ctx, db.InsertPlayerParams{
			GameID:    stored.ID,
			Seat:      int64(p.Seat),
			Name:      p.Name,
			Rank:      p.Rank,
			Sex:       p.Sex,
			Rate:      p.Rate,
			Connected: p.Connected,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to insert player %d: %w", p.Seat, err)
		}
	}

	for i, round := range game.Rounds {
		if err := insertRound(ctx, qtx, stored.ID, int64(i), round); err != nil {
			return nil, fmt.Errorf("failed to insert round %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit game: %w", err)
	}

	r.logger.Info().
		Str("id", stored.ID).
		Str("source", source).
		Int("rounds", stored.RoundCount).
		Msg("game stored")

	return stored, nil
}

func insertRound(ctx context.Context, qtx *db.Queries, gameID string, idx int64, round *domain.Round) error {
	err := qtx.InsertRound(ctx, db.InsertRoundParams{
		GameID:       gameID,
		Idx:          idx,
		Name:         round.ID.Name,
		RepeatCount:  int64(round.ID.Repeat),
		RiichiSticks: int64(round.ID.RiichiSticks),
		Dealer:       int64(round.Dealer),
		Scores:       joinInts(round.Scores),
	})
	if err != nil {
		return err
	}

	for _, hand := range round.Hands {
		err := qtx.InsertRoundHand(ctx, db.InsertRoundHandParams{
			GameID:   gameID,
			RoundIdx: idx,
			Seat:     int64(hand.Seat),
			Tiles:    joinTiles(hand.Tiles),
		})
		if err != nil {
			return fmt.Errorf("hand %d: %w", hand.Seat, err)
		}
	}

	for seq, ev := range round.Events {
		params := eventParams(ev)
		params.GameID = gameID
		params.RoundIdx = idx
		params.Seq = int64(seq)
		if err := qtx.InsertEvent(ctx, params); err != nil {
			return fmt.Errorf("event %d: %w", seq, err)
		}
	}

	for i, o := range round.Outcomes {
		params, err := outcomeParams(o)
		if err != nil {
			return fmt.Errorf("outcome %d: %w", i, err)
		}
		params.GameID = gameID
		params.RoundIdx = idx
		params.Idx = int64(i)
		if err := qtx.InsertOutcome(ctx, params); err != nil {
			return fmt.Errorf("outcome %d: %w", i, err)
		}
	}

	return nil
}

func (r *GameRepository) Get(ctx context.Context, id string) (*domain.StoredGame, error) {
	row, err := r.queries.GetGame(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		r.logger.Error().Err(err).Str("id", id).Msg("failed to get game")
		return nil, err
	}
	return r.load(ctx, row)
}

func (r *GameRepository) GetBySource(ctx context.Context, source string) (*domain.StoredGame, error) {
	row, err := r.queries.GetGameBySource(ctx, source)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		r.logger.Error().Err(err).Str("source", source).Msg("failed to get game")
		return nil, err
	}
	return r.load(ctx, row)
}

// List returns the most recently stored games without their contents.
func (r *GameRepository) List(ctx context.Context, limit int) ([]domain.StoredGame, error) {
	rows, err := r.queries.ListGames(ctx, int64(limit))
	if err != nil {
		return nil, err
	}

	result := make([]domain.StoredGame, len(rows))
	for i, row := range rows {
		result[i] = summary(row)
	}
	return result, nil
}

func summary(row db.Game) domain.StoredGame {
	return domain.StoredGame{
		ID:         row.ID,
		Source:     row.Source,
		RoundCount: int(row.RoundCount),
		CreatedAt:  row.CreatedAt,
		UpdatedAt:  row.UpdatedAt,
	}
}

func (r *GameRepository) load(ctx context.Context, row db.Game) (*domain.StoredGame, error) {
	players, err := r.queries.ListPlayersByGame(ctx, row.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list players: %w", err)
	}
	rounds, err := r.queries.ListRoundsByGame(ctx, row.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list rounds: %w", err)
	}
	hands, err := r.queries.ListRoundHandsByGame(ctx, row.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list hands: %w", err)
	}
	events, err := r.queries.ListEventsByGame(ctx, row.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	outcomes, err := r.queries.ListOutcomesByGame(ctx, row.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list outcomes: %w", err)
	}

	game := &domain.Game{
		Type:    row.GameType,
		Lobby:   row.Lobby,
		Players: make([]*domain.Player, 0, len(players)),
		Rounds:  make([]*domain.Round, 0, len(rounds)),
	}
	for _, p := range players {
		game.Players = append(game.Players, &domain.Player{
			Seat:      int(p.Seat),
			Name:      p.Name,
			Rank:      p.Rank,
			Sex:       p.Sex,
			Rate:      p.Rate,
			Connected: p.Connected,
		})
	}

	byIdx := make(map[int64]*domain.Round, len(rounds))
	for _, rr := range rounds {
		scores, err := splitInts(rr.Scores)
		if err != nil {
			return nil, fmt.Errorf("round %d scores: %w", rr.Idx, err)
		}
		round := &domain.Round{
			ID: domain.RoundID{
				Name:         rr.Name,
				Repeat:       int(rr.RepeatCount),
				RiichiSticks: int(rr.RiichiSticks),
			},
			Dealer: int(rr.Dealer),
			Scores: scores,
		}
		byIdx[rr.Idx] = round
		game.Rounds = append(game.Rounds, round)
	}

	for _, h := range hands {
		round, ok := byIdx[h.RoundIdx]
		if !ok {
			return nil, fmt.Errorf("hand references missing round %d", h.RoundIdx)
		}
		tiles, err := splitTiles(h.Tiles)
		if err != nil {
			return nil, fmt.Errorf("round %d hand %d: %w", h.RoundIdx, h.Seat, err)
		}
		round.Hands = append(round.Hands, domain.Hand{Seat: int(h.Seat), Tiles: tiles})
	}

	for _, e := range events {
		round, ok := byIdx[e.RoundIdx]
		if !ok {
			return nil, fmt.Errorf("event references missing round %d", e.RoundIdx)
		}
		ev, err := eventFromRow(e)
		if err != nil {
			return nil, fmt.Errorf("round %d event %d: %w", e.RoundIdx, e.Seq, err)
		}
		round.Events = append(round.Events, ev)
	}

	for _, o := range outcomes {
		round, ok := byIdx[o.RoundIdx]
		if !ok {
			return nil, fmt.Errorf("outcome references missing round %d", o.RoundIdx)
		}
		outcome, err := outcomeFromRow(o)
		if err != nil {
			return nil, fmt.Errorf("round %d outcome %d: %w", o.RoundIdx, o.Idx, err)
		}
		round.Outcomes = append(round.Outcomes, outcome)
	}

	stored := summary(row)
	stored.Game = game
	return &stored, nil
}
