package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"mjlog/internal/cache"
	"mjlog/internal/config"
	"mjlog/internal/constants"
	"mjlog/internal/decoder"
	"mjlog/internal/domain"
	"mjlog/internal/repository"
)

var (
	ErrDecode        = errors.New("decode failed")
	ErrMissingSource = errors.New("source is required")
	ErrEmptyBatch    = errors.New("no log ids given")
	ErrBatchTooLarge = errors.New("too many log ids")
)

// LogFetcher downloads a raw log by its archive id.
type LogFetcher interface {
	GetLog(ctx context.Context, logID string) ([]byte, error)
}

type GameService struct {
	repo        *repository.GameRepository
	cache       *cache.GameCache
	fetcher     LogFetcher
	decoder     *decoder.Decoder
	concurrency int
	logger      zerolog.Logger
}

func NewGameService(
	cfg *config.Config,
	repo *repository.GameRepository,
	gameCache *cache.GameCache,
	fetcher LogFetcher,
	dec *decoder.Decoder,
	logger zerolog.Logger,
) *GameService {
	return &GameService{
		repo:        repo,
		cache:       gameCache,
		fetcher:     fetcher,
		decoder:     dec,
		concurrency: cfg.FetchConcurrency,
		logger:      logger,
	}
}

// Import decodes a log read from r and stores it under source. Callers bound
// the size of r.
func (s *GameService) Import(ctx context.Context, source string, r io.Reader) (*domain.StoredGame, error) {
	if source == "" {
		return nil, ErrMissingSource
	}
	ctx, cancel := context.WithTimeout(ctx, constants.RequestTimeout)
	defer cancel()

	game, err := s.decoder.DecodeReader(r)
	if err != nil {
		s.logger.Warn().Err(err).Str("source", source).Msg("failed to decode log")
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	return s.store(ctx, source, game)
}

// Fetch returns the game for an archive log id. A stored copy is returned
// unless refresh is set.
func (s *GameService) Fetch(ctx context.Context, logID string, refresh bool) (*domain.StoredGame, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.RequestTimeout)
	defer cancel()

	if !refresh {
		stored, err := s.repo.GetBySource(ctx, logID)
		if err == nil {
			s.logger.Debug().Str("log_id", logID).Str("id", stored.ID).Msg("returning stored game")
			s.cache.Set(stored)
			return stored, nil
		}
		if !errors.Is(err, repository.ErrNotFound) {
			return nil, err
		}
	}

	s.logger.Info().Str("log_id", logID).Bool("refresh", refresh).Msg("fetching log from archive")

	apiCtx, apiCancel := context.WithTimeout(ctx, constants.ArchiveTimeout)
	defer apiCancel()

	raw, err := s.fetcher.GetLog(apiCtx, logID)
	if err != nil {
		s.logger.Error().Err(err).Str("log_id", logID).Msg("failed to fetch log")
		return nil, fmt.Errorf("failed to fetch log: %w", err)
	}

	game, err := s.decoder.DecodeReader(bytes.NewReader(raw))
	if err != nil {
		s.logger.Warn().Err(err).Str("log_id", logID).Msg("failed to decode log")
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	return s.store(ctx, logID, game)
}

func (s *GameService) store(ctx context.Context, source string, game *domain.Game) (*domain.StoredGame, error) {
	stored, err := s.repo.Save(ctx, source, game)
	if err != nil {
		s.logger.Error().Err(err).Str("source", source).Msg("failed to store game")
		return nil, fmt.Errorf("failed to store game: %w", err)
	}
	s.cache.Set(stored)
	return stored, nil
}

type BatchResult struct {
	LogID string
	Game  *domain.StoredGame
	Err   error
}

// FetchBatch fetches several logs with bounded concurrency. A failing log
// does not stop the others; its error is reported in its result.
func (s *GameService) FetchBatch(ctx context.Context, logIDs []string, refresh bool) ([]BatchResult, error) {
	ids := dedupe(logIDs)
	if len(ids) == 0 {
		return nil, ErrEmptyBatch
	}
	if len(ids) > constants.MaxBatchSize {
		return nil, fmt.Errorf("%w: %d, max %d", ErrBatchTooLarge, len(ids), constants.MaxBatchSize)
	}

	ctx, cancel := context.WithTimeout(ctx, constants.BatchTimeout)
	defer cancel()

	s.logger.Info().Int("count", len(ids)).Int("concurrency", s.concurrency).Msg("fetching log batch")

	results := make([]BatchResult, len(ids))
	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	for i, id := range ids {
		g.Go(func() error {
			stored, err := s.Fetch(gCtx, id, refresh)
			results[i] = BatchResult{LogID: id, Game: stored, Err: err}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
		}
	}
	s.logger.Info().Int("count", len(ids)).Int("failed", failed).Msg("log batch done")
	return results, nil
}

func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok || id == "" {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func (s *GameService) Get(ctx context.Context, id string) (*domain.StoredGame, error) {
	if stored, ok := s.cache.Get(id); ok {
		s.logger.Debug().Str("id", id).Msg("cache hit")
		return stored, nil
	}

	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	stored, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	s.cache.Set(stored)
	return stored, nil
}

// List returns stored game summaries, newest first. Limits outside
// [1, MaxListLimit] fall back to the default or the maximum.
func (s *GameService) List(ctx context.Context, limit int) ([]domain.StoredGame, error) {
	switch {
	case limit <= 0:
		limit = constants.DefaultListLimit
	case limit > constants.MaxListLimit:
		limit = constants.MaxListLimit
	}

	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	return s.repo.List(ctx, limit)
}
