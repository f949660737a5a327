package repository

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/rs/zerolog"

	"mjlog/internal/database"
	"mjlog/internal/db"
	"mjlog/internal/decoder"
	"mjlog/internal/domain"
	"mjlog/internal/meld"
)

func newRepo(t *testing.T) *GameRepository {
	t.Helper()
	sqlDB, err := database.Open(filepath.Join(t.TempDir(), "games.db"), zerolog.Nop())
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	t.Cleanup(func() { sqlDB.Close() })
	return NewGameRepository(sqlDB, db.New(sqlDB), zerolog.Nop())
}

func sampleGame(t *testing.T) *domain.Game {
	t.Helper()
	f, err := os.Open(filepath.Join("..", "..", "testdata", "sample.mjlog"))
	if err != nil {
		t.Fatalf("open sample: %v", err)
	}
	defer f.Close()
	g, err := decoder.New(zerolog.Nop()).DecodeReader(f)
	if err != nil {
		t.Fatalf("decode sample: %v", err)
	}
	return g
}

func TestGameRepositorySaveAndGet(t *testing.T) {
	ctx := context.Background()
	repo := newRepo(t)
	game := sampleGame(t)

	stored, err := repo.Save(ctx, "2024010100gm-00a9-0000-test", game)
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if stored.ID == "" {
		t.Fatal("expected generated id")
	}
	if stored.RoundCount != 2 {
		t.Fatalf("expected 2 rounds, got %d", stored.RoundCount)
	}

	got, err := repo.Get(ctx, stored.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if diff := cmp.Diff(game, got.Game, cmpopts.EquateEmpty()); diff != "" {
		t.Fatalf("stored game mismatch (-want +got):\n%s", diff)
	}

	bySource, err := repo.GetBySource(ctx, stored.Source)
	if err != nil {
		t.Fatalf("get by source: %v", err)
	}
	if bySource.ID != stored.ID {
		t.Fatalf("expected id %s, got %s", stored.ID, bySource.ID)
	}
}

func TestGameRepositoryReplaceKeepsID(t *testing.T) {
	ctx := context.Background()
	repo := newRepo(t)
	game := sampleGame(t)

	first, err := repo.Save(ctx, "log-a", game)
	if err != nil {
		t.Fatalf("save: %v", err)
	}

	game.Rounds = game.Rounds[:1]
	second, err := repo.Save(ctx, "log-a", game)
	if err != nil {
		t.Fatalf("resave: %v", err)
	}
	if second.ID != first.ID {
		t.Fatalf("expected id %s to be kept, got %s", first.ID, second.ID)
	}

	got, err := repo.Get(ctx, first.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(got.Game.Rounds) != 1 {
		t.Fatalf("expected 1 round after replace, got %d", len(got.Game.Rounds))
	}

	list, err := repo.List(ctx, 10)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("expected 1 listed game, got %d", len(list))
	}
	if list[0].Game != nil {
		t.Fatal("expected listing without game contents")
	}
}

func TestGameRepositoryNotFound(t *testing.T) {
	repo := newRepo(t)
	if _, err := repo.Get(context.Background(), "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := repo.GetBySource(context.Background(), "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestGameRepositoryListLimit(t *testing.T) {
	ctx := context.Background()
	repo := newRepo(t)
	game := sampleGame(t)

	for _, source := range []string{"a", "b", "c"} {
		if _, err := repo.Save(ctx, source, game); err != nil {
			t.Fatalf("save %s: %v", source, err)
		}
	}
	list, err := repo.List(ctx, 2)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("expected 2 games, got %d", len(list))
	}
}

func TestCodecLists(t *testing.T) {
	if got := joinInts(nil); got != "" {
		t.Fatalf("expected empty column, got %q", got)
	}
	vals, err := splitInts("250,-80,0")
	if err != nil {
		t.Fatalf("split: %v", err)
	}
	if diff := cmp.Diff([]int{250, -80, 0}, vals); diff != "" {
		t.Fatalf("split mismatch (-want +got):\n%s", diff)
	}
	if _, err := splitTiles("12,136"); err == nil {
		t.Fatal("expected out of range tile error")
	}
	if _, err := decodeMeld(1<<32+295, 0); !errors.Is(err, meld.ErrMalformed) {
		t.Fatalf("expected ErrMalformed, got %v", err)
	}
}
