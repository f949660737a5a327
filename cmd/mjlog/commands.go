package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"mjlog/internal/api"
	"mjlog/internal/cache"
	"mjlog/internal/config"
	"mjlog/internal/constants"
	"mjlog/internal/database"
	"mjlog/internal/db"
	"mjlog/internal/decoder"
	"mjlog/internal/domain"
	"mjlog/internal/logger"
	"mjlog/internal/render"
	"mjlog/internal/repository"
	"mjlog/internal/service"
)

type options struct {
	logLevel string
	format   string
	refresh  bool
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	opts := &options{}
	var log zerolog.Logger

	root := &cobra.Command{
		Use:           "mjlog",
		Short:         "Decode and store mahjong match logs",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			log = logger.NewConsole(stderr, logger.ParseLevel(opts.logLevel))
		},
	}
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "warn", "log level (debug, info, warn, error)")

	decode := &cobra.Command{
		Use:   "decode FILE...",
		Short: "Decode log files and print them",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDecode(cmd.OutOrStdout(), log, opts.format, args)
		},
	}
	decode.Flags().StringVarP(&opts.format, "format", "f", "yaml", "output format (yaml or json)")

	importCmd := &cobra.Command{
		Use:   "import FILE...",
		Short: "Decode log files and store them in the configured database",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withService(cmd.Context(), log, func(ctx context.Context, svc *service.GameService) error {
				return runImport(ctx, cmd.OutOrStdout(), svc, args)
			})
		},
	}

	fetch := &cobra.Command{
		Use:   "fetch LOGID...",
		Short: "Download logs from the archive and store them",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withService(cmd.Context(), log, func(ctx context.Context, svc *service.GameService) error {
				return runFetch(ctx, cmd.OutOrStdout(), svc, args, opts.refresh)
			})
		},
	}
	fetch.Flags().BoolVar(&opts.refresh, "refresh", false, "download again even when already stored")

	root.AddCommand(decode, importCmd, fetch)
	return root
}

func runDecode(w io.Writer, log zerolog.Logger, format string, paths []string) error {
	var write func(io.Writer, any) error
	separator := ""
	switch strings.ToLower(format) {
	case "yaml", "yml":
		write, separator = render.YAML, "---"
	case "json":
		write = render.JSON
	default:
		return fmt.Errorf("unknown format %q", format)
	}

	dec := decoder.New(log)
	for i, path := range paths {
		game, err := decodeFile(dec, path)
		if err != nil {
			return err
		}
		if i > 0 && separator != "" {
			fmt.Fprintln(w, separator)
		}
		doc := render.FromGame(game)
		doc.Source = filepath.Base(path)
		if err := write(w, doc); err != nil {
			return err
		}
		log.Info().Str("file", path).Int("rounds", len(game.Rounds)).Msg("decoded")
	}
	return nil
}

func decodeFile(dec *decoder.Decoder, path string) (*domain.Game, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	game, err := dec.DecodeReader(io.LimitReader(f, constants.MaxLogBytes))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return game, nil
}

// withService opens the configured database for the duration of fn.
func withService(ctx context.Context, log zerolog.Logger, fn func(context.Context, *service.GameService) error) error {
	cfg, err := config.Load(log)
	if err != nil {
		return err
	}

	sqlDB, err := database.New(cfg, log)
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	gameCache, err := cache.New(cfg, log)
	if err != nil {
		return err
	}
	defer gameCache.Close()

	repo := repository.NewGameRepository(sqlDB, db.New(sqlDB), log)
	archive := api.NewArchiveClient(cfg, log)
	svc := service.NewGameService(cfg, repo, gameCache, archive, decoder.New(log), log)

	return fn(ctx, svc)
}

func runImport(ctx context.Context, w io.Writer, svc *service.GameService, paths []string) error {
	for _, path := range paths {
		f, err := os.Open(path)
		if err != nil {
			return err
		}
		stored, err := svc.Import(ctx, filepath.Base(path), io.LimitReader(f, constants.MaxLogBytes))
		f.Close()
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		fmt.Fprintf(w, "%s\t%s\t%d rounds\n", stored.ID, stored.Source, stored.RoundCount)
	}
	return nil
}

func runFetch(ctx context.Context, w io.Writer, svc *service.GameService, logIDs []string, refresh bool) error {
	results, err := svc.FetchBatch(ctx, logIDs, refresh)
	if err != nil {
		return err
	}

	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
			fmt.Fprintf(w, "%s\tfailed: %v\n", r.LogID, r.Err)
			continue
		}
		fmt.Fprintf(w, "%s\t%s\t%d rounds\n", r.Game.ID, r.LogID, r.Game.RoundCount)
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d logs failed", failed, len(results))
	}
	return nil
}
