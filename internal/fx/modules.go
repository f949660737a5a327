package fx

import (
	"database/sql"

	"go.uber.org/fx"

	"mjlog/internal/api"
	"mjlog/internal/cache"
	"mjlog/internal/config"
	"mjlog/internal/database"
	"mjlog/internal/db"
	"mjlog/internal/decoder"
	"mjlog/internal/logger"
	"mjlog/internal/repository"
	"mjlog/internal/server"
	"mjlog/internal/service"
)

func ProvideQueries(sqlDB *sql.DB) *db.Queries {
	return db.New(sqlDB)
}

// ProvideFetcher exposes the archive client as the service's log source.
func ProvideFetcher(client *api.ArchiveClient) service.LogFetcher {
	return client
}

func applyLogLevel(cfg *config.Config) {
	logger.SetGlobalLevel(cfg.LogLevel)
}

var Module = fx.Options(
	logger.Module,
	config.Module,
	fx.Invoke(applyLogLevel),
	fx.Provide(database.New),
	fx.Provide(ProvideQueries),
	// repos
	fx.Provide(repository.NewGameRepository),
	fx.Provide(cache.New),
	// api client
	fx.Provide(api.NewArchiveClient),
	fx.Provide(ProvideFetcher),
	// svc
	fx.Provide(decoder.New),
	fx.Provide(service.NewGameService),
	// server
	fx.Provide(server.NewGameServer),
)
