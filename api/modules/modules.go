package modules

import (
	"context"
	"fmt"
	"highscores/api/handlers"
	"highscores/pkg/config"
	"highscores/pkg/database"
	"highscores/pkg/logger"
	"highscores/pkg/metrics"
	"highscores/pkg/redis"
)

// ModuleDependencies is shared by every handler of the module.
type ModuleDependencies struct {
	Config    *config.Config
	Connector database.Connector
	Redis     *redis.RedisClient
	Logger    *logger.Logger
	Metrics   *metrics.LeaderboardMetrics
}

// Module containing the necessary handlers.
type Module struct {
	Deps               *ModuleDependencies
	LeaderboardHandler *handlers.LeaderboardHandler
}

// Create a new module with all the necessary handlers initialized.
// The Redis cache is optional: a server that doesn't answer only disables it.
func NewModule(ctx context.Context, cfg *config.Config, log *logger.Logger) (*Module, error) {
	if cfg == nil {
		return nil, fmt.Errorf("couldn't start the module: configuration is nil")
	}

	deps := &ModuleDependencies{
		Config:    cfg,
		Connector: database.NewConnector(cfg.Database),
		Logger:    log,
		Metrics:   metrics.NewLeaderboardMetrics(),
	}

	if cfg.Redis.Enabled() && cfg.Leaderboard.CacheTTL > 0 {
		client, err := redis.NewClient(ctx, cfg.Redis)
		if err != nil {
			log.Errorf("Leaderboard cache disabled: %v", err)
		} else {
			deps.Redis = client
		}
	}

	return &Module{
		Deps:               deps,
		LeaderboardHandler: initializeLeaderboardHandler(deps),
	}, nil
}

// Close releases the long lived clients of the module.
func (m *Module) Close() error {
	if m.Deps.Redis != nil {
		return m.Deps.Redis.Close()
	}
	return nil
}
