package modules

import (
	"highscores/api/handlers"
	leaderboardservice "highscores/api/services/leaderboard"
)

func initializeLeaderboardHandler(deps *ModuleDependencies) *handlers.LeaderboardHandler {
	leaderboardDeps := &leaderboardservice.LeaderboardServiceDeps{
		Connector: deps.Connector,
		CacheTTL:  deps.Config.Leaderboard.CacheTTL,
		Logger:    deps.Logger,
	}

	// A nil *RedisClient would not be a nil interface.
	if deps.Redis != nil {
		leaderboardDeps.Redis = deps.Redis
	}

	leaderboardService := leaderboardservice.NewLeaderboardService(leaderboardDeps)

	leaderboardHandlerDeps := &handlers.LeaderboardHandlerDependencies{
		LeaderboardService: leaderboardService,
		Logger:             deps.Logger,
		Metrics:            deps.Metrics,
	}

	return handlers.NewLeaderboardHandler(leaderboardHandlerDeps)
}
