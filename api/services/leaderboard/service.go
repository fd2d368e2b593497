package leaderboardservice

import (
	"context"
	"encoding/json"
	"errors"
	"highscores/api/dto"
	"highscores/api/filters"
	repositories "highscores/api/repositories/leaderboard"
	"highscores/pkg/database"
	"highscores/pkg/logger"
	"highscores/pkg/messages"
	"time"

	"gorm.io/gorm"
)

const (
	// TopLimit is the size of the country top list.
	TopLimit = 20

	leaderboardCachePrefix = "leaderboard:local:"
	redisTimeout           = 200 * time.Millisecond
)

// LeaderboardRedisClient is the subset of Redis used to cache the top lists.
type LeaderboardRedisClient interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
}

// LeaderboardService builds the country leaderboards.
type LeaderboardService struct {
	connector     database.Connector
	redis         LeaderboardRedisClient
	cacheTTL      time.Duration
	logger        *logger.Logger
	newRepository func(db *gorm.DB) repositories.LeaderboardRepository
}

// LeaderboardServiceDeps is the dependency list for the leaderboard service.
// Redis is optional, the cache is used only with a client and a positive TTL.
type LeaderboardServiceDeps struct {
	Connector database.Connector
	Redis     LeaderboardRedisClient
	CacheTTL  time.Duration
	Logger    *logger.Logger
}

// NewLeaderboardService creates a leaderboard service.
func NewLeaderboardService(deps *LeaderboardServiceDeps) *LeaderboardService {
	return &LeaderboardService{
		connector:     deps.Connector,
		redis:         deps.Redis,
		cacheTTL:      deps.CacheTTL,
		logger:        deps.Logger,
		newRepository: repositories.NewLeaderboardRepository,
	}
}

// standing is where the requesting player stands in the country.
type standing struct {
	inTop     bool
	rank      int64
	highScore int64
}

// notRanked is the standing of a player without a score in the country.
var notRanked = standing{rank: dto.NotRanked, highScore: dto.NotRanked}

// GetLocalHighScores returns the country top list and the standing of the player.
// A single connection is used for every query and released before returning.
func (ls *LeaderboardService) GetLocalHighScores(ctx context.Context, filters *filters.LocalHighScoresFilter) (*dto.LocalHighScores, error) {
	if filters == nil {
		return nil, errors.New(messages.FiltersNotNil)
	}

	var result *dto.LocalHighScores
	err := ls.connector.WithConnection(ctx, func(db *gorm.DB) error {
		repository := ls.newRepository(db)

		top, cached, err := ls.getTopScores(ctx, repository, filters.CountryCode)
		if err != nil {
			return err
		}

		ls.logger.Infof("Fetched %d high scores for country code %s.", len(top), filters.CountryCode)

		own, err := ls.getStanding(ctx, repository, top, filters)
		if err != nil {
			return err
		}

		if cached {
			stale, err := ls.isStale(ctx, repository, own, filters)
			if err != nil {
				return err
			}

			// The list and the standing must come from the same state of the store.
			if stale {
				ls.logger.Infof("Cached top scores for country code %s are stale, reading them again.", filters.CountryCode)

				top, err = ls.readTopScores(ctx, repository, filters.CountryCode)
				if err != nil {
					return err
				}

				own, err = ls.getStanding(ctx, repository, top, filters)
				if err != nil {
					return err
				}
			}
		}

		result = ls.buildLeaderboard(top, own, filters)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

// getTopScores reads the top list from the cache, falling back to the store.
// The boolean reports a cache hit.
func (ls *LeaderboardService) getTopScores(ctx context.Context, repository repositories.LeaderboardRepository, countryCode string) ([]*repositories.ScoreRow, bool, error) {
	if cached := ls.getFromRedis(ctx, getLeaderboardKey(countryCode)); cached != nil {
		return cached, true, nil
	}

	top, err := ls.readTopScores(ctx, repository, countryCode)
	if err != nil {
		return nil, false, err
	}

	return top, false, nil
}

// readTopScores reads the top list from the store and refreshes the cache.
func (ls *LeaderboardService) readTopScores(ctx context.Context, repository repositories.LeaderboardRepository, countryCode string) ([]*repositories.ScoreRow, error) {
	top, err := repository.GetTopScores(ctx, countryCode, TopLimit)
	if err != nil {
		return nil, err
	}

	ls.populateCache(ctx, getLeaderboardKey(countryCode), top)

	return top, nil
}

// isStale checks a cached top list against the live standing of the player.
// A listed player must still have the listed score, and a player ranked
// inside the top must be listed.
func (ls *LeaderboardService) isStale(
	ctx context.Context,
	repository repositories.LeaderboardRepository,
	own standing,
	filters *filters.LocalHighScoresFilter,
) (bool, error) {
	if !own.inTop {
		return own.rank != dto.NotRanked && own.rank <= TopLimit, nil
	}

	highScore, found, err := repository.GetPlayerHighScore(ctx, filters.PlayerId, filters.CountryCode)
	if err != nil {
		return false, err
	}

	return !found || highScore != own.highScore, nil
}

// getStanding finds the player in the top list, or asks the store for its rank.
func (ls *LeaderboardService) getStanding(
	ctx context.Context,
	repository repositories.LeaderboardRepository,
	top []*repositories.ScoreRow,
	filters *filters.LocalHighScoresFilter,
) (standing, error) {
	for i, row := range top {
		if row.PlayerId == filters.PlayerId {
			return standing{inTop: true, rank: int64(i + 1), highScore: row.HighScore}, nil
		}
	}

	highScore, found, err := repository.GetPlayerHighScore(ctx, filters.PlayerId, filters.CountryCode)
	if err != nil {
		return standing{}, err
	}

	if !found {
		return notRanked, nil
	}

	rank, err := repository.GetPlayerRank(ctx, filters.PlayerId, filters.CountryCode, highScore)
	if err != nil {
		return standing{}, err
	}

	return standing{rank: rank, highScore: highScore}, nil
}

// buildLeaderboard maps the top list and appends the player when ranked outside of it.
func (ls *LeaderboardService) buildLeaderboard(top []*repositories.ScoreRow, own standing, filters *filters.LocalHighScoresFilter) *dto.LocalHighScores {
	var dtoHelper dto.LeaderboardEntry
	entries := dtoHelper.FromRepositorySlice(top)

	if !own.inTop && own.rank != dto.NotRanked {
		entries = append(entries, &dto.LeaderboardEntry{
			PlayerId:  filters.PlayerId,
			PName:     messages.UnknownPlayerName,
			HighScore: own.highScore,
			Rank:      own.rank,
		})

		ls.logger.Infof(
			"Player %s is outside the top %d for country %s but added with rank: %d",
			filters.PlayerId, TopLimit, filters.CountryCode, own.rank,
		)
	}

	return &dto.LocalHighScores{
		TopScores:    entries,
		OwnRank:      own.rank,
		OwnHighScore: own.highScore,
	}
}

// cacheEnabled reports if the top lists should go through Redis.
func (ls *LeaderboardService) cacheEnabled() bool {
	return ls.redis != nil && ls.cacheTTL > 0
}

// getFromRedis retrieves a cached top list, nil on any miss or failure.
func (ls *LeaderboardService) getFromRedis(ctx context.Context, key string) []*repositories.ScoreRow {
	if !ls.cacheEnabled() {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, redisTimeout)
	defer cancel()

	cached, err := ls.redis.Get(ctx, key)
	if err != nil || cached == "" {
		return nil
	}

	var top []*repositories.ScoreRow
	if err := json.Unmarshal([]byte(cached), &top); err != nil {
		return nil
	}

	return top
}

// populateCache saves the top list on Redis, failures are only logged.
func (ls *LeaderboardService) populateCache(ctx context.Context, key string, top []*repositories.ScoreRow) {
	if !ls.cacheEnabled() {
		return
	}

	data, err := json.Marshal(top)
	if err != nil {
		return
	}

	ctx, cancel := context.WithTimeout(ctx, redisTimeout)
	defer cancel()

	if err := ls.redis.Set(ctx, key, string(data), ls.cacheTTL); err != nil {
		ls.logger.Errorf("Couldn't cache the top scores on %s: %v", key, err)
	}
}

// getLeaderboardKey generates the cache key of a country.
func getLeaderboardKey(countryCode string) string {
	return leaderboardCachePrefix + countryCode
}
