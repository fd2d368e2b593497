package leaderboardservice

import (
	"encoding/json"
	"fmt"
	"highscores/api/dto"
	repositories "highscores/api/repositories/leaderboard"
	servicetestutil "highscores/api/services/testutil"
	"highscores/pkg/config"
	"highscores/pkg/logger"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const testCacheTTL = time.Minute

type testMocks struct {
	connector  *servicetestutil.MockConnector
	repository *servicetestutil.MockLeaderboardRepository
	redis      *servicetestutil.MockLeaderboardRedisClient
}

// Helper to initialize the service with mocks, with or without the cache.
func setupTestService(t *testing.T, withCache bool) (*LeaderboardService, *testMocks) {
	t.Helper()

	log, err := logger.CreateLogger(io.Discard, config.BucketConfiguration{})
	require.NoError(t, err)
	t.Cleanup(func() { log.Close() })

	mocks := &testMocks{
		connector:  new(servicetestutil.MockConnector),
		repository: new(servicetestutil.MockLeaderboardRepository),
		redis:      new(servicetestutil.MockLeaderboardRedisClient),
	}

	service := &LeaderboardService{
		connector: mocks.connector,
		logger:    log,
		newRepository: func(db *gorm.DB) repositories.LeaderboardRepository {
			return mocks.repository
		},
	}

	if withCache {
		service.redis = mocks.redis
		service.cacheTTL = testCacheTTL
	}

	return service, mocks
}

func namePtr(name string) *string {
	return &name
}

// Three ranked players, like a small country.
func createSmallCountryRows() []*repositories.ScoreRow {
	return []*repositories.ScoreRow{
		{PlayerId: "A", PName: namePtr("Alice"), HighScore: 100},
		{PlayerId: "B", PName: nil, HighScore: 90},
		{PlayerId: "C", PName: namePtr("Carol"), HighScore: 80},
	}
}

// A full top list, player p-01 first with 2500 points down to p-20 with 600.
func createFullTopRows() []*repositories.ScoreRow {
	rows := make([]*repositories.ScoreRow, 0, TopLimit)
	for i := 1; i <= TopLimit; i++ {
		rows = append(rows, &repositories.ScoreRow{
			PlayerId:  fmt.Sprintf("p-%02d", i),
			PName:     namePtr(fmt.Sprintf("Player %d", i)),
			HighScore: int64((26 - i) * 100),
		})
	}
	return rows
}

func createSmallCountryEntries() []*dto.LeaderboardEntry {
	return []*dto.LeaderboardEntry{
		{PlayerId: "A", PName: "Alice", HighScore: 100, Rank: 1},
		{PlayerId: "B", PName: "Unknown", HighScore: 90, Rank: 2},
		{PlayerId: "C", PName: "Carol", HighScore: 80, Rank: 3},
	}
}

// Expect the top list to be read from the store.
func expectTopScores(m *testMocks, countryCode string, result *servicetestutil.RepoResult[[]*repositories.ScoreRow]) {
	m.repository.On("GetTopScores", mock.Anything, countryCode, TopLimit).Return(result.Data, result.Err).Once()
}

// Marshal the rows the same way the service caches them.
func cachedRows(t *testing.T, rows []*repositories.ScoreRow) string {
	t.Helper()

	data, err := json.Marshal(rows)
	require.NoError(t, err)
	return string(data)
}

// Assert the expected returned results.
func assertLeaderboardResult(t *testing.T, result *dto.LocalHighScores, err error, expected *dto.LocalHighScores, expectedError error) {
	t.Helper()

	if expectedError != nil {
		assert.Error(t, err)
		assert.Contains(t, err.Error(), expectedError.Error())
		assert.Nil(t, result)
		return
	}

	require.NoError(t, err)
	assert.Equal(t, expected, result)
}

// Ranks are strictly increasing down the list, so none repeats.
func assertConsistentRanks(t *testing.T, result *dto.LocalHighScores) {
	t.Helper()

	for i := 1; i < len(result.TopScores); i++ {
		assert.Less(t, result.TopScores[i-1].Rank, result.TopScores[i].Rank)
	}
}
