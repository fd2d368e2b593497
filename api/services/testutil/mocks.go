package testutil

import (
	"context"
	"highscores/api/dto"
	"highscores/api/filters"
	repositories "highscores/api/repositories/leaderboard"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

// Assert the expectations of all mocks.
func VerifyAllMocks(t *testing.T, mocks ...any) {
	t.Helper()

	for _, m := range mocks {
		if mockObj, ok := m.(interface{ AssertExpectations(mock.TestingT) bool }); ok {
			mockObj.AssertExpectations(t)
		}
	}
}

// ============================================================================
// Mock Implementations used on the Leaderboard service tests.
// ============================================================================

// Leaderboard repository mock implementation.
type MockLeaderboardRepository struct {
	mock.Mock
}

func (m *MockLeaderboardRepository) GetTopScores(ctx context.Context, countryCode string, limit int) ([]*repositories.ScoreRow, error) {
	args := m.Called(ctx, countryCode, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*repositories.ScoreRow), args.Error(1)
}

func (m *MockLeaderboardRepository) GetPlayerHighScore(ctx context.Context, playerId string, countryCode string) (int64, bool, error) {
	args := m.Called(ctx, playerId, countryCode)
	return args.Get(0).(int64), args.Bool(1), args.Error(2)
}

func (m *MockLeaderboardRepository) GetPlayerRank(ctx context.Context, playerId string, countryCode string, highScore int64) (int64, error) {
	args := m.Called(ctx, playerId, countryCode, highScore)
	return args.Get(0).(int64), args.Error(1)
}

// Connector mock implementation.
// The callback runs on an empty gorm handle, the repository is expected to be mocked too.
type MockConnector struct {
	mock.Mock
}

func (m *MockConnector) WithConnection(ctx context.Context, fn func(db *gorm.DB) error) error {
	args := m.Called(ctx)
	if err := args.Error(0); err != nil {
		return err
	}
	return fn(new(gorm.DB))
}

// Redis client mock implementation.
type MockLeaderboardRedisClient struct {
	mock.Mock
}

func (m *MockLeaderboardRedisClient) Get(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.Get(0).(string), args.Error(1)
}

func (m *MockLeaderboardRedisClient) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	args := m.Called(ctx, key, value, ttl)
	return args.Error(0)
}

// ============================================================================
// Mock Implementations used on the Leaderboard handler tests.
// ============================================================================

// Leaderboard service mock implementation.
type MockLeaderboardService struct {
	mock.Mock
}

func (m *MockLeaderboardService) GetLocalHighScores(ctx context.Context, filters *filters.LocalHighScoresFilter) (*dto.LocalHighScores, error) {
	args := m.Called(ctx, filters)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.LocalHighScores), args.Error(1)
}
