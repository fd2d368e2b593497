package repositories

import (
	"context"
	"fmt"
	"highscores/pkg/messages"

	"gorm.io/gorm"
)

// LeaderboardRepository is the public interface for reading the country leaderboards.
type LeaderboardRepository interface {
	GetTopScores(ctx context.Context, countryCode string, limit int) ([]*ScoreRow, error)
	GetPlayerHighScore(ctx context.Context, playerId string, countryCode string) (int64, bool, error)
	GetPlayerRank(ctx context.Context, playerId string, countryCode string, highScore int64) (int64, error)
}

// leaderboardRepository repository structure.
type leaderboardRepository struct {
	db *gorm.DB
}

// NewLeaderboardRepository creates a leaderboard repository.
func NewLeaderboardRepository(db *gorm.DB) LeaderboardRepository {
	return &leaderboardRepository{db: db}
}

// ScoreRow is a player joined with its high score.
type ScoreRow struct {
	PlayerId  string
	PName     *string
	HighScore int64
}

// GetTopScores returns the best scores of a country, best first.
// Equal scores are ordered by player id so the order is stable between calls.
func (lr *leaderboardRepository) GetTopScores(ctx context.Context, countryCode string, limit int) ([]*ScoreRow, error) {
	var rows []*ScoreRow

	err := lr.db.WithContext(ctx).
		Table("players p").
		Select("p.player_id, p.p_name, h.high_score").
		Joins("JOIN player_activities h ON p.player_id = h.player_id").
		Where("p.country_code = ?", countryCode).
		Order("h.high_score DESC, p.player_id ASC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf(messages.CouldNotGetTopScores+": %w", countryCode, err)
	}

	return rows, nil
}

// GetPlayerHighScore returns the score of a player in the given country.
// The boolean is false when the player has no score there.
func (lr *leaderboardRepository) GetPlayerHighScore(ctx context.Context, playerId string, countryCode string) (int64, bool, error) {
	var scores []int64

	err := lr.db.WithContext(ctx).
		Table("players p").
		Joins("JOIN player_activities h ON p.player_id = h.player_id").
		Where("p.player_id = ? AND p.country_code = ?", playerId, countryCode).
		Limit(1).
		Pluck("h.high_score", &scores).Error
	if err != nil {
		return 0, false, fmt.Errorf(messages.CouldNotGetHighScore+": %w", playerId, err)
	}

	if len(scores) == 0 {
		return 0, false, nil
	}

	return scores[0], true, nil
}

// GetPlayerRank returns the 1-based position of the player in the country ordering.
// It counts everyone ordered before the player: higher scores, and equal scores with a smaller player id.
func (lr *leaderboardRepository) GetPlayerRank(ctx context.Context, playerId string, countryCode string, highScore int64) (int64, error) {
	var ahead int64

	err := lr.db.WithContext(ctx).
		Table("player_activities h").
		Joins("JOIN players p ON p.player_id = h.player_id").
		Where("p.country_code = ?", countryCode).
		Where("(h.high_score > ? OR (h.high_score = ? AND h.player_id < ?))", highScore, highScore, playerId).
		Count(&ahead).Error
	if err != nil {
		return 0, fmt.Errorf(messages.CouldNotGetRank+": %w", playerId, err)
	}

	return ahead + 1, nil
}
