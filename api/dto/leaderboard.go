package dto

import (
	repositories "highscores/api/repositories/leaderboard"
	"highscores/pkg/messages"
)

// Sentinel rank and score of a player without a score in the country.
const NotRanked = -1

// LeaderboardEntry is a single line of the leaderboard.
type LeaderboardEntry struct {
	PlayerId  string `json:"playerId"`
	PName     string `json:"pName"`
	HighScore int64  `json:"highScore"`
	Rank      int64  `json:"rank"`
}

// LocalHighScores is the country leaderboard plus the standing of the requesting player.
type LocalHighScores struct {
	TopScores    []*LeaderboardEntry `json:"topScores"`
	OwnRank      int64               `json:"ownRank"`
	OwnHighScore int64               `json:"ownHighScore"`
}

// LocalHighScoresResponse is the success body sent to the caller.
type LocalHighScoresResponse struct {
	Op     string `json:"op"`
	Status string `json:"status"`
	*LocalHighScores
}

// NewLocalHighScoresResponse wraps the leaderboard into the success body.
func NewLocalHighScoresResponse(scores *LocalHighScores) *LocalHighScoresResponse {
	return &LocalHighScoresResponse{
		Op:              "GET",
		Status:          "OK",
		LocalHighScores: scores,
	}
}

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Message string `json:"message"`
}

// FromRepository converts a score row at the given 1-based position.
// The name only falls back to the placeholder when it is NULL.
func (e *LeaderboardEntry) FromRepository(row *repositories.ScoreRow, rank int64) *LeaderboardEntry {
	name := messages.UnknownPlayerName
	if row.PName != nil {
		name = *row.PName
	}

	return &LeaderboardEntry{
		PlayerId:  row.PlayerId,
		PName:     name,
		HighScore: row.HighScore,
		Rank:      rank,
	}
}

// FromRepositorySlice converts the rows keeping their order as the rank.
func (e *LeaderboardEntry) FromRepositorySlice(rows []*repositories.ScoreRow) []*LeaderboardEntry {
	entries := make([]*LeaderboardEntry, 0, len(rows)+1)
	for i, row := range rows {
		entries = append(entries, e.FromRepository(row, int64(i+1)))
	}
	return entries
}
