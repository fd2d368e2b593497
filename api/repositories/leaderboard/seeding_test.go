package repositories

import (
	"fmt"
	"highscores/pkg/database/models"
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// Number of ranked players seeded for BR.
const brazilPlayers = 25

func namePtr(name string) *string {
	return &name
}

// brazilPlayerId returns the id of the BR player seeded at the given 1-based position.
func brazilPlayerId(position int) string {
	return fmt.Sprintf("br-%02d", position)
}

// brazilScore returns the score of the BR player seeded at the given 1-based position.
func brazilScore(position int) int64 {
	return int64((brazilPlayers - position + 1) * 100)
}

func seedLeaderboardTestData(t *testing.T, db *gorm.DB) {
	t.Helper()

	// Clean up existing data
	require.NoError(t, db.Exec("TRUNCATE TABLE player_activities, players").Error)

	players := []*models.Player{
		{PlayerId: "us-a", PName: namePtr("Alice"), CountryCode: "US"},
		{PlayerId: "us-b", PName: nil, CountryCode: "US"},
		{PlayerId: "us-c", PName: namePtr("Carol"), CountryCode: "US"},
		{PlayerId: "us-unranked", PName: namePtr("Nobody"), CountryCode: "US"},
		{PlayerId: "de-a", PName: namePtr("Anna"), CountryCode: "DE"},
		{PlayerId: "de-b", PName: namePtr("Bernd"), CountryCode: "DE"},
		{PlayerId: "de-c", PName: namePtr("Clara"), CountryCode: "DE"},
		{PlayerId: "de-d", PName: namePtr(""), CountryCode: "DE"},
	}

	activities := []*models.PlayerActivity{
		{PlayerId: "us-a", HighScore: 100},
		{PlayerId: "us-b", HighScore: 90},
		{PlayerId: "us-c", HighScore: 80},
		{PlayerId: "de-a", HighScore: 50},
		{PlayerId: "de-b", HighScore: 70},
		{PlayerId: "de-c", HighScore: 50},
		{PlayerId: "de-d", HighScore: 10},
	}

	faker := gofakeit.New(42)
	for position := 1; position <= brazilPlayers; position++ {
		players = append(players, &models.Player{
			PlayerId:    brazilPlayerId(position),
			PName:       namePtr(faker.Name()),
			CountryCode: "BR",
		})
		activities = append(activities, &models.PlayerActivity{
			PlayerId:  brazilPlayerId(position),
			HighScore: brazilScore(position),
		})
	}

	for _, p := range players {
		require.NoError(t, db.Create(p).Error)
	}

	for _, a := range activities {
		require.NoError(t, db.Omit("Player").Create(a).Error)
	}
}
