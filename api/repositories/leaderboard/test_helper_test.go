package repositories

import "testing"

func getTopScoresExpectedResult(t *testing.T, testName string) []*ScoreRow {
	t.Helper()

	switch testName {
	case "unitedstates":
		return []*ScoreRow{
			{PlayerId: "us-a", PName: namePtr("Alice"), HighScore: 100},
			{PlayerId: "us-b", PName: nil, HighScore: 90},
			{PlayerId: "us-c", PName: namePtr("Carol"), HighScore: 80},
		}
	case "germanyties":
		return []*ScoreRow{
			{PlayerId: "de-b", PName: namePtr("Bernd"), HighScore: 70},
			{PlayerId: "de-a", PName: namePtr("Anna"), HighScore: 50},
			{PlayerId: "de-c", PName: namePtr("Clara"), HighScore: 50},
			{PlayerId: "de-d", PName: namePtr(""), HighScore: 10},
		}
	}

	return nil
}
