package filters

// Query parameters of the leaderboard request.
type LocalHighScoresParams struct {
	Type        string `form:"type"`
	PlayerId    string `form:"playerId"`
	CountryCode string `form:"countryCode"`
}

// NewLocalHighScoresParams reads the parameters from a query string map.
// Missing keys are left empty.
func NewLocalHighScoresParams(query map[string]string) LocalHighScoresParams {
	return LocalHighScoresParams{
		Type:        query["type"],
		PlayerId:    query["playerId"],
		CountryCode: query["countryCode"],
	}
}

// LocalHighScoresFilter is what the service needs to build the leaderboard.
type LocalHighScoresFilter struct {
	PlayerId    string
	CountryCode string
}

// NewLocalHighScoresFilter creates the service filter from the query params.
func NewLocalHighScoresFilter(qp LocalHighScoresParams) *LocalHighScoresFilter {
	return &LocalHighScoresFilter{
		PlayerId:    qp.PlayerId,
		CountryCode: qp.CountryCode,
	}
}
