package messages

const (
	CouldNotGetHighScore = "couldn't get the high score of player %s"
	CouldNotGetRank      = "couldn't get the rank of player %s"
	CouldNotGetTopScores = "couldn't get the top scores for country %s"
	FiltersNotNil        = "filters can't be nil"
	InternalServerError  = "Internal server error"
	InvalidRequestType   = "Invalid request type"
	LocalHighScoresType  = "localHighScores"
	UnknownPlayerName    = "Unknown"
)
