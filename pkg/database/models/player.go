package models

// Player is a registered player. The name is optional.
type Player struct {
	PlayerId    string  `gorm:"primaryKey;type:varchar(64)"`
	PName       *string `gorm:"type:varchar(100)"`
	CountryCode string  `gorm:"type:varchar(8);index:idx_players_country_code;not null"`
}

// PlayerActivity holds the best score of a player.
// The primary key keeps a single high score per player.
type PlayerActivity struct {
	PlayerId  string `gorm:"primaryKey;type:varchar(64)"`
	Player    Player `gorm:"foreignKey:PlayerId;references:PlayerId"`
	HighScore int64  `gorm:"index:idx_player_activities_high_score;not null;default:0"`
}
