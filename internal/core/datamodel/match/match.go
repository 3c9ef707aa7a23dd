package match

import "time"

// Match is a raw match entry. ScoreRaw is free text exactly as entered by the
// coach; the ranking pipeline that digests it lives outside this service.
type Match struct {
	ID        int64     `gorm:"primaryKey"`
	AcademyID int64     `gorm:"column:academy_id;not null;index"`
	Player1ID int64     `gorm:"column:player1_id;not null"`
	Player2ID int64     `gorm:"column:player2_id;not null"`
	MatchDate time.Time `gorm:"column:match_date;not null;index"`
	ScoreRaw  string    `gorm:"column:score_raw"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (Match) TableName() string { return "matches_input" }

// PlayerRanking is a read model kept current by the ranking pipeline; this
// service only queries it.
type PlayerRanking struct {
	ID         int64     `gorm:"primaryKey"`
	AcademyID  int64     `gorm:"column:academy_id;not null;index"`
	Category   string    `gorm:"column:category;not null"`
	PlayerID   int64     `gorm:"column:player_id;not null"`
	PlayerName string    `gorm:"column:player_name;not null"`
	Points     int       `gorm:"column:points;default:0"`
	Rank       int       `gorm:"column:rank;default:0"`
	RatedAt    time.Time `gorm:"column:rated_at"`
}
