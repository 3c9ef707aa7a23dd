package match

import (
	"strings"
	"time"
)

// PlayerRef is the short player shape embedded in match responses.
type PlayerRef struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Match is the list/matrix view: the raw row with both players joined in.
type Match struct {
	ID        int64     `json:"id"`
	AcademyID int64     `json:"academy_id"`
	MatchDate time.Time `json:"match_date"`
	ScoreRaw  string    `json:"score_raw"`
	Player1   PlayerRef `json:"player1"`
	Player2   PlayerRef `json:"player2"`
	ResultP1  string    `json:"result_p1"`
	ResultP2  string    `json:"result_p2"`
}

// Ranking mirrors a player_rankings row.
type Ranking struct {
	ID         int64  `json:"id"`
	AcademyID  int64  `json:"academy_id"`
	Category   string `json:"category"`
	PlayerID   int64  `json:"player_id"`
	PlayerName string `json:"player_name"`
	Points     int    `json:"points"`
	Rank       int    `json:"rank"`
}

// MatrixCategory is a category that has at least one match on a given date.
type MatrixCategory struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// SplitScore divides a free-text score like "21-15" into each player's half.
// Anything that does not split cleanly is shown verbatim on both sides; the
// grid is a display aid, not a source of truth.
func SplitScore(raw string) (p1, p2 string) {
	parts := strings.SplitN(raw, "-", 2)
	if len(parts) != 2 {
		return raw, raw
	}
	return strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1])
}
