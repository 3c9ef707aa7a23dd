package postgres

import (
	"time"

	matchDatamodel "github.com/alphagrips/academy-backend/internal/core/datamodel/match"
	"github.com/alphagrips/academy-backend/internal/match"
	"gorm.io/gorm"
)

type MatchRepository struct {
	db *gorm.DB
}

func NewMatchRepository(db *gorm.DB) match.RepositoryAPI {
	return &MatchRepository{db: db}
}

// matchRow is the flat scan target; the nested player refs are assembled in
// toMatch.
type matchRow struct {
	ID          int64
	AcademyID   int64
	MatchDate   time.Time
	ScoreRaw    string
	Player1ID   int64
	Player1Name string
	Player2ID   int64
	Player2Name string
}

func toMatch(r *matchRow) *match.Match {
	return &match.Match{
		ID:        r.ID,
		AcademyID: r.AcademyID,
		MatchDate: r.MatchDate,
		ScoreRaw:  r.ScoreRaw,
		Player1:   match.PlayerRef{ID: r.Player1ID, Name: r.Player1Name},
		Player2:   match.PlayerRef{ID: r.Player2ID, Name: r.Player2Name},
	}
}

const matchSelect = `matches_input.id, matches_input.academy_id, matches_input.match_date, matches_input.score_raw,
matches_input.player1_id, p1.name AS player1_name,
matches_input.player2_id, p2.name AS player2_name`

func (r *MatchRepository) baseQuery() *gorm.DB {
	return r.db.Table("matches_input").
		Select(matchSelect).
		Joins("LEFT JOIN players p1 ON p1.id = matches_input.player1_id").
		Joins("LEFT JOIN players p2 ON p2.id = matches_input.player2_id")
}

func (r *MatchRepository) scanMatches(q *gorm.DB) ([]*match.Match, error) {
	var rows []*matchRow
	if err := q.Scan(&rows).Error; err != nil {
		return nil, err
	}
	matches := make([]*match.Match, 0, len(rows))
	for _, row := range rows {
		matches = append(matches, toMatch(row))
	}
	return matches, nil
}

func (r *MatchRepository) ListByAcademy(academyID int64) ([]*match.Match, error) {
	return r.scanMatches(r.baseQuery().
		Where("matches_input.academy_id = ?", academyID).
		Order("matches_input.match_date DESC, matches_input.id DESC"))
}

func (r *MatchRepository) ListAll() ([]*match.Match, error) {
	return r.scanMatches(r.baseQuery().
		Order("matches_input.match_date DESC, matches_input.id DESC"))
}

func (r *MatchRepository) GetByID(id int64) (*matchDatamodel.Match, error) {
	var m matchDatamodel.Match
	if err := r.db.Where("id = ?", id).First(&m).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *MatchRepository) Create(m *matchDatamodel.Match) error {
	return r.db.Create(m).Error
}

func (r *MatchRepository) Delete(id int64) error {
	return r.db.Delete(&matchDatamodel.Match{}, id).Error
}

func (r *MatchRepository) ListRankings(academyID int64) ([]*match.Ranking, error) {
	var rankings []*match.Ranking
	err := r.db.Table("player_rankings").
		Where("academy_id = ?", academyID).
		Order("category ASC, rank ASC").
		Scan(&rankings).Error
	return rankings, err
}

func (r *MatchRepository) ListAllRankings() ([]*match.Ranking, error) {
	var rankings []*match.Ranking
	err := r.db.Table("player_rankings").
		Order("category ASC, rank ASC").
		Scan(&rankings).Error
	return rankings, err
}

func (r *MatchRepository) MatchDates(academyID int64) ([]string, error) {
	var dates []string
	err := r.db.Raw(`SELECT DISTINCT to_char(match_date, 'YYYY-MM-DD') AS match_day
		FROM matches_input WHERE academy_id = ? ORDER BY match_day DESC`, academyID).
		Scan(&dates).Error
	return dates, err
}

func (r *MatchRepository) CategoriesOnDate(academyID int64, date time.Time) ([]*match.MatrixCategory, error) {
	var categories []*match.MatrixCategory
	err := r.db.Table("matches_input").
		Select("DISTINCT category_master.id, category_master.name").
		Joins("JOIN players p1 ON p1.id = matches_input.player1_id").
		Joins("JOIN category_master ON category_master.id = p1.category_id").
		Where("matches_input.academy_id = ? AND matches_input.match_date = ?", academyID, date).
		Order("category_master.name ASC").
		Scan(&categories).Error
	return categories, err
}

func (r *MatchRepository) MatchesOnDate(academyID int64, date time.Time, categoryID int64) ([]*match.Match, error) {
	return r.scanMatches(r.baseQuery().
		Where("matches_input.academy_id = ? AND matches_input.match_date = ? AND p1.category_id = ?",
			academyID, date, categoryID).
		Order("matches_input.id ASC"))
}
