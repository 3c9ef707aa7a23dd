package match

import (
	"log/slog"
	"time"

	errors "github.com/alphagrips/academy-backend/internal"
	matchDatamodel "github.com/alphagrips/academy-backend/internal/core/datamodel/match"
)

type RepositoryAPI interface {
	ListByAcademy(academyID int64) ([]*Match, error)
	ListAll() ([]*Match, error)
	GetByID(id int64) (*matchDatamodel.Match, error)
	Create(m *matchDatamodel.Match) error
	Delete(id int64) error

	ListRankings(academyID int64) ([]*Ranking, error)
	ListAllRankings() ([]*Ranking, error)

	MatchDates(academyID int64) ([]string, error)
	CategoriesOnDate(academyID int64, date time.Time) ([]*MatrixCategory, error)
	MatchesOnDate(academyID int64, date time.Time, categoryID int64) ([]*Match, error)
}

type Service struct {
	repo   RepositoryAPI
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

func (s *Service) ListMatches(user *errors.SessionUser, requestedAcademyID int64) ([]*Match, error) {
	var (
		matches []*Match
		err     error
	)
	if user.Role == errors.RoleSuperAdmin && requestedAcademyID == 0 {
		matches, err = s.repo.ListAll()
	} else {
		academyID, appErr := errors.ScopedAcademyID(user, requestedAcademyID)
		if appErr != nil {
			return nil, appErr
		}
		matches, err = s.repo.ListByAcademy(academyID)
	}
	if err != nil {
		return nil, err
	}
	for _, m := range matches {
		m.ResultP1, m.ResultP2 = SplitScore(m.ScoreRaw)
	}
	return matches, nil
}

func (s *Service) CreateMatch(user *errors.SessionUser, dto *CreateMatchDTO) (*matchDatamodel.Match, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	academyID, appErr := errors.ScopedAcademyID(user, dto.AcademyID)
	if appErr != nil {
		return nil, appErr
	}

	row := &matchDatamodel.Match{
		AcademyID: academyID,
		Player1ID: dto.Player1ID,
		Player2ID: dto.Player2ID,
		MatchDate: dto.MatchDate,
		ScoreRaw:  dto.ScoreRaw,
	}
	if err := s.repo.Create(row); err != nil {
		s.logger.Error("failed to create match", "error", err, "academy_id", academyID)
		return nil, err
	}

	s.logger.Info("match recorded", "match_id", row.ID, "academy_id", academyID)
	return row, nil
}

func (s *Service) DeleteMatch(user *errors.SessionUser, id int64) error {
	row, err := s.repo.GetByID(id)
	if err != nil {
		return errors.ErrMatchNotFound
	}

	if user.Role != errors.RoleSuperAdmin && row.AcademyID != user.AcademyID {
		return errors.ErrAccessDenied
	}

	if err := s.repo.Delete(id); err != nil {
		s.logger.Error("failed to delete match", "error", err, "match_id", id)
		return err
	}

	s.logger.Info("match deleted", "match_id", id, "academy_id", row.AcademyID)
	return nil
}

func (s *Service) ListRankings(user *errors.SessionUser, requestedAcademyID int64) ([]*Ranking, error) {
	if user.Role == errors.RoleSuperAdmin && requestedAcademyID == 0 {
		return s.repo.ListAllRankings()
	}
	academyID, appErr := errors.ScopedAcademyID(user, requestedAcademyID)
	if appErr != nil {
		return nil, appErr
	}
	return s.repo.ListRankings(academyID)
}

// MatrixDates lists the distinct dates that have matches, newest first, for
// the date picker of the head-to-head grid.
func (s *Service) MatrixDates(user *errors.SessionUser, requestedAcademyID int64) ([]string, error) {
	academyID, appErr := errors.ScopedAcademyID(user, requestedAcademyID)
	if appErr != nil {
		return nil, appErr
	}
	return s.repo.MatchDates(academyID)
}

func (s *Service) MatrixCategories(user *errors.SessionUser, requestedAcademyID int64, date time.Time) ([]*MatrixCategory, error) {
	academyID, appErr := errors.ScopedAcademyID(user, requestedAcademyID)
	if appErr != nil {
		return nil, appErr
	}
	return s.repo.CategoriesOnDate(academyID, date)
}

func (s *Service) Matrix(user *errors.SessionUser, requestedAcademyID int64, date time.Time, categoryID int64) ([]*Match, error) {
	academyID, appErr := errors.ScopedAcademyID(user, requestedAcademyID)
	if appErr != nil {
		return nil, appErr
	}

	matches, err := s.repo.MatchesOnDate(academyID, date, categoryID)
	if err != nil {
		s.logger.Error("failed to load match matrix", "error", err, "academy_id", academyID, "category_id", categoryID)
		return nil, err
	}

	for _, m := range matches {
		m.ResultP1, m.ResultP2 = SplitScore(m.ScoreRaw)
	}
	return matches, nil
}
