package match

import (
	"time"

	errors "github.com/alphagrips/academy-backend/internal"
	"github.com/alphagrips/academy-backend/internal/core/common/validation"
)

type CreateMatchDTO struct {
	AcademyID int64     `json:"academy_id"`
	Player1ID int64     `json:"player1_id"`
	Player2ID int64     `json:"player2_id"`
	MatchDate time.Time `json:"match_date"`
	ScoreRaw  string    `json:"score_raw"`
}

func (d *CreateMatchDTO) Validate() error {
	validator := validation.NewValidator()
	validator.Field("player1_id", d.Player1ID).Required()
	validator.Field("player2_id", d.Player2ID).Required()
	validator.Field("match_date", d.MatchDate).Required().NotFuture()
	validator.Field("score_raw", d.ScoreRaw).Required().MaxLength(120)

	if appErr := validator.Validate(); appErr != nil {
		return appErr
	}

	if d.Player1ID == d.Player2ID {
		return errors.NewValidationFieldError("player2_id", "a player cannot play against themselves", errors.ErrCodeValidationFailed)
	}
	return nil
}
