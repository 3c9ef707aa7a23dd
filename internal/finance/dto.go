package finance

import (
	"time"

	errors "github.com/alphagrips/academy-backend/internal"
	"github.com/alphagrips/academy-backend/internal/core/common/validation"
)

// Dates arrive from clients as bare YYYY-MM-DD strings; Validate parses them
// into the *Parsed fields.

type CreateFeeScheduleDTO struct {
	AcademyID     int64  `json:"academy_id"`
	CategoryID    int64  `json:"category_id"`
	MonthlyFee    int64  `json:"monthly_fee"`
	EffectiveFrom string `json:"effective_from"`

	EffectiveFromParsed time.Time `json:"-"`
}

func (d *CreateFeeScheduleDTO) Validate() error {
	validator := validation.NewValidator()
	validator.Field("category_id", d.CategoryID).Required()
	validator.Field("monthly_fee", d.MonthlyFee).Required()
	validator.Field("effective_from", d.EffectiveFrom).Required()

	if appErr := validator.Validate(); appErr != nil {
		return appErr
	}

	parsed, err := time.Parse("2006-01-02", d.EffectiveFrom)
	if err != nil {
		return errors.NewValidationFieldError("effective_from", "effective_from must be in YYYY-MM-DD format", errors.ErrCodeInvalidDate)
	}
	d.EffectiveFromParsed = parsed
	return nil
}

type SetOverrideDTO struct {
	AcademyID  int64 `json:"academy_id"`
	CourtFee   int64 `json:"court_fee"`
	ShuttleFee int64 `json:"shuttle_fee"`
}

// RecordPaymentDTO is a manual ledger entry. Amount is deliberately not
// range-checked: negative and zero amounts are valid adjustments and refunds.
type RecordPaymentDTO struct {
	PlayerID    int64  `json:"player_id"`
	AcademyID   int64  `json:"academy_id"`
	PaymentDate string `json:"payment_date"`
	Amount      int64  `json:"amount"`
	Month       string `json:"month"`
	Mode        string `json:"mode"`
	Remarks     string `json:"remarks"`

	PaymentDateParsed time.Time `json:"-"`
}

func (d *RecordPaymentDTO) Validate() error {
	validator := validation.NewValidator()
	validator.Field("player_id", d.PlayerID).Required()
	validator.Field("payment_date", d.PaymentDate).Required()
	validator.Field("month", d.Month).Required().Month()

	if appErr := validator.Validate(); appErr != nil {
		return appErr
	}

	parsed, err := time.Parse("2006-01-02", d.PaymentDate)
	if err != nil {
		return errors.NewValidationFieldError("payment_date", "payment_date must be in YYYY-MM-DD format", errors.ErrCodeInvalidDate)
	}
	d.PaymentDateParsed = parsed
	return nil
}
