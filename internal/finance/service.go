package finance

import (
	"context"
	"log/slog"
	"time"

	errors "github.com/alphagrips/academy-backend/internal"
	financeDatamodel "github.com/alphagrips/academy-backend/internal/core/datamodel/finance"
	"github.com/alphagrips/academy-backend/internal/core/events"
)

// FeeScheduleView is a schedule row with the category name joined in.
type FeeScheduleView struct {
	ID            int64     `json:"id"`
	AcademyID     int64     `json:"academy_id"`
	CategoryID    int64     `json:"category_id"`
	CategoryName  string    `json:"category_name"`
	MonthlyFee    int64     `json:"monthly_fee"`
	EffectiveFrom time.Time `json:"effective_from"`
	IsActive      bool      `json:"is_active"`
}

// OverrideView is the current per-player override with the player name joined
// in, for the player fee master screen.
type OverrideView struct {
	ID            int64      `json:"id"`
	PlayerID      int64      `json:"player_id"`
	PlayerName    string     `json:"player_name"`
	AcademyID     int64      `json:"academy_id"`
	CourtFee      int64      `json:"court_fee"`
	ShuttleFee    int64      `json:"shuttle_fee"`
	TotalFee      int64      `json:"total_fee"`
	EffectiveFrom time.Time  `json:"effective_from"`
	EffectiveTo   *time.Time `json:"effective_to,omitempty"`
}

// PaymentView is a payments_log row with the player name joined in.
type PaymentView struct {
	ID           int64     `json:"id"`
	PlayerID     int64     `json:"player_id"`
	PlayerName   string    `json:"player_name"`
	AcademyID    int64     `json:"academy_id"`
	PaymentDate  time.Time `json:"payment_date"`
	Amount       int64     `json:"amount"`
	AppliedMonth string    `json:"applied_month"`
	Mode         string    `json:"mode"`
	ReferenceNo  string    `json:"reference_no"`
	Remarks      string    `json:"remarks"`
}

type RepositoryAPI interface {
	FetchLedgerInput(academyID int64) (*LedgerInput, error)

	ListFeeSchedules(academyID int64) ([]*FeeScheduleView, error)
	ListSchedulesForCategory(academyID, categoryID int64) ([]*financeDatamodel.CategoryFeeSchedule, error)
	CreateFeeSchedule(s *financeDatamodel.CategoryFeeSchedule) error

	ListCurrentOverrides(academyID int64) ([]*OverrideView, error)
	ReplaceOverride(next *financeDatamodel.PlayerFeeOverride) error

	CreatePayment(p *financeDatamodel.PaymentLog) error
	ListPayments(academyID int64) ([]*PaymentView, error)
	GetPayment(id int64) (*financeDatamodel.PaymentLog, error)
	DeletePayment(id int64) error
}

type Service struct {
	repo     RepositoryAPI
	eventBus *events.EventBus
	logger   *slog.Logger
	now      func() time.Time
}

func NewService(repo RepositoryAPI, eventBus *events.EventBus, logger *slog.Logger) *Service {
	return &Service{
		repo:     repo,
		eventBus: eventBus,
		logger:   logger,
		now:      time.Now,
	}
}

// Ledger builds the full receivable ledger for one academy.
func (s *Service) Ledger(user *errors.SessionUser, requestedAcademyID int64) ([]LedgerRow, error) {
	academyID, appErr := errors.ScopedAcademyID(user, requestedAcademyID)
	if appErr != nil {
		return nil, appErr
	}
	return s.buildLedger(academyID)
}

func (s *Service) buildLedger(academyID int64) ([]LedgerRow, error) {
	input, err := s.repo.FetchLedgerInput(academyID)
	if err != nil {
		s.logger.Error("failed to fetch ledger input", "error", err, "academy_id", academyID)
		return nil, err
	}
	input.Now = s.now()
	return BuildLedger(*input), nil
}

// PendingFor returns the outstanding balance for one (player, month) pair.
// Used by the online payment flow to size the gateway order.
func (s *Service) PendingFor(academyID, playerID int64, month string) (int64, error) {
	rows, err := s.buildLedger(academyID)
	if err != nil {
		return 0, err
	}
	for _, r := range rows {
		if r.PlayerID == playerID && r.Month == month {
			return r.Pending, nil
		}
	}
	return 0, errors.ErrNoPendingAmount
}

// ResolveMonthlyFee answers "what does this category charge for this month"
// straight from the versioned schedule.
func (s *Service) ResolveMonthlyFee(academyID, categoryID int64, month string) (int64, error) {
	if _, err := time.Parse("2006-01", month); err != nil {
		return 0, errors.NewValidationFieldError("month", "month must be in YYYY-MM format", errors.ErrCodeInvalidMonth)
	}
	schedules, err := s.repo.ListSchedulesForCategory(academyID, categoryID)
	if err != nil {
		return 0, err
	}
	fee, ok := ResolveScheduleFee(schedules, categoryID, month)
	if !ok {
		return 0, errors.ErrFeeScheduleNotFound
	}
	return fee, nil
}

func (s *Service) ListFeeSchedules(user *errors.SessionUser, requestedAcademyID int64) ([]*FeeScheduleView, error) {
	academyID, appErr := errors.ScopedAcademyID(user, requestedAcademyID)
	if appErr != nil {
		return nil, appErr
	}
	return s.repo.ListFeeSchedules(academyID)
}

func (s *Service) CreateFeeSchedule(user *errors.SessionUser, dto *CreateFeeScheduleDTO) (*financeDatamodel.CategoryFeeSchedule, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	academyID, appErr := errors.ScopedAcademyID(user, dto.AcademyID)
	if appErr != nil {
		return nil, appErr
	}

	row := &financeDatamodel.CategoryFeeSchedule{
		AcademyID:     academyID,
		CategoryID:    dto.CategoryID,
		MonthlyFee:    dto.MonthlyFee,
		EffectiveFrom: dto.EffectiveFromParsed,
		IsActive:      true,
	}
	if err := s.repo.CreateFeeSchedule(row); err != nil {
		s.logger.Error("failed to create fee schedule", "error", err, "academy_id", academyID, "category_id", dto.CategoryID)
		return nil, err
	}

	s.logger.Info("fee schedule created",
		"schedule_id", row.ID, "academy_id", academyID,
		"category_id", row.CategoryID, "monthly_fee", row.MonthlyFee,
		"effective_from", row.EffectiveFrom.Format("2006-01-02"))
	return row, nil
}

func (s *Service) ListPlayerOverrides(user *errors.SessionUser, requestedAcademyID int64) ([]*OverrideView, error) {
	academyID, appErr := errors.ScopedAcademyID(user, requestedAcademyID)
	if appErr != nil {
		return nil, appErr
	}
	return s.repo.ListCurrentOverrides(academyID)
}

// SetOverride replaces the player's current fee override. The repository
// closes the prior current row and inserts the new one in a single
// transaction, so a crash can never leave two current rows.
func (s *Service) SetOverride(user *errors.SessionUser, playerID int64, dto *SetOverrideDTO) (*financeDatamodel.PlayerFeeOverride, error) {
	academyID, appErr := errors.ScopedAcademyID(user, dto.AcademyID)
	if appErr != nil {
		return nil, appErr
	}

	next := &financeDatamodel.PlayerFeeOverride{
		PlayerID:      playerID,
		AcademyID:     academyID,
		CourtFee:      dto.CourtFee,
		ShuttleFee:    dto.ShuttleFee,
		TotalFee:      dto.CourtFee + dto.ShuttleFee,
		EffectiveFrom: s.now(),
		IsCurrent:     true,
	}
	if err := s.repo.ReplaceOverride(next); err != nil {
		s.logger.Error("failed to replace fee override", "error", err, "player_id", playerID, "academy_id", academyID)
		return nil, err
	}

	s.logger.Info("player fee override set",
		"override_id", next.ID, "player_id", playerID,
		"academy_id", academyID, "total_fee", next.TotalFee)
	return next, nil
}

func (s *Service) RecordManualPayment(ctx context.Context, user *errors.SessionUser, dto *RecordPaymentDTO) (*financeDatamodel.PaymentLog, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	academyID, appErr := errors.ScopedAcademyID(user, dto.AcademyID)
	if appErr != nil {
		return nil, appErr
	}

	mode := dto.Mode
	if mode == "" {
		mode = financeDatamodel.ModeCash
	}

	row := &financeDatamodel.PaymentLog{
		PlayerID:     dto.PlayerID,
		AcademyID:    academyID,
		PaymentDate:  dto.PaymentDateParsed,
		Amount:       dto.Amount,
		AppliedMonth: dto.Month,
		Mode:         mode,
		Remarks:      dto.Remarks,
	}
	if err := s.repo.CreatePayment(row); err != nil {
		s.logger.Error("failed to record payment", "error", err, "player_id", dto.PlayerID, "academy_id", academyID)
		return nil, err
	}

	s.eventBus.Publish(ctx, events.NewPaymentRecordedEvent(
		row.ID, row.PlayerID, row.AcademyID, row.Amount, row.AppliedMonth, row.Mode))

	s.logger.Info("payment recorded",
		"payment_id", row.ID, "player_id", row.PlayerID,
		"academy_id", academyID, "amount", row.Amount,
		"month", row.AppliedMonth, "mode", row.Mode)
	return row, nil
}

func (s *Service) ListPayments(user *errors.SessionUser, requestedAcademyID int64) ([]*PaymentView, error) {
	academyID, appErr := errors.ScopedAcademyID(user, requestedAcademyID)
	if appErr != nil {
		return nil, appErr
	}
	return s.repo.ListPayments(academyID)
}

// DeletePayment is a hard delete, privileged at the route layer. The ledger
// recomputes from surviving rows on the next read.
func (s *Service) DeletePayment(user *errors.SessionUser, id int64) error {
	row, err := s.repo.GetPayment(id)
	if err != nil {
		return errors.ErrPaymentNotFound
	}

	if user.Role != errors.RoleSuperAdmin && row.AcademyID != user.AcademyID {
		return errors.ErrAccessDenied
	}

	if err := s.repo.DeletePayment(id); err != nil {
		s.logger.Error("failed to delete payment", "error", err, "payment_id", id)
		return err
	}

	s.logger.Info("payment deleted", "payment_id", id, "player_id", row.PlayerID, "amount", row.Amount)
	return nil
}

func (s *Service) Dashboard(user *errors.SessionUser, requestedAcademyID int64) (*Summary, error) {
	academyID, appErr := errors.ScopedAcademyID(user, requestedAcademyID)
	if appErr != nil {
		return nil, appErr
	}
	rows, err := s.buildLedger(academyID)
	if err != nil {
		return nil, err
	}
	summary := Summarize(rows)
	return &summary, nil
}

func (s *Service) MonthlyEfficiency(user *errors.SessionUser, requestedAcademyID int64) ([]MonthEfficiency, error) {
	academyID, appErr := errors.ScopedAcademyID(user, requestedAcademyID)
	if appErr != nil {
		return nil, appErr
	}
	rows, err := s.buildLedger(academyID)
	if err != nil {
		return nil, err
	}
	return CollectionEfficiency(rows), nil
}

func (s *Service) Defaulters(user *errors.SessionUser, requestedAcademyID int64, limit int) ([]Defaulter, error) {
	academyID, appErr := errors.ScopedAcademyID(user, requestedAcademyID)
	if appErr != nil {
		return nil, appErr
	}
	rows, err := s.buildLedger(academyID)
	if err != nil {
		return nil, err
	}
	return TopDefaulters(rows, limit), nil
}
