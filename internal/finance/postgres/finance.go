package postgres

import (
	"time"

	financeDatamodel "github.com/alphagrips/academy-backend/internal/core/datamodel/finance"
	"github.com/alphagrips/academy-backend/internal/finance"
	"gorm.io/gorm"
)

type FinanceRepository struct {
	db *gorm.DB
}

func NewFinanceRepository(db *gorm.DB) finance.RepositoryAPI {
	return &FinanceRepository{db: db}
}

// FetchLedgerInput loads everything the ledger builder needs for one academy
// in four queries. Callers set Now.
func (r *FinanceRepository) FetchLedgerInput(academyID int64) (*finance.LedgerInput, error) {
	input := &finance.LedgerInput{}

	err := r.db.Table("players").
		Select("players.id, players.name, players.category_id, category_master.name AS category_name").
		Joins("LEFT JOIN category_master ON category_master.id = players.category_id").
		Where("players.academy_id = ? AND players.is_active = true", academyID).
		Scan(&input.Players).Error
	if err != nil {
		return nil, err
	}

	if err := r.db.Where("academy_id = ?", academyID).
		Find(&input.Schedules).Error; err != nil {
		return nil, err
	}

	if err := r.db.Where("academy_id = ? AND is_current = true", academyID).
		Find(&input.Overrides).Error; err != nil {
		return nil, err
	}

	if err := r.db.Where("academy_id = ?", academyID).
		Find(&input.Payments).Error; err != nil {
		return nil, err
	}

	return input, nil
}

func (r *FinanceRepository) ListFeeSchedules(academyID int64) ([]*finance.FeeScheduleView, error) {
	var schedules []*finance.FeeScheduleView
	err := r.db.Table("category_fee_schedules").
		Select(`category_fee_schedules.id, category_fee_schedules.academy_id,
			category_fee_schedules.category_id, category_master.name AS category_name,
			category_fee_schedules.monthly_fee, category_fee_schedules.effective_from,
			category_fee_schedules.is_active`).
		Joins("LEFT JOIN category_master ON category_master.id = category_fee_schedules.category_id").
		Where("category_fee_schedules.academy_id = ?", academyID).
		Order("category_master.name ASC, category_fee_schedules.effective_from DESC").
		Scan(&schedules).Error
	return schedules, err
}

func (r *FinanceRepository) ListSchedulesForCategory(academyID, categoryID int64) ([]*financeDatamodel.CategoryFeeSchedule, error) {
	var schedules []*financeDatamodel.CategoryFeeSchedule
	err := r.db.Where("academy_id = ? AND category_id = ?", academyID, categoryID).
		Find(&schedules).Error
	return schedules, err
}

func (r *FinanceRepository) CreateFeeSchedule(s *financeDatamodel.CategoryFeeSchedule) error {
	return r.db.Create(s).Error
}

func (r *FinanceRepository) ListCurrentOverrides(academyID int64) ([]*finance.OverrideView, error) {
	var overrides []*finance.OverrideView
	err := r.db.Table("player_fee_overrides").
		Select(`player_fee_overrides.id, player_fee_overrides.player_id,
			players.name AS player_name, player_fee_overrides.academy_id,
			player_fee_overrides.court_fee, player_fee_overrides.shuttle_fee,
			player_fee_overrides.total_fee, player_fee_overrides.effective_from,
			player_fee_overrides.effective_to`).
		Joins("LEFT JOIN players ON players.id = player_fee_overrides.player_id").
		Where("player_fee_overrides.academy_id = ? AND player_fee_overrides.is_current = true", academyID).
		Order("players.name ASC").
		Scan(&overrides).Error
	return overrides, err
}

// ReplaceOverride closes the player's current override and inserts the new
// one atomically. A crash between the two writes can never strand the player
// with zero or two current rows.
func (r *FinanceRepository) ReplaceOverride(next *financeDatamodel.PlayerFeeOverride) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		now := time.Now()
		err := tx.Model(&financeDatamodel.PlayerFeeOverride{}).
			Where("player_id = ? AND academy_id = ? AND is_current = true", next.PlayerID, next.AcademyID).
			Updates(map[string]interface{}{"is_current": false, "effective_to": now}).Error
		if err != nil {
			return err
		}
		return tx.Create(next).Error
	})
}

func (r *FinanceRepository) CreatePayment(p *financeDatamodel.PaymentLog) error {
	return r.db.Create(p).Error
}

func (r *FinanceRepository) ListPayments(academyID int64) ([]*finance.PaymentView, error) {
	var payments []*finance.PaymentView
	err := r.db.Table("payments_log").
		Select(`payments_log.id, payments_log.player_id, players.name AS player_name,
			payments_log.academy_id, payments_log.payment_date, payments_log.amount,
			payments_log.applied_month, payments_log.mode, payments_log.reference_no,
			payments_log.remarks`).
		Joins("LEFT JOIN players ON players.id = payments_log.player_id").
		Where("payments_log.academy_id = ?", academyID).
		Order("payments_log.payment_date DESC, payments_log.id DESC").
		Scan(&payments).Error
	return payments, err
}

func (r *FinanceRepository) GetPayment(id int64) (*financeDatamodel.PaymentLog, error) {
	var p financeDatamodel.PaymentLog
	if err := r.db.Where("id = ?", id).First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *FinanceRepository) DeletePayment(id int64) error {
	return r.db.Delete(&financeDatamodel.PaymentLog{}, id).Error
}
