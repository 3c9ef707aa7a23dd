package postgres

import (
	"time"

	financeDatamodel "github.com/alphagrips/academy-backend/internal/core/datamodel/finance"
	"github.com/alphagrips/academy-backend/internal/payment"
	"gorm.io/gorm"
)

type PaymentRepository struct {
	db *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) payment.RepositoryAPI {
	return &PaymentRepository{db: db}
}

func (r *PaymentRepository) FindPendingByPlayerMonth(playerID, academyID int64, month string) (*financeDatamodel.PaymentLog, error) {
	var p financeDatamodel.PaymentLog
	err := r.db.Where("player_id = ? AND academy_id = ? AND applied_month = ? AND mode = ?",
		playerID, academyID, month, financeDatamodel.ModeOnlinePending).
		First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PaymentRepository) FindPendingByReference(orderID string) (*financeDatamodel.PaymentLog, error) {
	var p financeDatamodel.PaymentLog
	err := r.db.Where("reference_no = ? AND mode = ?", orderID, financeDatamodel.ModeOnlinePending).
		First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PaymentRepository) CreatePending(p *financeDatamodel.PaymentLog) error {
	return r.db.Create(p).Error
}

// ConfirmPending flips the pending entry to settled in one guarded update;
// the mode predicate makes replays and concurrent confirmations touch zero
// rows. Returns the number of rows flipped.
func (r *PaymentRepository) ConfirmPending(orderID, paymentID string) (int64, error) {
	result := r.db.Model(&financeDatamodel.PaymentLog{}).
		Where("reference_no = ? AND mode = ?", orderID, financeDatamodel.ModeOnlinePending).
		Updates(map[string]interface{}{
			"mode":         financeDatamodel.ModeOnline,
			"reference_no": paymentID,
		})
	return result.RowsAffected, result.Error
}

func (r *PaymentRepository) ListPendingOlderThan(cutoff time.Time) ([]*financeDatamodel.PaymentLog, error) {
	var entries []*financeDatamodel.PaymentLog
	err := r.db.Where("mode = ? AND created_at < ?", financeDatamodel.ModeOnlinePending, cutoff).
		Find(&entries).Error
	return entries, err
}

func (r *PaymentRepository) ExpirePending(id int64) error {
	return r.db.Model(&financeDatamodel.PaymentLog{}).
		Where("id = ? AND mode = ?", id, financeDatamodel.ModeOnlinePending).
		Update("mode", financeDatamodel.ModeOnlineExpired).Error
}
