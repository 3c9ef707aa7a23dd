package finance

import "time"

// Payment modes recorded in the ledger. Manual entries may carry any free-text
// mode; these constants cover the lifecycle the service itself drives.
const (
	ModeCash          = "Cash"
	ModeOnline        = "Online"
	ModeOnlinePending = "Online-Pending"
	ModeOnlineExpired = "Online-Expired"
)

// CategoryFeeSchedule is a versioned fee record. Multiple rows per category
// form the fee history; the resolver picks the latest active row with
// effective_from on or before the target month.
type CategoryFeeSchedule struct {
	ID            int64     `gorm:"primaryKey"`
	AcademyID     int64     `gorm:"column:academy_id;not null;index"`
	CategoryID    int64     `gorm:"column:category_id;not null;index"`
	MonthlyFee    int64     `gorm:"column:monthly_fee;not null"`
	EffectiveFrom time.Time `gorm:"column:effective_from;not null"`
	IsActive      bool      `gorm:"column:is_active;default:true"`
	CreatedAt     time.Time `gorm:"column:created_at;autoCreateTime"`
}

// PlayerFeeOverride supersedes the category schedule for one player. At most
// one row per (player, academy) has is_current = true.
type PlayerFeeOverride struct {
	ID            int64      `gorm:"primaryKey"`
	PlayerID      int64      `gorm:"column:player_id;not null;index"`
	AcademyID     int64      `gorm:"column:academy_id;not null;index"`
	CourtFee      int64      `gorm:"column:court_fee;not null"`
	ShuttleFee    int64      `gorm:"column:shuttle_fee;not null"`
	TotalFee      int64      `gorm:"column:total_fee;not null"`
	EffectiveFrom time.Time  `gorm:"column:effective_from;not null"`
	EffectiveTo   *time.Time `gorm:"column:effective_to"`
	IsCurrent     bool       `gorm:"column:is_current;default:true"`
	CreatedAt     time.Time  `gorm:"column:created_at;autoCreateTime"`
}

// PaymentLog is the append-only money-movement record. The only in-place
// mutation is the reconciliation flip Online-Pending -> Online (or the expiry
// sweep to Online-Expired); reference_no holds the gateway order id while
// pending and the gateway payment id once confirmed.
type PaymentLog struct {
	ID           int64     `gorm:"primaryKey"`
	PlayerID     int64     `gorm:"column:player_id;not null;index"`
	AcademyID    int64     `gorm:"column:academy_id;not null;index"`
	PaymentDate  time.Time `gorm:"column:payment_date;not null"`
	Amount       int64     `gorm:"column:amount;not null"`
	AppliedMonth string    `gorm:"column:applied_month;not null;index"`
	Mode         string    `gorm:"column:mode;not null;default:Cash"`
	ReferenceNo  string    `gorm:"column:reference_no;index"`
	Remarks      string    `gorm:"column:remarks"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (PaymentLog) TableName() string { return "payments_log" }
