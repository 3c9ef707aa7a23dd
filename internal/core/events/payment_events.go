package events

import (
	"time"

	"github.com/google/uuid"
)

const (
	EventTypePaymentRecorded  = "payment.recorded"
	EventTypePaymentConfirmed = "payment.confirmed"
	EventTypePaymentExpired   = "payment.expired"
)

// PaymentRecordedEvent fires for every new ledger entry, manual or gateway.
type PaymentRecordedEvent struct {
	BaseEvent
	PaymentLogID int64  `json:"payment_log_id"`
	PlayerID     int64  `json:"player_id"`
	AcademyID    int64  `json:"academy_id"`
	Amount       int64  `json:"amount"`
	AppliedMonth string `json:"applied_month"`
	Mode         string `json:"mode"`
}

func NewPaymentRecordedEvent(paymentLogID, playerID, academyID, amount int64, appliedMonth, mode string) *PaymentRecordedEvent {
	return &PaymentRecordedEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypePaymentRecorded,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"payment_log_id": paymentLogID,
				"player_id":      playerID,
				"academy_id":     academyID,
				"amount":         amount,
				"applied_month":  appliedMonth,
				"mode":           mode,
			},
		},
		PaymentLogID: paymentLogID,
		PlayerID:     playerID,
		AcademyID:    academyID,
		Amount:       amount,
		AppliedMonth: appliedMonth,
		Mode:         mode,
	}
}

// PaymentConfirmedEvent fires when a gateway callback reconciles a pending
// order into a settled payment.
type PaymentConfirmedEvent struct {
	BaseEvent
	OrderID   string `json:"order_id"`
	PaymentID string `json:"payment_id"`
	PlayerID  int64  `json:"player_id"`
	AcademyID int64  `json:"academy_id"`
	Amount    int64  `json:"amount"`
	Month     string `json:"month"`
}

func NewPaymentConfirmedEvent(orderID, paymentID string, playerID, academyID, amount int64, month string) *PaymentConfirmedEvent {
	return &PaymentConfirmedEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypePaymentConfirmed,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"order_id":   orderID,
				"payment_id": paymentID,
				"player_id":  playerID,
				"academy_id": academyID,
				"amount":     amount,
				"month":      month,
			},
		},
		OrderID:   orderID,
		PaymentID: paymentID,
		PlayerID:  playerID,
		AcademyID: academyID,
		Amount:    amount,
		Month:     month,
	}
}

// PaymentExpiredEvent fires when the reaper voids a pending order that never
// received a gateway confirmation.
type PaymentExpiredEvent struct {
	BaseEvent
	OrderID   string `json:"order_id"`
	PlayerID  int64  `json:"player_id"`
	AcademyID int64  `json:"academy_id"`
	Amount    int64  `json:"amount"`
	Month     string `json:"month"`
}

func NewPaymentExpiredEvent(orderID string, playerID, academyID, amount int64, month string) *PaymentExpiredEvent {
	return &PaymentExpiredEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypePaymentExpired,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"order_id":   orderID,
				"player_id":  playerID,
				"academy_id": academyID,
				"amount":     amount,
				"month":      month,
			},
		},
		OrderID:   orderID,
		PlayerID:  playerID,
		AcademyID: academyID,
		Amount:    amount,
		Month:     month,
	}
}
