package payment

import (
	"github.com/alphagrips/academy-backend/internal/core/common/validation"
)

// CreateOrderDTO asks for an online payment order covering the pending
// balance of one (player, month) ledger row.
type CreateOrderDTO struct {
	PlayerID  int64  `json:"player_id"`
	AcademyID int64  `json:"academy_id"`
	Month     string `json:"month"`
}

func (d *CreateOrderDTO) Validate() error {
	validator := validation.NewValidator()
	validator.Field("player_id", d.PlayerID).Required()
	validator.Field("month", d.Month).Required().Month()

	if appErr := validator.Validate(); appErr != nil {
		return appErr
	}
	return nil
}

// VerifyPaymentDTO carries the gateway checkout confirmation. Field names
// follow the gateway's checkout callback payload.
type VerifyPaymentDTO struct {
	OrderID   string `json:"razorpay_order_id"`
	PaymentID string `json:"razorpay_payment_id"`
	Signature string `json:"razorpay_signature"`
}

func (d *VerifyPaymentDTO) Validate() error {
	validator := validation.NewValidator()
	validator.Field("razorpay_order_id", d.OrderID).Required()
	validator.Field("razorpay_payment_id", d.PaymentID).Required()
	validator.Field("razorpay_signature", d.Signature).Required()

	if appErr := validator.Validate(); appErr != nil {
		return appErr
	}
	return nil
}
