package payment

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	errors "github.com/alphagrips/academy-backend/internal"
	financeDatamodel "github.com/alphagrips/academy-backend/internal/core/datamodel/finance"
	gatewayDatamodel "github.com/alphagrips/academy-backend/internal/core/datamodel/paymentgateway"
	"github.com/alphagrips/academy-backend/internal/core/events"
	"github.com/alphagrips/academy-backend/internal/paymentgateway"
)

// LedgerAPI is the slice of the finance service this flow reads.
type LedgerAPI interface {
	PendingFor(academyID, playerID int64, month string) (int64, error)
}

type RepositoryAPI interface {
	FindPendingByPlayerMonth(playerID, academyID int64, month string) (*financeDatamodel.PaymentLog, error)
	FindPendingByReference(orderID string) (*financeDatamodel.PaymentLog, error)
	CreatePending(p *financeDatamodel.PaymentLog) error
	ConfirmPending(orderID, paymentID string) (int64, error)
	ListPendingOlderThan(cutoff time.Time) ([]*financeDatamodel.PaymentLog, error)
	ExpirePending(id int64) error
}

type Service struct {
	repo     RepositoryAPI
	ledger   LedgerAPI
	gateway  paymentgateway.ClientAPI
	eventBus *events.EventBus
	logger   *slog.Logger
	currency string
	now      func() time.Time
}

func NewService(repo RepositoryAPI, ledger LedgerAPI, gateway paymentgateway.ClientAPI,
	eventBus *events.EventBus, currency string, logger *slog.Logger) *Service {
	return &Service{
		repo:     repo,
		ledger:   ledger,
		gateway:  gateway,
		eventBus: eventBus,
		logger:   logger,
		currency: currency,
		now:      time.Now,
	}
}

// RequestPayment reserves the (player, month) shortfall and creates a gateway
// order for it. The Online-Pending ledger entry doubles as the reservation: a
// second request for the same pair fails with a conflict until the first
// order is confirmed or expires.
func (s *Service) RequestPayment(ctx context.Context, user *errors.SessionUser, dto *CreateOrderDTO) (*gatewayDatamodel.Order, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	academyID, appErr := errors.ScopedAcademyID(user, dto.AcademyID)
	if appErr != nil {
		return nil, appErr
	}

	pending, err := s.ledger.PendingFor(academyID, dto.PlayerID, dto.Month)
	if err != nil {
		return nil, err
	}
	if pending <= 0 {
		return nil, errors.ErrNoPendingAmount
	}

	if existing, err := s.repo.FindPendingByPlayerMonth(dto.PlayerID, academyID, dto.Month); err == nil && existing != nil {
		s.logger.Warn("duplicate order request rejected",
			"player_id", dto.PlayerID, "month", dto.Month, "existing_order", existing.ReferenceNo)
		return nil, errors.ErrOrderInFlight
	}

	order, err := s.gateway.CreateOrder(ctx, &gatewayDatamodel.OrderRequest{
		Amount:   pending * 100,
		Currency: s.currency,
		Receipt:  fmt.Sprintf("acad%d-plr%d-%s", academyID, dto.PlayerID, dto.Month),
	})
	if err != nil {
		s.logger.Error("gateway order creation failed",
			"error", err, "player_id", dto.PlayerID, "academy_id", academyID, "month", dto.Month)
		return nil, err
	}

	entry := &financeDatamodel.PaymentLog{
		PlayerID:     dto.PlayerID,
		AcademyID:    academyID,
		PaymentDate:  s.now(),
		Amount:       pending,
		AppliedMonth: dto.Month,
		Mode:         financeDatamodel.ModeOnlinePending,
		ReferenceNo:  order.ID,
	}
	if err := s.repo.CreatePending(entry); err != nil {
		s.logger.Error("failed to write pending ledger entry",
			"error", err, "order_id", order.ID, "player_id", dto.PlayerID)
		return nil, err
	}

	s.eventBus.Publish(ctx, events.NewPaymentRecordedEvent(
		entry.ID, entry.PlayerID, entry.AcademyID, entry.Amount, entry.AppliedMonth, entry.Mode))

	s.logger.Info("gateway order created",
		"order_id", order.ID, "player_id", dto.PlayerID,
		"academy_id", academyID, "month", dto.Month, "amount", pending)
	return order, nil
}

// ConfirmPayment reconciles a gateway confirmation: verify the HMAC, then
// flip the matching Online-Pending entry to Online and stamp the payment id
// into reference_no. A replay after the flip is a success no-op.
func (s *Service) ConfirmPayment(ctx context.Context, dto *VerifyPaymentDTO) error {
	if err := dto.Validate(); err != nil {
		return err
	}

	if !s.gateway.VerifySignature(dto.OrderID, dto.PaymentID, dto.Signature) {
		s.logger.Warn("payment signature verification failed",
			"order_id", dto.OrderID, "payment_id", dto.PaymentID)
		return errors.ErrInvalidSignature
	}

	entry, err := s.repo.FindPendingByReference(dto.OrderID)
	if err != nil || entry == nil {
		s.logger.Info("confirmation for unknown or already settled order",
			"order_id", dto.OrderID, "payment_id", dto.PaymentID)
		return nil
	}

	flipped, err := s.repo.ConfirmPending(dto.OrderID, dto.PaymentID)
	if err != nil {
		s.logger.Error("failed to settle pending entry",
			"error", err, "order_id", dto.OrderID)
		return err
	}
	if flipped == 0 {
		// lost the race against a concurrent confirmation
		return nil
	}

	s.eventBus.Publish(ctx, events.NewPaymentConfirmedEvent(
		dto.OrderID, dto.PaymentID, entry.PlayerID, entry.AcademyID, entry.Amount, entry.AppliedMonth))

	s.logger.Info("payment confirmed",
		"order_id", dto.OrderID, "payment_id", dto.PaymentID,
		"player_id", entry.PlayerID, "amount", entry.Amount, "month", entry.AppliedMonth)
	return nil
}

// ExpireStalePendingOrders voids Online-Pending entries older than the TTL so
// abandoned checkouts release their reservation. Returns the number voided.
func (s *Service) ExpireStalePendingOrders(ctx context.Context, ttl time.Duration) (int, error) {
	if ttl <= 0 {
		return 0, nil
	}

	stale, err := s.repo.ListPendingOlderThan(s.now().Add(-ttl))
	if err != nil {
		s.logger.Error("failed to list stale pending orders", "error", err)
		return 0, err
	}

	expired := 0
	for _, entry := range stale {
		if err := s.repo.ExpirePending(entry.ID); err != nil {
			s.logger.Error("failed to expire pending order",
				"error", err, "payment_id", entry.ID, "order_id", entry.ReferenceNo)
			continue
		}
		expired++
		s.eventBus.Publish(ctx, events.NewPaymentExpiredEvent(
			entry.ReferenceNo, entry.PlayerID, entry.AcademyID, entry.Amount, entry.AppliedMonth))
		s.logger.Info("pending order expired",
			"order_id", entry.ReferenceNo, "player_id", entry.PlayerID, "month", entry.AppliedMonth)
	}
	return expired, nil
}
