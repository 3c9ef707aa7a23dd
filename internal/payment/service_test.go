package payment_test

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	internal "github.com/alphagrips/academy-backend/internal"
	financeDatamodel "github.com/alphagrips/academy-backend/internal/core/datamodel/finance"
	gatewayDatamodel "github.com/alphagrips/academy-backend/internal/core/datamodel/paymentgateway"
	"github.com/alphagrips/academy-backend/internal/core/events"
	"github.com/alphagrips/academy-backend/internal/payment"
	"github.com/alphagrips/academy-backend/internal/paymentgateway"
)

func TestPayment(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Payment Suite")
}

type mockPaymentRepository struct {
	entries map[int64]*financeDatamodel.PaymentLog
	nextID  int64
}

func newMockPaymentRepository() *mockPaymentRepository {
	return &mockPaymentRepository{entries: make(map[int64]*financeDatamodel.PaymentLog)}
}

func (m *mockPaymentRepository) FindPendingByPlayerMonth(playerID, academyID int64, month string) (*financeDatamodel.PaymentLog, error) {
	for _, e := range m.entries {
		if e.PlayerID == playerID && e.AcademyID == academyID && e.AppliedMonth == month &&
			e.Mode == financeDatamodel.ModeOnlinePending {
			return e, nil
		}
	}
	return nil, errors.New("not found")
}

func (m *mockPaymentRepository) FindPendingByReference(orderID string) (*financeDatamodel.PaymentLog, error) {
	for _, e := range m.entries {
		if e.ReferenceNo == orderID && e.Mode == financeDatamodel.ModeOnlinePending {
			return e, nil
		}
	}
	return nil, errors.New("not found")
}

func (m *mockPaymentRepository) CreatePending(p *financeDatamodel.PaymentLog) error {
	m.nextID++
	p.ID = m.nextID
	p.CreatedAt = time.Now()
	m.entries[p.ID] = p
	return nil
}

func (m *mockPaymentRepository) ConfirmPending(orderID, paymentID string) (int64, error) {
	var flipped int64
	for _, e := range m.entries {
		if e.ReferenceNo == orderID && e.Mode == financeDatamodel.ModeOnlinePending {
			e.Mode = financeDatamodel.ModeOnline
			e.ReferenceNo = paymentID
			flipped++
		}
	}
	return flipped, nil
}

func (m *mockPaymentRepository) ListPendingOlderThan(cutoff time.Time) ([]*financeDatamodel.PaymentLog, error) {
	var stale []*financeDatamodel.PaymentLog
	for _, e := range m.entries {
		if e.Mode == financeDatamodel.ModeOnlinePending && e.CreatedAt.Before(cutoff) {
			stale = append(stale, e)
		}
	}
	return stale, nil
}

func (m *mockPaymentRepository) ExpirePending(id int64) error {
	e, ok := m.entries[id]
	if !ok {
		return errors.New("not found")
	}
	if e.Mode == financeDatamodel.ModeOnlinePending {
		e.Mode = financeDatamodel.ModeOnlineExpired
	}
	return nil
}

type mockLedger struct {
	pending map[string]int64
	err     error
}

func (m *mockLedger) PendingFor(academyID, playerID int64, month string) (int64, error) {
	if m.err != nil {
		return 0, m.err
	}
	return m.pending[month], nil
}

type mockGateway struct {
	orders    int
	failOrder error
	secret    string
}

func (m *mockGateway) CreateOrder(ctx context.Context, req *gatewayDatamodel.OrderRequest) (*gatewayDatamodel.Order, error) {
	if m.failOrder != nil {
		return nil, m.failOrder
	}
	m.orders++
	return &gatewayDatamodel.Order{ID: "order_1", Amount: req.Amount, Currency: req.Currency, Status: "created"}, nil
}

func (m *mockGateway) VerifySignature(orderID, paymentID, signature string) bool {
	return paymentgateway.SignPayload(m.secret, orderID, paymentID) == signature
}

var _ = Describe("PaymentService", func() {
	var (
		svc     *payment.Service
		repo    *mockPaymentRepository
		ledger  *mockLedger
		gateway *mockGateway
		coach   *internal.SessionUser
		ctx     context.Context
	)

	BeforeEach(func() {
		repo = newMockPaymentRepository()
		ledger = &mockLedger{pending: map[string]int64{"2025-03": 600}}
		gateway = &mockGateway{secret: "s"}
		log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		svc = payment.NewService(repo, ledger, gateway, events.NewEventBus(log), "INR", log)
		coach = &internal.SessionUser{ID: 1, Role: "head_coach", AcademyID: 1}
		ctx = context.Background()
	})

	Describe("RequestPayment", func() {
		It("creates a gateway order for the pending amount in minor units", func() {
			order, err := svc.RequestPayment(ctx, coach, &payment.CreateOrderDTO{PlayerID: 7, Month: "2025-03"})
			Expect(err).ToNot(HaveOccurred())
			Expect(order.ID).To(Equal("order_1"))
			Expect(order.Amount).To(Equal(int64(60000)))
			Expect(order.Currency).To(Equal("INR"))
		})

		It("writes an Online-Pending ledger entry holding the order id", func() {
			_, err := svc.RequestPayment(ctx, coach, &payment.CreateOrderDTO{PlayerID: 7, Month: "2025-03"})
			Expect(err).ToNot(HaveOccurred())

			entry, err := repo.FindPendingByReference("order_1")
			Expect(err).ToNot(HaveOccurred())
			Expect(entry.Amount).To(Equal(int64(600)))
			Expect(entry.AppliedMonth).To(Equal("2025-03"))
			Expect(entry.Mode).To(Equal(financeDatamodel.ModeOnlinePending))
		})

		It("rejects a month with nothing pending", func() {
			_, err := svc.RequestPayment(ctx, coach, &payment.CreateOrderDTO{PlayerID: 7, Month: "2025-04"})
			Expect(err).To(Equal(internal.ErrNoPendingAmount))
			Expect(gateway.orders).To(BeZero())
		})

		It("rejects a second request while an order is in flight", func() {
			_, err := svc.RequestPayment(ctx, coach, &payment.CreateOrderDTO{PlayerID: 7, Month: "2025-03"})
			Expect(err).ToNot(HaveOccurred())

			_, err = svc.RequestPayment(ctx, coach, &payment.CreateOrderDTO{PlayerID: 7, Month: "2025-03"})
			Expect(err).To(Equal(internal.ErrOrderInFlight))
			Expect(gateway.orders).To(Equal(1))
		})

		It("writes nothing when the gateway rejects the order", func() {
			gateway.failOrder = errors.New("gateway down")
			_, err := svc.RequestPayment(ctx, coach, &payment.CreateOrderDTO{PlayerID: 7, Month: "2025-03"})
			Expect(err).To(HaveOccurred())
			Expect(repo.entries).To(BeEmpty())
		})
	})

	Describe("ConfirmPayment", func() {
		var dto *payment.VerifyPaymentDTO

		BeforeEach(func() {
			_, err := svc.RequestPayment(ctx, coach, &payment.CreateOrderDTO{PlayerID: 7, Month: "2025-03"})
			Expect(err).ToNot(HaveOccurred())

			dto = &payment.VerifyPaymentDTO{
				OrderID:   "order_1",
				PaymentID: "pay_1",
				Signature: paymentgateway.SignPayload("s", "order_1", "pay_1"),
			}
		})

		It("flips the pending entry to Online with the payment id", func() {
			Expect(svc.ConfirmPayment(ctx, dto)).To(Succeed())

			var settled *financeDatamodel.PaymentLog
			for _, e := range repo.entries {
				settled = e
			}
			Expect(settled.Mode).To(Equal(financeDatamodel.ModeOnline))
			Expect(settled.ReferenceNo).To(Equal("pay_1"))
		})

		It("is idempotent under replay", func() {
			Expect(svc.ConfirmPayment(ctx, dto)).To(Succeed())
			Expect(svc.ConfirmPayment(ctx, dto)).To(Succeed())

			online := 0
			for _, e := range repo.entries {
				if e.Mode == financeDatamodel.ModeOnline {
					online++
				}
			}
			Expect(online).To(Equal(1))
		})

		It("rejects a forged signature without touching state", func() {
			dto.Signature = paymentgateway.SignPayload("wrong", "order_1", "pay_1")
			err := svc.ConfirmPayment(ctx, dto)
			Expect(err).To(Equal(internal.ErrInvalidSignature))

			entry, findErr := repo.FindPendingByReference("order_1")
			Expect(findErr).ToNot(HaveOccurred())
			Expect(entry.Mode).To(Equal(financeDatamodel.ModeOnlinePending))
		})

		It("allows a fresh order for the month once confirmed", func() {
			Expect(svc.ConfirmPayment(ctx, dto)).To(Succeed())

			_, err := repo.FindPendingByPlayerMonth(7, 1, "2025-03")
			Expect(err).To(HaveOccurred())
		})
	})

	Describe("ExpireStalePendingOrders", func() {
		It("voids entries older than the TTL", func() {
			_, err := svc.RequestPayment(ctx, coach, &payment.CreateOrderDTO{PlayerID: 7, Month: "2025-03"})
			Expect(err).ToNot(HaveOccurred())
			for _, e := range repo.entries {
				e.CreatedAt = time.Now().Add(-48 * time.Hour)
			}

			expired, err := svc.ExpireStalePendingOrders(ctx, 24*time.Hour)
			Expect(err).ToNot(HaveOccurred())
			Expect(expired).To(Equal(1))

			for _, e := range repo.entries {
				Expect(e.Mode).To(Equal(financeDatamodel.ModeOnlineExpired))
			}
		})

		It("leaves fresh entries alone", func() {
			_, err := svc.RequestPayment(ctx, coach, &payment.CreateOrderDTO{PlayerID: 7, Month: "2025-03"})
			Expect(err).ToNot(HaveOccurred())

			expired, err := svc.ExpireStalePendingOrders(ctx, 24*time.Hour)
			Expect(err).ToNot(HaveOccurred())
			Expect(expired).To(BeZero())
		})

		It("does nothing when the TTL is disabled", func() {
			expired, err := svc.ExpireStalePendingOrders(ctx, 0)
			Expect(err).ToNot(HaveOccurred())
			Expect(expired).To(BeZero())
		})
	})
})
