package finance_test

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	internal "github.com/alphagrips/academy-backend/internal"
	financeDatamodel "github.com/alphagrips/academy-backend/internal/core/datamodel/finance"
	"github.com/alphagrips/academy-backend/internal/core/events"
	"github.com/alphagrips/academy-backend/internal/finance"
)

type mockFinanceRepository struct {
	ledgerInput *finance.LedgerInput
	schedules   []*financeDatamodel.CategoryFeeSchedule
	payments    map[int64]*financeDatamodel.PaymentLog
	overrides   []*financeDatamodel.PlayerFeeOverride
	nextID      int64

	createPaymentErr error
	replaceErr       error
	deletedIDs       []int64
}

func newMockFinanceRepository() *mockFinanceRepository {
	return &mockFinanceRepository{
		ledgerInput: &finance.LedgerInput{},
		payments:    make(map[int64]*financeDatamodel.PaymentLog),
	}
}

func (m *mockFinanceRepository) FetchLedgerInput(academyID int64) (*finance.LedgerInput, error) {
	return m.ledgerInput, nil
}

func (m *mockFinanceRepository) ListFeeSchedules(academyID int64) ([]*finance.FeeScheduleView, error) {
	return nil, nil
}

func (m *mockFinanceRepository) ListSchedulesForCategory(academyID, categoryID int64) ([]*financeDatamodel.CategoryFeeSchedule, error) {
	return m.schedules, nil
}

func (m *mockFinanceRepository) CreateFeeSchedule(s *financeDatamodel.CategoryFeeSchedule) error {
	m.nextID++
	s.ID = m.nextID
	m.schedules = append(m.schedules, s)
	return nil
}

func (m *mockFinanceRepository) ListCurrentOverrides(academyID int64) ([]*finance.OverrideView, error) {
	return nil, nil
}

func (m *mockFinanceRepository) ReplaceOverride(next *financeDatamodel.PlayerFeeOverride) error {
	if m.replaceErr != nil {
		return m.replaceErr
	}
	now := time.Now()
	for _, o := range m.overrides {
		if o.PlayerID == next.PlayerID && o.AcademyID == next.AcademyID && o.IsCurrent {
			o.IsCurrent = false
			o.EffectiveTo = &now
		}
	}
	m.nextID++
	next.ID = m.nextID
	m.overrides = append(m.overrides, next)
	return nil
}

func (m *mockFinanceRepository) CreatePayment(p *financeDatamodel.PaymentLog) error {
	if m.createPaymentErr != nil {
		return m.createPaymentErr
	}
	m.nextID++
	p.ID = m.nextID
	m.payments[p.ID] = p
	return nil
}

func (m *mockFinanceRepository) ListPayments(academyID int64) ([]*finance.PaymentView, error) {
	return nil, nil
}

func (m *mockFinanceRepository) GetPayment(id int64) (*financeDatamodel.PaymentLog, error) {
	p, ok := m.payments[id]
	if !ok {
		return nil, errors.New("payment not found")
	}
	return p, nil
}

func (m *mockFinanceRepository) DeletePayment(id int64) error {
	delete(m.payments, id)
	m.deletedIDs = append(m.deletedIDs, id)
	return nil
}

var _ = Describe("FinanceService", func() {
	var (
		svc      *finance.Service
		mockRepo *mockFinanceRepository
		coach    *internal.SessionUser
		admin    *internal.SessionUser
	)

	BeforeEach(func() {
		mockRepo = newMockFinanceRepository()
		log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		svc = finance.NewService(mockRepo, events.NewEventBus(log), log)
		coach = &internal.SessionUser{ID: 1, Role: "head_coach", AcademyID: 1}
		admin = &internal.SessionUser{ID: 2, Role: "super_admin"}
	})

	Describe("SetOverride", func() {
		It("derives total_fee from the court and shuttle components", func() {
			result, err := svc.SetOverride(coach, 7, &finance.SetOverrideDTO{CourtFee: 500, ShuttleFee: 300})
			Expect(err).ToNot(HaveOccurred())
			Expect(result.TotalFee).To(Equal(int64(800)))
			Expect(result.IsCurrent).To(BeTrue())
			Expect(result.AcademyID).To(Equal(int64(1)))
		})

		It("leaves exactly one current override after replacement", func() {
			_, err := svc.SetOverride(coach, 7, &finance.SetOverrideDTO{CourtFee: 500, ShuttleFee: 300})
			Expect(err).ToNot(HaveOccurred())
			_, err = svc.SetOverride(coach, 7, &finance.SetOverrideDTO{CourtFee: 600, ShuttleFee: 400})
			Expect(err).ToNot(HaveOccurred())

			current := 0
			for _, o := range mockRepo.overrides {
				if o.IsCurrent {
					current++
					Expect(o.TotalFee).To(Equal(int64(1000)))
				} else {
					Expect(o.EffectiveTo).ToNot(BeNil())
				}
			}
			Expect(current).To(Equal(1))
		})
	})

	Describe("RecordManualPayment", func() {
		It("defaults the mode to Cash", func() {
			result, err := svc.RecordManualPayment(context.Background(), coach, &finance.RecordPaymentDTO{
				PlayerID: 7, PaymentDate: "2025-03-15", Amount: 500, Month: "2025-03",
			})
			Expect(err).ToNot(HaveOccurred())
			Expect(result.Mode).To(Equal(financeDatamodel.ModeCash))
		})

		It("accepts negative amounts as adjustments", func() {
			result, err := svc.RecordManualPayment(context.Background(), coach, &finance.RecordPaymentDTO{
				PlayerID: 7, PaymentDate: "2025-03-15", Amount: -250, Month: "2025-03", Remarks: "refund",
			})
			Expect(err).ToNot(HaveOccurred())
			Expect(result.Amount).To(Equal(int64(-250)))
		})

		It("rejects a malformed month", func() {
			_, err := svc.RecordManualPayment(context.Background(), coach, &finance.RecordPaymentDTO{
				PlayerID: 7, PaymentDate: "2025-03-15", Amount: 500, Month: "March 2025",
			})
			Expect(err).To(HaveOccurred())
		})
	})

	Describe("DeletePayment", func() {
		It("refuses cross-tenant deletes for non-privileged users", func() {
			entry := &financeDatamodel.PaymentLog{PlayerID: 7, AcademyID: 99, Amount: 100}
			Expect(mockRepo.CreatePayment(entry)).To(Succeed())

			err := svc.DeletePayment(coach, entry.ID)
			Expect(err).To(Equal(internal.ErrAccessDenied))
			Expect(mockRepo.deletedIDs).To(BeEmpty())
		})

		It("allows super admins to delete across academies", func() {
			entry := &financeDatamodel.PaymentLog{PlayerID: 7, AcademyID: 99, Amount: 100}
			Expect(mockRepo.CreatePayment(entry)).To(Succeed())

			Expect(svc.DeletePayment(admin, entry.ID)).To(Succeed())
			Expect(mockRepo.deletedIDs).To(ContainElement(entry.ID))
		})
	})

	Describe("PendingFor", func() {
		It("returns the outstanding balance for a billed month", func() {
			mockRepo.ledgerInput = &finance.LedgerInput{
				Players: []*finance.LedgerPlayer{{ID: 7, Name: "Aarav", CategoryID: 10, CategoryName: "Beginner"}},
				Schedules: []*financeDatamodel.CategoryFeeSchedule{
					{ID: 1, CategoryID: 10, MonthlyFee: 1000, EffectiveFrom: time.Now().AddDate(0, -1, 0), IsActive: true},
				},
				Payments: []*financeDatamodel.PaymentLog{
					{PlayerID: 7, Amount: 400, AppliedMonth: finance.MonthKey(time.Now()), Mode: financeDatamodel.ModeCash},
				},
			}

			pending, err := svc.PendingFor(1, 7, finance.MonthKey(time.Now()))
			Expect(err).ToNot(HaveOccurred())
			Expect(pending).To(Equal(int64(600)))
		})

		It("fails when the month has no ledger row", func() {
			_, err := svc.PendingFor(1, 7, "2030-01")
			Expect(err).To(Equal(internal.ErrNoPendingAmount))
		})
	})

	Describe("ResolveMonthlyFee", func() {
		It("fails with a schedule-not-found error when nothing matches", func() {
			_, err := svc.ResolveMonthlyFee(1, 10, "2025-03")
			Expect(err).To(Equal(internal.ErrFeeScheduleNotFound))
		})
	})
})
