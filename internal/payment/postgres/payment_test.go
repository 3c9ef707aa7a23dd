package postgres_test

import (
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	financeDatamodel "github.com/alphagrips/academy-backend/internal/core/datamodel/finance"
	"github.com/alphagrips/academy-backend/internal/payment"
	paymentPostgres "github.com/alphagrips/academy-backend/internal/payment/postgres"
)

func TestPaymentPostgres(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Payment Postgres Suite")
}

var _ = Describe("Payment Repository", func() {
	var (
		db   *gorm.DB
		repo payment.RepositoryAPI
	)

	pendingEntry := func(orderID string) *financeDatamodel.PaymentLog {
		return &financeDatamodel.PaymentLog{
			PlayerID:     7,
			AcademyID:    1,
			PaymentDate:  time.Now(),
			Amount:       600,
			AppliedMonth: "2025-03",
			Mode:         financeDatamodel.ModeOnlinePending,
			ReferenceNo:  orderID,
		}
	}

	BeforeEach(func() {
		var err error
		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		})
		Expect(err).NotTo(HaveOccurred())

		err = db.AutoMigrate(&financeDatamodel.PaymentLog{})
		Expect(err).NotTo(HaveOccurred())

		repo = paymentPostgres.NewPaymentRepository(db)
	})

	Describe("ConfirmPending", func() {
		It("settles the pending row and stamps the payment id", func() {
			Expect(repo.CreatePending(pendingEntry("order_1"))).To(Succeed())

			flipped, err := repo.ConfirmPending("order_1", "pay_1")
			Expect(err).NotTo(HaveOccurred())
			Expect(flipped).To(Equal(int64(1)))

			var settled financeDatamodel.PaymentLog
			Expect(db.Where("reference_no = ?", "pay_1").First(&settled).Error).To(Succeed())
			Expect(settled.Mode).To(Equal(financeDatamodel.ModeOnline))
		})

		It("touches zero rows on replay", func() {
			Expect(repo.CreatePending(pendingEntry("order_1"))).To(Succeed())

			flipped, err := repo.ConfirmPending("order_1", "pay_1")
			Expect(err).NotTo(HaveOccurred())
			Expect(flipped).To(Equal(int64(1)))

			flipped, err = repo.ConfirmPending("order_1", "pay_1")
			Expect(err).NotTo(HaveOccurred())
			Expect(flipped).To(BeZero())
		})

		It("touches zero rows for an unknown order", func() {
			flipped, err := repo.ConfirmPending("order_missing", "pay_1")
			Expect(err).NotTo(HaveOccurred())
			Expect(flipped).To(BeZero())
		})
	})

	Describe("FindPendingByPlayerMonth", func() {
		It("finds only entries still pending", func() {
			Expect(repo.CreatePending(pendingEntry("order_1"))).To(Succeed())

			found, err := repo.FindPendingByPlayerMonth(7, 1, "2025-03")
			Expect(err).NotTo(HaveOccurred())
			Expect(found.ReferenceNo).To(Equal("order_1"))

			_, err = repo.ConfirmPending("order_1", "pay_1")
			Expect(err).NotTo(HaveOccurred())

			_, err = repo.FindPendingByPlayerMonth(7, 1, "2025-03")
			Expect(err).To(HaveOccurred())
		})
	})

	Describe("ExpirePending", func() {
		It("voids a pending entry", func() {
			entry := pendingEntry("order_1")
			Expect(repo.CreatePending(entry)).To(Succeed())

			Expect(repo.ExpirePending(entry.ID)).To(Succeed())

			var voided financeDatamodel.PaymentLog
			Expect(db.First(&voided, entry.ID).Error).To(Succeed())
			Expect(voided.Mode).To(Equal(financeDatamodel.ModeOnlineExpired))
		})

		It("never voids a settled entry", func() {
			entry := pendingEntry("order_1")
			Expect(repo.CreatePending(entry)).To(Succeed())
			_, err := repo.ConfirmPending("order_1", "pay_1")
			Expect(err).NotTo(HaveOccurred())

			Expect(repo.ExpirePending(entry.ID)).To(Succeed())

			var settled financeDatamodel.PaymentLog
			Expect(db.First(&settled, entry.ID).Error).To(Succeed())
			Expect(settled.Mode).To(Equal(financeDatamodel.ModeOnline))
		})
	})

	Describe("ListPendingOlderThan", func() {
		It("returns only stale pending entries", func() {
			stale := pendingEntry("order_old")
			Expect(repo.CreatePending(stale)).To(Succeed())
			Expect(db.Model(stale).Update("created_at", time.Now().Add(-48*time.Hour)).Error).To(Succeed())

			fresh := pendingEntry("order_new")
			fresh.AppliedMonth = "2025-04"
			Expect(repo.CreatePending(fresh)).To(Succeed())

			entries, err := repo.ListPendingOlderThan(time.Now().Add(-24 * time.Hour))
			Expect(err).NotTo(HaveOccurred())
			Expect(entries).To(HaveLen(1))
			Expect(entries[0].ReferenceNo).To(Equal("order_old"))
		})
	})
})
