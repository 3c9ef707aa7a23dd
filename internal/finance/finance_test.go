package finance_test

import (
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	financeDatamodel "github.com/alphagrips/academy-backend/internal/core/datamodel/finance"
	"github.com/alphagrips/academy-backend/internal/finance"
)

func TestFinance(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Finance Suite")
}

func date(y int, m time.Month) time.Time {
	return time.Date(y, m, 1, 0, 0, 0, 0, time.UTC)
}

var _ = Describe("ResolveScheduleFee", func() {
	schedules := []*financeDatamodel.CategoryFeeSchedule{
		{ID: 1, CategoryID: 10, MonthlyFee: 1000, EffectiveFrom: date(2025, time.January), IsActive: true},
		{ID: 2, CategoryID: 10, MonthlyFee: 1200, EffectiveFrom: date(2025, time.June), IsActive: true},
		{ID: 3, CategoryID: 10, MonthlyFee: 9999, EffectiveFrom: date(2025, time.September), IsActive: false},
		{ID: 4, CategoryID: 20, MonthlyFee: 2000, EffectiveFrom: date(2025, time.January), IsActive: true},
	}

	It("picks the latest active row effective on or before the month", func() {
		fee, ok := finance.ResolveScheduleFee(schedules, 10, "2025-07")
		Expect(ok).To(BeTrue())
		Expect(fee).To(Equal(int64(1200)))
	})

	It("uses the older rate for months before the revision", func() {
		fee, ok := finance.ResolveScheduleFee(schedules, 10, "2025-03")
		Expect(ok).To(BeTrue())
		Expect(fee).To(Equal(int64(1000)))
	})

	It("ignores inactive rows", func() {
		fee, ok := finance.ResolveScheduleFee(schedules, 10, "2025-12")
		Expect(ok).To(BeTrue())
		Expect(fee).To(Equal(int64(1200)))
	})

	It("reports no fee before the earliest schedule", func() {
		_, ok := finance.ResolveScheduleFee(schedules, 10, "2024-12")
		Expect(ok).To(BeFalse())
	})

	It("is idempotent: repeated resolution gives the same answer", func() {
		first, ok1 := finance.ResolveScheduleFee(schedules, 10, "2025-07")
		second, ok2 := finance.ResolveScheduleFee(schedules, 10, "2025-07")
		Expect(ok1).To(Equal(ok2))
		Expect(first).To(Equal(second))
	})

	It("breaks effective_from ties with the highest id", func() {
		tied := []*financeDatamodel.CategoryFeeSchedule{
			{ID: 1, CategoryID: 10, MonthlyFee: 500, EffectiveFrom: date(2025, time.January), IsActive: true},
			{ID: 2, CategoryID: 10, MonthlyFee: 800, EffectiveFrom: date(2025, time.January), IsActive: true},
		}
		fee, ok := finance.ResolveScheduleFee(tied, 10, "2025-03")
		Expect(ok).To(BeTrue())
		Expect(fee).To(Equal(int64(800)))
	})
})

var _ = Describe("BuildLedger", func() {
	var input finance.LedgerInput

	BeforeEach(func() {
		input = finance.LedgerInput{
			Players: []*finance.LedgerPlayer{
				{ID: 1, Name: "Aarav", CategoryID: 10, CategoryName: "Beginner"},
			},
			Schedules: []*financeDatamodel.CategoryFeeSchedule{
				{ID: 1, AcademyID: 1, CategoryID: 10, MonthlyFee: 1000, EffectiveFrom: date(2025, time.March), IsActive: true},
			},
			Now: date(2025, time.March),
		}
	})

	It("computes pending of 600 for a 1000 fee with 400 paid", func() {
		input.Payments = []*financeDatamodel.PaymentLog{
			{PlayerID: 1, AcademyID: 1, Amount: 400, AppliedMonth: "2025-03", Mode: financeDatamodel.ModeCash},
		}

		rows := finance.BuildLedger(input)
		Expect(rows).To(HaveLen(1))
		Expect(rows[0].FinalFee).To(Equal(int64(1000)))
		Expect(rows[0].PaidAmount).To(Equal(int64(400)))
		Expect(rows[0].Pending).To(Equal(int64(600)))
	})

	It("preserves the receivable identity on every row", func() {
		input.Now = date(2025, time.June)
		input.Payments = []*financeDatamodel.PaymentLog{
			{PlayerID: 1, Amount: 1000, AppliedMonth: "2025-03", Mode: financeDatamodel.ModeCash},
			{PlayerID: 1, Amount: 250, AppliedMonth: "2025-04", Mode: financeDatamodel.ModeOnline},
		}

		for _, row := range finance.BuildLedger(input) {
			Expect(row.Pending).To(Equal(row.FinalFee - row.PaidAmount))
		}
	})

	It("never clamps an overpayment", func() {
		input.Payments = []*financeDatamodel.PaymentLog{
			{PlayerID: 1, Amount: 1500, AppliedMonth: "2025-03", Mode: financeDatamodel.ModeCash},
		}

		rows := finance.BuildLedger(input)
		Expect(rows).To(HaveLen(1))
		Expect(rows[0].Pending).To(Equal(int64(-500)))
	})

	It("excludes in-flight and expired gateway orders from paid_amount", func() {
		input.Payments = []*financeDatamodel.PaymentLog{
			{PlayerID: 1, Amount: 1000, AppliedMonth: "2025-03", Mode: financeDatamodel.ModeOnlinePending},
			{PlayerID: 1, Amount: 300, AppliedMonth: "2025-03", Mode: financeDatamodel.ModeOnlineExpired},
		}

		rows := finance.BuildLedger(input)
		Expect(rows).To(HaveLen(1))
		Expect(rows[0].PaidAmount).To(BeZero())
		Expect(rows[0].Pending).To(Equal(int64(1000)))
	})

	It("emits one row per month from the earliest billable month", func() {
		input.Now = date(2025, time.June)

		rows := finance.BuildLedger(input)
		Expect(rows).To(HaveLen(4))
		Expect(rows[0].Month).To(Equal("2025-03"))
		Expect(rows[3].Month).To(Equal("2025-06"))
	})

	It("applies the current override from its effective month onward", func() {
		input.Now = date(2025, time.May)
		input.Overrides = []*financeDatamodel.PlayerFeeOverride{
			{PlayerID: 1, CourtFee: 500, ShuttleFee: 300, TotalFee: 800, EffectiveFrom: date(2025, time.April), IsCurrent: true},
		}

		rows := finance.BuildLedger(input)
		Expect(rows).To(HaveLen(3))
		Expect(rows[0].Month).To(Equal("2025-03"))
		Expect(rows[0].FinalFee).To(Equal(int64(1000)))
		Expect(rows[1].Month).To(Equal("2025-04"))
		Expect(rows[1].FinalFee).To(Equal(int64(800)))
		Expect(rows[2].FinalFee).To(Equal(int64(800)))
	})

	It("treats an unresolvable fee as zero, not an error", func() {
		input.Schedules = nil
		input.Payments = []*financeDatamodel.PaymentLog{
			{PlayerID: 1, Amount: 200, AppliedMonth: "2025-03", Mode: financeDatamodel.ModeCash},
		}

		rows := finance.BuildLedger(input)
		Expect(rows).To(HaveLen(1))
		Expect(rows[0].FinalFee).To(BeZero())
		Expect(rows[0].Pending).To(Equal(int64(-200)))
	})

	It("orders rows by category, player, then month", func() {
		input.Now = date(2025, time.April)
		input.Players = []*finance.LedgerPlayer{
			{ID: 2, Name: "Diya", CategoryID: 20, CategoryName: "Advanced"},
			{ID: 1, Name: "Aarav", CategoryID: 10, CategoryName: "Beginner"},
		}
		input.Schedules = append(input.Schedules,
			&financeDatamodel.CategoryFeeSchedule{ID: 2, CategoryID: 20, MonthlyFee: 2000, EffectiveFrom: date(2025, time.March), IsActive: true})

		rows := finance.BuildLedger(input)
		Expect(rows).To(HaveLen(4))
		Expect(rows[0].CategoryName).To(Equal("Advanced"))
		Expect(rows[0].Month).To(Equal("2025-03"))
		Expect(rows[2].CategoryName).To(Equal("Beginner"))
	})
})

var _ = Describe("Aggregations", func() {
	rows := []finance.LedgerRow{
		{PlayerID: 1, PlayerName: "Aarav", CategoryName: "Beginner", Month: "2025-03", FinalFee: 1000, PaidAmount: 400, Pending: 600},
		{PlayerID: 1, PlayerName: "Aarav", CategoryName: "Beginner", Month: "2025-04", FinalFee: 1000, PaidAmount: 1000, Pending: 0},
		{PlayerID: 2, PlayerName: "Diya", CategoryName: "Advanced", Month: "2025-03", FinalFee: 2000, PaidAmount: 500, Pending: 1500},
	}

	It("summarizes totals and distinct players", func() {
		s := finance.Summarize(rows)
		Expect(s.TotalExpected).To(Equal(int64(4000)))
		Expect(s.TotalCollected).To(Equal(int64(1900)))
		Expect(s.TotalPending).To(Equal(int64(2100)))
		Expect(s.ActivePlayers).To(Equal(2))
	})

	It("computes per-month collection efficiency in month order", func() {
		result := finance.CollectionEfficiency(rows)
		Expect(result).To(HaveLen(2))
		Expect(result[0].Month).To(Equal("2025-03"))
		Expect(result[0].Expected).To(Equal(int64(3000)))
		Expect(result[0].Collected).To(Equal(int64(900)))
		Expect(result[0].EfficiencyPct).To(BeNumerically("~", 30.0, 0.001))
		Expect(result[1].EfficiencyPct).To(BeNumerically("~", 100.0, 0.001))
	})

	It("ranks defaulters by total pending and honors the limit", func() {
		result := finance.TopDefaulters(rows, 1)
		Expect(result).To(HaveLen(1))
		Expect(result[0].PlayerName).To(Equal("Diya"))
		Expect(result[0].TotalPending).To(Equal(int64(1500)))
	})

	It("omits players with nothing outstanding", func() {
		settled := []finance.LedgerRow{
			{PlayerID: 1, PlayerName: "Aarav", Month: "2025-03", FinalFee: 1000, PaidAmount: 1000, Pending: 0},
		}
		Expect(finance.TopDefaulters(settled, 10)).To(BeEmpty())
	})
})
