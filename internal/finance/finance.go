package finance

import (
	"sort"
	"time"

	financeDatamodel "github.com/alphagrips/academy-backend/internal/core/datamodel/finance"
)

// LedgerRow is the derived per-player-per-month receivable line. Pending is
// never clamped: a negative value is an overpayment and must stay visible.
type LedgerRow struct {
	PlayerID     int64  `json:"player_id"`
	PlayerName   string `json:"player_name"`
	Month        string `json:"month"`
	CategoryName string `json:"category_name"`
	FinalFee     int64  `json:"final_fee"`
	PaidAmount   int64  `json:"paid_amount"`
	Pending      int64  `json:"pending"`
}

// LedgerPlayer is the roster slice the builder needs: the player plus the
// category name already joined in.
type LedgerPlayer struct {
	ID           int64
	Name         string
	CategoryID   int64
	CategoryName string
}

// LedgerInput is everything the builder reads, fetched in one batch per
// academy so ledger construction does no further I/O.
type LedgerInput struct {
	Players   []*LedgerPlayer
	Schedules []*financeDatamodel.CategoryFeeSchedule
	Overrides []*financeDatamodel.PlayerFeeOverride
	Payments  []*financeDatamodel.PaymentLog
	Now       time.Time
}

// MonthKey formats a date as the YYYY-MM ledger month. Keys compare correctly
// as plain strings.
func MonthKey(t time.Time) string { return t.Format("2006-01") }

// SettledMode reports whether a payment mode counts toward paid_amount.
// In-flight and voided gateway orders are money that never arrived.
func SettledMode(mode string) bool {
	return mode != financeDatamodel.ModeOnlinePending && mode != financeDatamodel.ModeOnlineExpired
}

// ResolveScheduleFee picks, among active schedule rows for the category with
// effective_from on or before the month, the one with the latest
// effective_from; ties go to the highest id (latest insert wins).
func ResolveScheduleFee(schedules []*financeDatamodel.CategoryFeeSchedule, categoryID int64, month string) (int64, bool) {
	var best *financeDatamodel.CategoryFeeSchedule
	for _, s := range schedules {
		if s.CategoryID != categoryID || !s.IsActive {
			continue
		}
		key := MonthKey(s.EffectiveFrom)
		if key > month {
			continue
		}
		if best == nil {
			best = s
			continue
		}
		bestKey := MonthKey(best.EffectiveFrom)
		if key > bestKey || (key == bestKey && s.ID > best.ID) {
			best = s
		}
	}
	if best == nil {
		return 0, false
	}
	return best.MonthlyFee, true
}

// BuildLedger produces one row per (player, month) from the earliest billable
// month for that player through the current month. The current fee override
// applies from its effective month onward; earlier months fall back to the
// category schedule, and months with no resolvable fee charge zero.
func BuildLedger(in LedgerInput) []LedgerRow {
	overrideByPlayer := make(map[int64]*financeDatamodel.PlayerFeeOverride)
	for _, o := range in.Overrides {
		if o.IsCurrent {
			overrideByPlayer[o.PlayerID] = o
		}
	}

	earliestScheduleByCategory := make(map[int64]string)
	for _, s := range in.Schedules {
		if !s.IsActive {
			continue
		}
		key := MonthKey(s.EffectiveFrom)
		if cur, ok := earliestScheduleByCategory[s.CategoryID]; !ok || key < cur {
			earliestScheduleByCategory[s.CategoryID] = key
		}
	}

	paidByPlayerMonth := make(map[int64]map[string]int64)
	earliestPaymentByPlayer := make(map[int64]string)
	for _, p := range in.Payments {
		if SettledMode(p.Mode) {
			byMonth, ok := paidByPlayerMonth[p.PlayerID]
			if !ok {
				byMonth = make(map[string]int64)
				paidByPlayerMonth[p.PlayerID] = byMonth
			}
			byMonth[p.AppliedMonth] += p.Amount
		}
		if cur, ok := earliestPaymentByPlayer[p.PlayerID]; !ok || p.AppliedMonth < cur {
			earliestPaymentByPlayer[p.PlayerID] = p.AppliedMonth
		}
	}

	nowKey := MonthKey(in.Now)
	var rows []LedgerRow

	for _, player := range in.Players {
		override := overrideByPlayer[player.ID]

		start := ""
		if key, ok := earliestScheduleByCategory[player.CategoryID]; ok {
			start = key
		}
		if override != nil {
			if key := MonthKey(override.EffectiveFrom); start == "" || key < start {
				start = key
			}
		}
		if key, ok := earliestPaymentByPlayer[player.ID]; ok && (start == "" || key < start) {
			start = key
		}
		if start == "" || start > nowKey {
			continue
		}

		cursor, err := time.Parse("2006-01", start)
		if err != nil {
			continue
		}

		for key := MonthKey(cursor); key <= nowKey; key = MonthKey(cursor) {
			var finalFee int64
			if override != nil && key >= MonthKey(override.EffectiveFrom) {
				finalFee = override.TotalFee
			} else if fee, ok := ResolveScheduleFee(in.Schedules, player.CategoryID, key); ok {
				finalFee = fee
			}

			var paid int64
			if byMonth, ok := paidByPlayerMonth[player.ID]; ok {
				paid = byMonth[key]
			}

			rows = append(rows, LedgerRow{
				PlayerID:     player.ID,
				PlayerName:   player.Name,
				Month:        key,
				CategoryName: player.CategoryName,
				FinalFee:     finalFee,
				PaidAmount:   paid,
				Pending:      finalFee - paid,
			})

			cursor = cursor.AddDate(0, 1, 0)
		}
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].CategoryName != rows[j].CategoryName {
			return rows[i].CategoryName < rows[j].CategoryName
		}
		if rows[i].PlayerName != rows[j].PlayerName {
			return rows[i].PlayerName < rows[j].PlayerName
		}
		return rows[i].Month < rows[j].Month
	})

	return rows
}
