package finance

import "sort"

// Summary is the finance dashboard headline: totals across every ledger row
// for the academy.
type Summary struct {
	TotalExpected  int64 `json:"total_expected"`
	TotalCollected int64 `json:"total_collected"`
	TotalPending   int64 `json:"total_pending"`
	ActivePlayers  int   `json:"active_players"`
}

// MonthEfficiency is collected-vs-expected for one ledger month.
type MonthEfficiency struct {
	Month         string  `json:"month"`
	Expected      int64   `json:"expected"`
	Collected     int64   `json:"collected"`
	EfficiencyPct float64 `json:"efficiency_pct"`
}

// Defaulter is a player ranked by total outstanding balance.
type Defaulter struct {
	PlayerID     int64  `json:"player_id"`
	PlayerName   string `json:"player_name"`
	CategoryName string `json:"category_name"`
	TotalPending int64  `json:"total_pending"`
}

func Summarize(rows []LedgerRow) Summary {
	var s Summary
	seen := make(map[int64]struct{})
	for _, r := range rows {
		s.TotalExpected += r.FinalFee
		s.TotalCollected += r.PaidAmount
		s.TotalPending += r.Pending
		seen[r.PlayerID] = struct{}{}
	}
	s.ActivePlayers = len(seen)
	return s
}

func CollectionEfficiency(rows []LedgerRow) []MonthEfficiency {
	byMonth := make(map[string]*MonthEfficiency)
	for _, r := range rows {
		m, ok := byMonth[r.Month]
		if !ok {
			m = &MonthEfficiency{Month: r.Month}
			byMonth[r.Month] = m
		}
		m.Expected += r.FinalFee
		m.Collected += r.PaidAmount
	}

	result := make([]MonthEfficiency, 0, len(byMonth))
	for _, m := range byMonth {
		if m.Expected > 0 {
			m.EfficiencyPct = float64(m.Collected) / float64(m.Expected) * 100
		}
		result = append(result, *m)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Month < result[j].Month })
	return result
}

func TopDefaulters(rows []LedgerRow, limit int) []Defaulter {
	byPlayer := make(map[int64]*Defaulter)
	for _, r := range rows {
		d, ok := byPlayer[r.PlayerID]
		if !ok {
			d = &Defaulter{PlayerID: r.PlayerID, PlayerName: r.PlayerName, CategoryName: r.CategoryName}
			byPlayer[r.PlayerID] = d
		}
		d.TotalPending += r.Pending
	}

	result := make([]Defaulter, 0, len(byPlayer))
	for _, d := range byPlayer {
		if d.TotalPending > 0 {
			result = append(result, *d)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].TotalPending != result[j].TotalPending {
			return result[i].TotalPending > result[j].TotalPending
		}
		return result[i].PlayerName < result[j].PlayerName
	})
	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result
}
