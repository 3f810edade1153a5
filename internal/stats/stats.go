// Package stats computes derived journal metrics. Everything here is a pure
// function over value slices: no state, no caching, safe to call from any
// goroutine. Degenerate inputs (no trades, no closed trades) resolve to
// zero values, never to errors or non-finite numbers.
//
// Weekday and hour buckets bin by the entry timestamp in the process-local
// time zone. There is no per-trade time zone, so cross-timezone journals
// shift buckets with the host clock; that behavior is intentional and kept.
package stats

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"tradejournal/internal/models"
)

type Summary struct {
	NetPnL      decimal.Decimal `json:"net_pnl"`
	GrossProfit decimal.Decimal `json:"gross_profit"`
	GrossLoss   decimal.Decimal `json:"gross_loss"`

	ClosedCount int `json:"closed_count"`
	WinCount    int `json:"win_count"`
	LossCount   int `json:"loss_count"`
	OpenCount   int `json:"open_count"`

	WinRate      float64 `json:"win_rate"`
	LossRate     float64 `json:"loss_rate"`
	ProfitFactor float64 `json:"profit_factor"`

	AvgWin     decimal.Decimal `json:"avg_win"`
	AvgLoss    decimal.Decimal `json:"avg_loss"`
	BestTrade  decimal.Decimal `json:"best_trade"`
	WorstTrade decimal.Decimal `json:"worst_trade"`

	Withdrawn      decimal.Decimal `json:"withdrawn"`
	CurrentBalance decimal.Decimal `json:"current_balance"`
}

// ComputeSummary reduces the given records to aggregate metrics. Only
// CLOSED trades enter P&L figures; a closed trade with zero pnl counts as
// a loss. Withdrawals reduce the computed balance regardless of status.
func ComputeSummary(trades []models.Trade, withdrawals []models.Withdrawal, initialBalance decimal.Decimal) Summary {
	out := Summary{
		NetPnL:      decimal.Zero,
		GrossProfit: decimal.Zero,
		GrossLoss:   decimal.Zero,
		AvgWin:      decimal.Zero,
		AvgLoss:     decimal.Zero,
		BestTrade:   decimal.Zero,
		WorstTrade:  decimal.Zero,
		Withdrawn:   decimal.Zero,
	}

	for _, t := range trades {
		if !t.Closed() {
			out.OpenCount++
			continue
		}
		out.ClosedCount++
		out.NetPnL = out.NetPnL.Add(t.PnL)
		if t.PnL.IsPositive() {
			out.WinCount++
			out.GrossProfit = out.GrossProfit.Add(t.PnL)
		} else {
			out.LossCount++
			out.GrossLoss = out.GrossLoss.Add(t.PnL)
		}
		if out.ClosedCount == 1 {
			out.BestTrade = t.PnL
			out.WorstTrade = t.PnL
			continue
		}
		if t.PnL.GreaterThan(out.BestTrade) {
			out.BestTrade = t.PnL
		}
		if t.PnL.LessThan(out.WorstTrade) {
			out.WorstTrade = t.PnL
		}
	}

	if out.ClosedCount > 0 {
		out.WinRate = float64(out.WinCount) / float64(out.ClosedCount) * 100
	}
	out.LossRate = 100 - out.WinRate

	// Denominator falls back to 1 when there is no gross loss, so the
	// all-wins case reports the gross profit itself as the factor.
	denom := out.GrossLoss.Abs()
	if denom.IsZero() {
		denom = decimal.NewFromInt(1)
	}
	out.ProfitFactor, _ = out.GrossProfit.Div(denom).Abs().Float64()

	if out.WinCount > 0 {
		out.AvgWin = out.GrossProfit.Div(decimal.NewFromInt(int64(out.WinCount)))
	}
	if out.LossCount > 0 {
		out.AvgLoss = out.GrossLoss.Div(decimal.NewFromInt(int64(out.LossCount)))
	}

	for _, w := range withdrawals {
		out.Withdrawn = out.Withdrawn.Add(w.Amount)
	}
	out.CurrentBalance = initialBalance.Add(out.NetPnL).Sub(out.Withdrawn)

	return out
}

type WeekdayBucket struct {
	Day   int             `json:"day"`
	Label string          `json:"label"`
	PnL   decimal.Decimal `json:"pnl"`
}

// BucketByWeekday sums closed-trade pnl per entry weekday. All 7 buckets
// are always present, Sunday first.
func BucketByWeekday(trades []models.Trade) []WeekdayBucket {
	out := make([]WeekdayBucket, 7)
	for i := range out {
		out[i] = WeekdayBucket{
			Day:   i,
			Label: time.Weekday(i).String(),
			PnL:   decimal.Zero,
		}
	}
	for _, t := range trades {
		if !t.Closed() {
			continue
		}
		day := int(t.EntryDate.Local().Weekday())
		out[day].PnL = out[day].PnL.Add(t.PnL)
	}
	return out
}

type HourBucket struct {
	Hour int             `json:"hour"`
	PnL  decimal.Decimal `json:"pnl"`
}

// BucketByHour sums closed-trade pnl per entry hour of day. All 24 buckets
// are always present.
func BucketByHour(trades []models.Trade) []HourBucket {
	out := make([]HourBucket, 24)
	for i := range out {
		out[i] = HourBucket{Hour: i, PnL: decimal.Zero}
	}
	for _, t := range trades {
		if !t.Closed() {
			continue
		}
		hour := t.EntryDate.Local().Hour()
		out[hour].PnL = out[hour].PnL.Add(t.PnL)
	}
	return out
}

type SymbolCount struct {
	Symbol string `json:"symbol"`
	Count  int    `json:"count"`
}

// BucketBySymbol counts trades per distinct symbol, case-sensitive, in
// first-occurrence order. All trades count here, not just closed ones.
func BucketBySymbol(trades []models.Trade) []SymbolCount {
	index := map[string]int{}
	out := make([]SymbolCount, 0)
	for _, t := range trades {
		if i, ok := index[t.Symbol]; ok {
			out[i].Count++
			continue
		}
		index[t.Symbol] = len(out)
		out = append(out, SymbolCount{Symbol: t.Symbol, Count: 1})
	}
	return out
}

type EquityPoint struct {
	Label   string          `json:"label"`
	Time    *time.Time      `json:"time,omitempty"`
	Balance decimal.Decimal `json:"balance"`
}

// EquityCurve walks closed trades in entry-time order and emits the running
// balance after each one. The synthetic "start" point is always first, so
// an empty journal yields a single-point curve.
func EquityCurve(trades []models.Trade, startingBalance decimal.Decimal) []EquityPoint {
	closed := make([]models.Trade, 0, len(trades))
	for _, t := range trades {
		if t.Closed() {
			closed = append(closed, t)
		}
	}
	sort.SliceStable(closed, func(i, j int) bool {
		return closed[i].EntryDate.Before(closed[j].EntryDate)
	})

	out := make([]EquityPoint, 0, len(closed)+1)
	out = append(out, EquityPoint{Label: "start", Balance: startingBalance})
	balance := startingBalance
	for _, t := range closed {
		balance = balance.Add(t.PnL)
		ts := t.EntryDate
		out = append(out, EquityPoint{Label: t.ID, Time: &ts, Balance: balance})
	}
	return out
}
