package stats

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"tradejournal/internal/models"
)

func closedTrade(id string, pnl float64, entry time.Time) models.Trade {
	return models.Trade{
		ID:        id,
		AccountID: "acc-1",
		Symbol:    "EURUSD",
		Direction: models.DirectionLong,
		Status:    models.TradeStatusClosed,
		EntryDate: entry,
		PnL:       decimal.NewFromFloat(pnl),
	}
}

func TestComputeSummary_Empty(t *testing.T) {
	initial := decimal.NewFromInt(1000)
	sum := ComputeSummary(nil, nil, initial)
	if !sum.NetPnL.IsZero() {
		t.Fatalf("net pnl=%s want=0", sum.NetPnL)
	}
	if sum.WinRate != 0 {
		t.Fatalf("win rate=%v want=0", sum.WinRate)
	}
	if sum.LossRate != 100 {
		t.Fatalf("loss rate=%v want=100", sum.LossRate)
	}
	if sum.ProfitFactor != 0 {
		t.Fatalf("profit factor=%v want=0", sum.ProfitFactor)
	}
	if sum.CurrentBalance.Cmp(initial) != 0 {
		t.Fatalf("balance=%s want=%s", sum.CurrentBalance, initial)
	}
}

func TestComputeSummary_MixedTrades(t *testing.T) {
	now := time.Now()
	trades := []models.Trade{
		closedTrade("t1", 100, now),
		closedTrade("t2", -40, now),
		{ID: "t3", Status: models.TradeStatusOpen, EntryDate: now, PnL: decimal.NewFromInt(50)},
	}
	sum := ComputeSummary(trades, nil, decimal.NewFromInt(1000))

	if sum.NetPnL.Cmp(decimal.NewFromInt(60)) != 0 {
		t.Fatalf("net pnl=%s want=60", sum.NetPnL)
	}
	if sum.WinRate != 50 {
		t.Fatalf("win rate=%v want=50", sum.WinRate)
	}
	if sum.GrossProfit.Cmp(decimal.NewFromInt(100)) != 0 {
		t.Fatalf("gross profit=%s want=100", sum.GrossProfit)
	}
	if sum.GrossLoss.Cmp(decimal.NewFromInt(-40)) != 0 {
		t.Fatalf("gross loss=%s want=-40", sum.GrossLoss)
	}
	if sum.ProfitFactor != 2.5 {
		t.Fatalf("profit factor=%v want=2.5", sum.ProfitFactor)
	}
	if sum.CurrentBalance.Cmp(decimal.NewFromInt(1060)) != 0 {
		t.Fatalf("balance=%s want=1060", sum.CurrentBalance)
	}
	if sum.OpenCount != 1 {
		t.Fatalf("open count=%d want=1", sum.OpenCount)
	}
	if sum.BestTrade.Cmp(decimal.NewFromInt(100)) != 0 || sum.WorstTrade.Cmp(decimal.NewFromInt(-40)) != 0 {
		t.Fatalf("best=%s worst=%s want 100/-40", sum.BestTrade, sum.WorstTrade)
	}
}

func TestComputeSummary_WithdrawalsReduceBalance(t *testing.T) {
	now := time.Now()
	trades := []models.Trade{
		closedTrade("t1", 100, now),
		closedTrade("t2", -40, now),
	}
	withdrawals := []models.Withdrawal{
		{ID: "w1", AccountID: "acc-1", Amount: decimal.NewFromInt(200), Status: models.WithdrawalStatusPending},
	}
	sum := ComputeSummary(trades, withdrawals, decimal.NewFromInt(1000))
	if sum.CurrentBalance.Cmp(decimal.NewFromInt(860)) != 0 {
		t.Fatalf("balance=%s want=860 (pending withdrawals still count)", sum.CurrentBalance)
	}
}

func TestComputeSummary_ZeroPnLCountsAsLoss(t *testing.T) {
	now := time.Now()
	trades := []models.Trade{
		closedTrade("t1", 0, now),
		closedTrade("t2", 10, now),
	}
	sum := ComputeSummary(trades, nil, decimal.Zero)
	if sum.WinCount != 1 || sum.LossCount != 1 {
		t.Fatalf("wins=%d losses=%d want 1/1", sum.WinCount, sum.LossCount)
	}
	if sum.WinRate != 50 {
		t.Fatalf("win rate=%v want=50", sum.WinRate)
	}
}

func TestComputeSummary_AllWinsProfitFactor(t *testing.T) {
	now := time.Now()
	trades := []models.Trade{
		closedTrade("t1", 30, now),
		closedTrade("t2", 20, now),
	}
	sum := ComputeSummary(trades, nil, decimal.Zero)
	// Denominator substitution: no losses means factor equals gross profit.
	if sum.ProfitFactor != 50 {
		t.Fatalf("profit factor=%v want=50", sum.ProfitFactor)
	}
	if sum.LossRate != 0 {
		t.Fatalf("loss rate=%v want=0", sum.LossRate)
	}
}

func TestComputeSummary_RatesAlwaysSumTo100(t *testing.T) {
	now := time.Now()
	cases := [][]models.Trade{
		nil,
		{closedTrade("t1", 5, now)},
		{closedTrade("t1", 5, now), closedTrade("t2", -5, now), closedTrade("t3", 1, now)},
	}
	for i, trades := range cases {
		sum := ComputeSummary(trades, nil, decimal.Zero)
		if sum.WinRate+sum.LossRate != 100 {
			t.Fatalf("case %d: win+loss=%v want=100", i, sum.WinRate+sum.LossRate)
		}
	}
}

func TestComputeSummary_Idempotent(t *testing.T) {
	now := time.Now()
	trades := []models.Trade{
		closedTrade("t1", 12.34, now),
		closedTrade("t2", -0.5, now),
	}
	a := ComputeSummary(trades, nil, decimal.NewFromInt(500))
	b := ComputeSummary(trades, nil, decimal.NewFromInt(500))
	if a.NetPnL.Cmp(b.NetPnL) != 0 || a.WinRate != b.WinRate || a.ProfitFactor != b.ProfitFactor {
		t.Fatalf("summaries differ across identical calls: %+v vs %+v", a, b)
	}
}

func TestBucketByWeekday_AlwaysSevenBuckets(t *testing.T) {
	buckets := BucketByWeekday(nil)
	if len(buckets) != 7 {
		t.Fatalf("len=%d want=7", len(buckets))
	}
	for i, b := range buckets {
		if b.Day != i {
			t.Fatalf("bucket %d has day=%d", i, b.Day)
		}
		if !b.PnL.IsZero() {
			t.Fatalf("bucket %d pnl=%s want=0", i, b.PnL)
		}
	}
	if buckets[0].Label != "Sunday" {
		t.Fatalf("first bucket=%q want Sunday", buckets[0].Label)
	}
}

func TestBucketByWeekday_SumsClosedOnly(t *testing.T) {
	// A known Monday, in local time so the bucket assignment is stable.
	monday := time.Date(2025, 6, 2, 10, 0, 0, 0, time.Local)
	trades := []models.Trade{
		closedTrade("t1", 10, monday),
		closedTrade("t2", 5, monday),
		{ID: "t3", Status: models.TradeStatusOpen, EntryDate: monday, PnL: decimal.NewFromInt(99)},
	}
	buckets := BucketByWeekday(trades)
	if buckets[1].PnL.Cmp(decimal.NewFromInt(15)) != 0 {
		t.Fatalf("monday pnl=%s want=15", buckets[1].PnL)
	}
}

func TestBucketByHour_AlwaysTwentyFourBuckets(t *testing.T) {
	at13 := time.Date(2025, 6, 2, 13, 30, 0, 0, time.Local)
	buckets := BucketByHour([]models.Trade{closedTrade("t1", 7, at13)})
	if len(buckets) != 24 {
		t.Fatalf("len=%d want=24", len(buckets))
	}
	if buckets[13].PnL.Cmp(decimal.NewFromInt(7)) != 0 {
		t.Fatalf("hour 13 pnl=%s want=7", buckets[13].PnL)
	}
}

func TestBucketBySymbol_FirstOccurrenceOrder(t *testing.T) {
	now := time.Now()
	trades := []models.Trade{
		{ID: "t1", Symbol: "XAUUSD", Status: models.TradeStatusClosed, EntryDate: now},
		{ID: "t2", Symbol: "EURUSD", Status: models.TradeStatusOpen, EntryDate: now},
		{ID: "t3", Symbol: "XAUUSD", Status: models.TradeStatusClosed, EntryDate: now},
		{ID: "t4", Symbol: "xauusd", Status: models.TradeStatusClosed, EntryDate: now},
	}
	got := BucketBySymbol(trades)
	if len(got) != 3 {
		t.Fatalf("len=%d want=3 (case-sensitive symbols)", len(got))
	}
	if got[0].Symbol != "XAUUSD" || got[0].Count != 2 {
		t.Fatalf("first=%+v want XAUUSD count=2", got[0])
	}
	if got[1].Symbol != "EURUSD" || got[1].Count != 1 {
		t.Fatalf("second=%+v want EURUSD count=1", got[1])
	}
}

func TestEquityCurve_StartPointAlwaysPresent(t *testing.T) {
	start := decimal.NewFromInt(2500)
	curve := EquityCurve(nil, start)
	if len(curve) != 1 {
		t.Fatalf("len=%d want=1", len(curve))
	}
	if curve[0].Label != "start" || curve[0].Balance.Cmp(start) != 0 {
		t.Fatalf("start point=%+v", curve[0])
	}
}

func TestEquityCurve_EndsAtStartPlusNet(t *testing.T) {
	base := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	trades := []models.Trade{
		closedTrade("t3", 25, base.Add(48*time.Hour)),
		closedTrade("t1", 100, base),
		closedTrade("t2", -40, base.Add(24*time.Hour)),
		{ID: "t4", Status: models.TradeStatusPending, EntryDate: base, PnL: decimal.NewFromInt(5)},
	}
	start := decimal.NewFromInt(1000)
	curve := EquityCurve(trades, start)
	if len(curve) != 4 {
		t.Fatalf("len=%d want=4 (3 closed + start)", len(curve))
	}
	// Points are ordered by entry time regardless of input order.
	if curve[1].Label != "t1" || curve[2].Label != "t2" || curve[3].Label != "t3" {
		t.Fatalf("order=%s,%s,%s want t1,t2,t3", curve[1].Label, curve[2].Label, curve[3].Label)
	}
	want := decimal.NewFromInt(1085)
	if curve[len(curve)-1].Balance.Cmp(want) != 0 {
		t.Fatalf("final balance=%s want=%s", curve[len(curve)-1].Balance, want)
	}
}
