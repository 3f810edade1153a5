package service

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"tradejournal/internal/models"
)

func closedTrade(id, accountID string, pnl int64, entry time.Time) models.Trade {
	return models.Trade{
		ID:        id,
		AccountID: accountID,
		Symbol:    "EURUSD",
		Direction: models.DirectionLong,
		Status:    models.TradeStatusClosed,
		EntryDate: entry,
		PnL:       decimal.NewFromInt(pnl),
	}
}

func TestSummaryAllAccounts(t *testing.T) {
	repo := newStubRepo()
	seedAccount(repo, "a1", 1000)
	seedAccount(repo, "a2", 500)
	now := time.Now()
	repo.trades["t1"] = closedTrade("t1", "a1", 100, now)
	repo.trades["t2"] = closedTrade("t2", "a2", -40, now.Add(time.Hour))

	svc := &AnalyticsService{Repo: repo}
	got, err := svc.Summary(context.Background(), Filter{})
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if !got.NetPnL.Equal(decimal.NewFromInt(60)) {
		t.Fatalf("netPnl=%s want=60", got.NetPnL)
	}
	// Initial balance spans both accounts when no filter is set.
	if !got.CurrentBalance.Equal(decimal.NewFromInt(1560)) {
		t.Fatalf("balance=%s want=1560", got.CurrentBalance)
	}
}

func TestSummaryAccountFilter(t *testing.T) {
	repo := newStubRepo()
	seedAccount(repo, "a1", 1000)
	seedAccount(repo, "a2", 500)
	now := time.Now()
	repo.trades["t1"] = closedTrade("t1", "a1", 100, now)
	repo.trades["t2"] = closedTrade("t2", "a2", -40, now)

	accountID := "a1"
	svc := &AnalyticsService{Repo: repo}
	got, err := svc.Summary(context.Background(), Filter{AccountID: &accountID})
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if !got.NetPnL.Equal(decimal.NewFromInt(100)) {
		t.Fatalf("netPnl=%s want=100", got.NetPnL)
	}
	if !got.CurrentBalance.Equal(decimal.NewFromInt(1100)) {
		t.Fatalf("balance=%s want=1100", got.CurrentBalance)
	}
}

func TestEquityCurveStartsAtInitialBalance(t *testing.T) {
	repo := newStubRepo()
	seedAccount(repo, "a1", 1000)
	now := time.Now()
	repo.trades["t1"] = closedTrade("t1", "a1", 100, now)

	svc := &AnalyticsService{Repo: repo}
	points, err := svc.EquityCurve(context.Background(), Filter{})
	if err != nil {
		t.Fatalf("curve: %v", err)
	}
	if len(points) != 2 {
		t.Fatalf("points=%d want=2", len(points))
	}
	if !points[0].Balance.Equal(decimal.NewFromInt(1000)) {
		t.Fatalf("start=%s want=1000", points[0].Balance)
	}
	if !points[1].Balance.Equal(decimal.NewFromInt(1100)) {
		t.Fatalf("end=%s want=1100", points[1].Balance)
	}
}
