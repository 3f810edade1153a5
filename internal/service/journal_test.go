package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"tradejournal/internal/models"
)

func seedAccount(repo *stubRepo, id string, balance int64) {
	repo.accounts[id] = models.Account{
		ID:       id,
		Name:     "acct " + id,
		Currency: "USD",
		Balance:  decimal.NewFromInt(balance),
	}
}

func TestCreateTradeDefaults(t *testing.T) {
	repo := newStubRepo()
	seedAccount(repo, "a1", 1000)
	svc := &JournalService{Repo: repo}

	item := &models.Trade{
		AccountID: "a1",
		Symbol:    "  EURUSD ",
	}
	if err := svc.CreateTrade(context.Background(), item); err != nil {
		t.Fatalf("create: %v", err)
	}
	if item.ID == "" {
		t.Fatalf("expected generated id")
	}
	stored := repo.trades[item.ID]
	if stored.Symbol != "EURUSD" {
		t.Fatalf("symbol=%q want=EURUSD", stored.Symbol)
	}
	if stored.Direction != models.DirectionLong {
		t.Fatalf("direction=%q want=LONG", stored.Direction)
	}
	if stored.Status != models.TradeStatusOpen {
		t.Fatalf("status=%q want=OPEN", stored.Status)
	}
	if stored.EntryDate.IsZero() {
		t.Fatalf("expected entry date to default")
	}
}

func TestCreateTradeValidation(t *testing.T) {
	repo := newStubRepo()
	seedAccount(repo, "a1", 1000)
	svc := &JournalService{Repo: repo}

	err := svc.CreateTrade(context.Background(), &models.Trade{AccountID: "a1"})
	if !errors.Is(err, ErrMissingSymbol) {
		t.Fatalf("err=%v want=%v", err, ErrMissingSymbol)
	}
	err = svc.CreateTrade(context.Background(), &models.Trade{AccountID: "missing", Symbol: "BTCUSD"})
	if !errors.Is(err, ErrAccountNotFound) {
		t.Fatalf("err=%v want=%v", err, ErrAccountNotFound)
	}
	if len(repo.trades) != 0 {
		t.Fatalf("trades=%d want=0", len(repo.trades))
	}
}

func TestUpdateTradeUnknown(t *testing.T) {
	repo := newStubRepo()
	seedAccount(repo, "a1", 1000)
	svc := &JournalService{Repo: repo}

	err := svc.UpdateTrade(context.Background(), &models.Trade{ID: "nope", AccountID: "a1", Symbol: "BTCUSD"})
	if !errors.Is(err, ErrTradeNotFound) {
		t.Fatalf("err=%v want=%v", err, ErrTradeNotFound)
	}
}

func TestImportTradesReplacesByID(t *testing.T) {
	repo := newStubRepo()
	seedAccount(repo, "a1", 1000)
	svc := &JournalService{Repo: repo}

	batch := []models.Trade{
		{ID: "t-1001", AccountID: "a1", Symbol: "EURUSD", Status: models.TradeStatusClosed, PnL: decimal.NewFromInt(10), EntryDate: time.Now()},
		{ID: "t-1002", AccountID: "a1", Symbol: "EURUSD", Status: models.TradeStatusClosed, PnL: decimal.NewFromInt(-5), EntryDate: time.Now()},
	}
	if err := svc.ImportTrades(context.Background(), batch); err != nil {
		t.Fatalf("import: %v", err)
	}
	// Re-importing the same statement must overwrite, not duplicate.
	batch[0].PnL = decimal.NewFromInt(12)
	if err := svc.ImportTrades(context.Background(), batch); err != nil {
		t.Fatalf("reimport: %v", err)
	}
	if len(repo.trades) != 2 {
		t.Fatalf("trades=%d want=2", len(repo.trades))
	}
	if got := repo.trades["t-1001"].PnL; !got.Equal(decimal.NewFromInt(12)) {
		t.Fatalf("pnl=%s want=12", got)
	}
}

func TestDeleteLastAccountRefused(t *testing.T) {
	repo := newStubRepo()
	seedAccount(repo, "a1", 1000)
	svc := &JournalService{Repo: repo}

	err := svc.DeleteAccount(context.Background(), "a1")
	if !errors.Is(err, ErrLastAccount) {
		t.Fatalf("err=%v want=%v", err, ErrLastAccount)
	}

	seedAccount(repo, "a2", 500)
	if err := svc.DeleteAccount(context.Background(), "a1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, ok := repo.accounts["a1"]; ok {
		t.Fatalf("account a1 still present")
	}
}

func TestCreateWithdrawalValidation(t *testing.T) {
	repo := newStubRepo()
	seedAccount(repo, "a1", 1000)
	svc := &JournalService{Repo: repo}

	err := svc.CreateWithdrawal(context.Background(), &models.Withdrawal{AccountID: "a1"})
	if !errors.Is(err, ErrAmountNotPositive) {
		t.Fatalf("err=%v want=%v", err, ErrAmountNotPositive)
	}

	item := &models.Withdrawal{AccountID: "a1", Amount: decimal.NewFromInt(100)}
	if err := svc.CreateWithdrawal(context.Background(), item); err != nil {
		t.Fatalf("create: %v", err)
	}
	stored := repo.withdrawals[item.ID]
	if stored.Status != models.WithdrawalStatusCompleted {
		t.Fatalf("status=%q want=COMPLETED", stored.Status)
	}
	if stored.Date.IsZero() {
		t.Fatalf("expected date to default")
	}
}
