package service

import (
	"context"
	"sort"

	"gorm.io/gorm"

	"tradejournal/internal/models"
	"tradejournal/internal/repository"
)

// stubRepo is a test-only in-memory implementation of repository.Repository.
// Filtering mirrors only the parts the service tests rely on.
type stubRepo struct {
	trades      map[string]models.Trade
	accounts    map[string]models.Account
	withdrawals map[string]models.Withdrawal
	equity      []models.EquitySnapshot
	checkpoints map[string]models.SyncCheckpoint

	replaceCalls int
}

func newStubRepo() *stubRepo {
	return &stubRepo{
		trades:      map[string]models.Trade{},
		accounts:    map[string]models.Account{},
		withdrawals: map[string]models.Withdrawal{},
		checkpoints: map[string]models.SyncCheckpoint{},
	}
}

func (s *stubRepo) InTx(ctx context.Context, fn func(tx *gorm.DB) error) error { return fn(nil) }

func (s *stubRepo) UpsertTrade(ctx context.Context, item *models.Trade) error {
	s.trades[item.ID] = *item
	return nil
}

func (s *stubRepo) InsertTrades(ctx context.Context, items []models.Trade) error {
	for _, item := range items {
		s.trades[item.ID] = item
	}
	return nil
}

func (s *stubRepo) GetTradeByID(ctx context.Context, id string) (*models.Trade, error) {
	if item, ok := s.trades[id]; ok {
		return &item, nil
	}
	return nil, nil
}

func (s *stubRepo) ListTrades(ctx context.Context, params repository.ListTradesParams) ([]models.Trade, error) {
	var out []models.Trade
	for _, item := range s.trades {
		if params.AccountID != nil && item.AccountID != *params.AccountID {
			continue
		}
		out = append(out, item)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].EntryDate.Before(out[j].EntryDate) })
	return out, nil
}

func (s *stubRepo) CountTrades(ctx context.Context, params repository.ListTradesParams) (int64, error) {
	items, _ := s.ListTrades(ctx, params)
	return int64(len(items)), nil
}

func (s *stubRepo) DeleteTrade(ctx context.Context, id string) error {
	delete(s.trades, id)
	return nil
}

func (s *stubRepo) UpsertAccount(ctx context.Context, item *models.Account) error {
	s.accounts[item.ID] = *item
	return nil
}

func (s *stubRepo) GetAccountByID(ctx context.Context, id string) (*models.Account, error) {
	if item, ok := s.accounts[id]; ok {
		return &item, nil
	}
	return nil, nil
}

func (s *stubRepo) ListAccounts(ctx context.Context) ([]models.Account, error) {
	var out []models.Account
	for _, item := range s.accounts {
		out = append(out, item)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *stubRepo) CountAccounts(ctx context.Context) (int64, error) {
	return int64(len(s.accounts)), nil
}

func (s *stubRepo) DeleteAccount(ctx context.Context, id string) error {
	delete(s.accounts, id)
	return nil
}

func (s *stubRepo) UpsertWithdrawal(ctx context.Context, item *models.Withdrawal) error {
	s.withdrawals[item.ID] = *item
	return nil
}

func (s *stubRepo) GetWithdrawalByID(ctx context.Context, id string) (*models.Withdrawal, error) {
	if item, ok := s.withdrawals[id]; ok {
		return &item, nil
	}
	return nil, nil
}

func (s *stubRepo) ListWithdrawals(ctx context.Context, params repository.ListWithdrawalsParams) ([]models.Withdrawal, error) {
	var out []models.Withdrawal
	for _, item := range s.withdrawals {
		if params.AccountID != nil && item.AccountID != *params.AccountID {
			continue
		}
		out = append(out, item)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *stubRepo) CountWithdrawals(ctx context.Context, params repository.ListWithdrawalsParams) (int64, error) {
	items, _ := s.ListWithdrawals(ctx, params)
	return int64(len(items)), nil
}

func (s *stubRepo) DeleteWithdrawal(ctx context.Context, id string) error {
	delete(s.withdrawals, id)
	return nil
}

func (s *stubRepo) LoadSnapshot(ctx context.Context) (models.Snapshot, error) {
	trades, _ := s.ListTrades(ctx, repository.ListTradesParams{})
	accounts, _ := s.ListAccounts(ctx)
	withdrawals, _ := s.ListWithdrawals(ctx, repository.ListWithdrawalsParams{})
	return models.Snapshot{Trades: trades, Accounts: accounts, Withdrawals: withdrawals}, nil
}

func (s *stubRepo) ReplaceSnapshot(ctx context.Context, snap models.Snapshot) error {
	s.replaceCalls++
	s.trades = map[string]models.Trade{}
	s.accounts = map[string]models.Account{}
	s.withdrawals = map[string]models.Withdrawal{}
	for _, item := range snap.Trades {
		s.trades[item.ID] = item
	}
	for _, item := range snap.Accounts {
		s.accounts[item.ID] = item
	}
	for _, item := range snap.Withdrawals {
		s.withdrawals[item.ID] = item
	}
	return nil
}

func (s *stubRepo) InsertEquitySnapshot(ctx context.Context, item *models.EquitySnapshot) error {
	s.equity = append(s.equity, *item)
	return nil
}

func (s *stubRepo) ListEquitySnapshots(ctx context.Context, params repository.ListEquitySnapshotsParams) ([]models.EquitySnapshot, error) {
	return s.equity, nil
}

func (s *stubRepo) UpsertSyncCheckpoint(ctx context.Context, item *models.SyncCheckpoint) error {
	s.checkpoints[item.SyncID] = *item
	return nil
}

func (s *stubRepo) GetSyncCheckpointBySyncID(ctx context.Context, syncID string) (*models.SyncCheckpoint, error) {
	if item, ok := s.checkpoints[syncID]; ok {
		return &item, nil
	}
	return nil, nil
}
