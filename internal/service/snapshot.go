package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"tradejournal/internal/models"
	"tradejournal/internal/repository"
	"tradejournal/internal/stats"
	statesync "tradejournal/internal/sync"
)

var ErrEmptySnapshot = errors.New("snapshot contains no accounts")

// SnapshotService handles whole-state operations: JSON export and import of
// the full journal, and the periodic equity history rows the cron writes.
type SnapshotService struct {
	Repo   repository.Repository
	Sync   *statesync.Coordinator
	Logger *zap.Logger
}

// Export returns the full journal state as one document.
func (s *SnapshotService) Export(ctx context.Context) (models.Snapshot, error) {
	if s == nil || s.Repo == nil {
		return models.Snapshot{}, nil
	}
	return s.Repo.LoadSnapshot(ctx)
}

// Import replaces the entire journal with the given document. The previous
// state is gone after this call, so handlers gate it behind an explicit
// confirmation flag.
func (s *SnapshotService) Import(ctx context.Context, snap models.Snapshot) error {
	if s == nil || s.Repo == nil {
		return nil
	}
	if len(snap.Accounts) == 0 {
		return ErrEmptySnapshot
	}
	if err := s.Repo.ReplaceSnapshot(ctx, snap); err != nil {
		return err
	}
	if s.Sync != nil {
		s.Sync.Notify(snap)
	}
	return nil
}

// SnapshotEquity writes one equity history row per account, computed from the
// account's trades and withdrawals at this moment. The cron runner calls it
// hourly; failures are logged per account so one bad account does not stop
// the rest.
func (s *SnapshotService) SnapshotEquity(ctx context.Context) error {
	if s == nil || s.Repo == nil {
		return nil
	}
	accounts, err := s.Repo.ListAccounts(ctx)
	if err != nil {
		return err
	}
	now := time.Now().UTC()
	var firstErr error
	for _, account := range accounts {
		if err := s.snapshotAccount(ctx, account, now); err != nil {
			if s.Logger != nil {
				s.Logger.Warn("equity snapshot failed",
					zap.String("account_id", account.ID),
					zap.Error(err))
			}
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}

func (s *SnapshotService) snapshotAccount(ctx context.Context, account models.Account, now time.Time) error {
	accountID := account.ID
	trades, err := s.Repo.ListTrades(ctx, repository.ListTradesParams{
		Limit:     -1,
		AccountID: &accountID,
	})
	if err != nil {
		return err
	}
	withdrawals, err := s.Repo.ListWithdrawals(ctx, repository.ListWithdrawalsParams{
		Limit:     -1,
		AccountID: &accountID,
	})
	if err != nil {
		return err
	}
	summary := stats.ComputeSummary(trades, withdrawals, account.Balance)
	return s.Repo.InsertEquitySnapshot(ctx, &models.EquitySnapshot{
		AccountID:  accountID,
		Balance:    summary.CurrentBalance,
		NetPnL:     summary.NetPnL,
		Withdrawn:  summary.Withdrawn,
		TradeCount: int64(summary.ClosedCount + summary.OpenCount),
		RecordedAt: now,
	})
}
