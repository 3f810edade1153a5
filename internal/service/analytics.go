package service

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"tradejournal/internal/models"
	"tradejournal/internal/repository"
	"tradejournal/internal/stats"
)

// AnalyticsService answers every derived-metrics query by recomputing over
// the current records. Nothing here is cached: a summary after a mutation
// always reflects that mutation.
type AnalyticsService struct {
	Repo repository.Repository
}

// Filter narrows analytics to one account and/or a time window. A nil
// AccountID means all accounts, with initial balances summed.
type Filter struct {
	AccountID *string
	Since     *time.Time
	Until     *time.Time
}

func (s *AnalyticsService) Summary(ctx context.Context, f Filter) (stats.Summary, error) {
	trades, withdrawals, initial, err := s.gather(ctx, f)
	if err != nil {
		return stats.Summary{}, err
	}
	return stats.ComputeSummary(trades, withdrawals, initial), nil
}

func (s *AnalyticsService) ByWeekday(ctx context.Context, f Filter) ([]stats.WeekdayBucket, error) {
	trades, err := s.trades(ctx, f)
	if err != nil {
		return nil, err
	}
	return stats.BucketByWeekday(trades), nil
}

func (s *AnalyticsService) ByHour(ctx context.Context, f Filter) ([]stats.HourBucket, error) {
	trades, err := s.trades(ctx, f)
	if err != nil {
		return nil, err
	}
	return stats.BucketByHour(trades), nil
}

func (s *AnalyticsService) BySymbol(ctx context.Context, f Filter) ([]stats.SymbolCount, error) {
	trades, err := s.trades(ctx, f)
	if err != nil {
		return nil, err
	}
	return stats.BucketBySymbol(trades), nil
}

func (s *AnalyticsService) EquityCurve(ctx context.Context, f Filter) ([]stats.EquityPoint, error) {
	trades, _, initial, err := s.gather(ctx, f)
	if err != nil {
		return nil, err
	}
	return stats.EquityCurve(trades, initial), nil
}

func (s *AnalyticsService) trades(ctx context.Context, f Filter) ([]models.Trade, error) {
	if s == nil || s.Repo == nil {
		return nil, nil
	}
	asc := true
	return s.Repo.ListTrades(ctx, repository.ListTradesParams{
		Limit:     -1,
		AccountID: f.AccountID,
		Since:     f.Since,
		Until:     f.Until,
		OrderBy:   "entry_date",
		Asc:       &asc,
	})
}

func (s *AnalyticsService) gather(ctx context.Context, f Filter) ([]models.Trade, []models.Withdrawal, decimal.Decimal, error) {
	if s == nil || s.Repo == nil {
		return nil, nil, decimal.Zero, nil
	}
	trades, err := s.trades(ctx, f)
	if err != nil {
		return nil, nil, decimal.Zero, err
	}
	withdrawals, err := s.Repo.ListWithdrawals(ctx, repository.ListWithdrawalsParams{
		Limit:     -1,
		AccountID: f.AccountID,
		Since:     f.Since,
		Until:     f.Until,
	})
	if err != nil {
		return nil, nil, decimal.Zero, err
	}

	initial := decimal.Zero
	accounts, err := s.Repo.ListAccounts(ctx)
	if err != nil {
		return nil, nil, decimal.Zero, err
	}
	for _, account := range accounts {
		if f.AccountID != nil && *f.AccountID != "" && account.ID != *f.AccountID {
			continue
		}
		initial = initial.Add(account.Balance)
	}
	return trades, withdrawals, initial, nil
}
