package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"tradejournal/internal/models"
	"tradejournal/internal/repository"
	statesync "tradejournal/internal/sync"
)

var (
	ErrTradeNotFound      = errors.New("trade not found")
	ErrAccountNotFound    = errors.New("account not found")
	ErrWithdrawalNotFound = errors.New("withdrawal not found")
	ErrLastAccount        = errors.New("cannot delete the last account")
	ErrAmountNotPositive  = errors.New("withdrawal amount must be positive")
	ErrMissingSymbol      = errors.New("trade symbol is required")
	ErrMissingAccount     = errors.New("account reference is required")
)

// JournalService owns every mutation of the journal. The repository write is
// synchronous and ordered; the sync coordinator is told afterwards with the
// resulting full state, so the remote mirror can never observe a state the
// local store has not already committed.
type JournalService struct {
	Repo   repository.Repository
	Sync   *statesync.Coordinator
	Logger *zap.Logger
}

// --- Trades -----------------------------------------------------------------

func (s *JournalService) CreateTrade(ctx context.Context, item *models.Trade) error {
	if s == nil || s.Repo == nil || item == nil {
		return nil
	}
	if err := normalizeTrade(item); err != nil {
		return err
	}
	if account, err := s.Repo.GetAccountByID(ctx, item.AccountID); err != nil {
		return err
	} else if account == nil {
		return ErrAccountNotFound
	}
	if err := s.Repo.UpsertTrade(ctx, item); err != nil {
		return err
	}
	s.notify(ctx)
	return nil
}

func (s *JournalService) UpdateTrade(ctx context.Context, item *models.Trade) error {
	if s == nil || s.Repo == nil || item == nil {
		return nil
	}
	existing, err := s.Repo.GetTradeByID(ctx, item.ID)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrTradeNotFound
	}
	if err := normalizeTrade(item); err != nil {
		return err
	}
	if err := s.Repo.UpsertTrade(ctx, item); err != nil {
		return err
	}
	s.notify(ctx)
	return nil
}

func (s *JournalService) DeleteTrade(ctx context.Context, id string) error {
	if s == nil || s.Repo == nil {
		return nil
	}
	existing, err := s.Repo.GetTradeByID(ctx, id)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrTradeNotFound
	}
	if err := s.Repo.DeleteTrade(ctx, id); err != nil {
		return err
	}
	s.notify(ctx)
	return nil
}

// ImportTrades upserts an already-parsed batch, so re-importing the same
// statement replaces rows by ticket instead of duplicating them.
func (s *JournalService) ImportTrades(ctx context.Context, items []models.Trade) error {
	if s == nil || s.Repo == nil || len(items) == 0 {
		return nil
	}
	for i := range items {
		if err := s.Repo.UpsertTrade(ctx, &items[i]); err != nil {
			return err
		}
	}
	s.notify(ctx)
	return nil
}

func normalizeTrade(item *models.Trade) error {
	if strings.TrimSpace(item.ID) == "" {
		item.ID = uuid.NewString()
	}
	if strings.TrimSpace(item.AccountID) == "" {
		return ErrMissingAccount
	}
	item.Symbol = strings.TrimSpace(item.Symbol)
	if item.Symbol == "" {
		return ErrMissingSymbol
	}
	if item.Direction != models.DirectionShort {
		item.Direction = models.DirectionLong
	}
	switch item.Status {
	case models.TradeStatusClosed, models.TradeStatusPending:
	default:
		item.Status = models.TradeStatusOpen
	}
	if item.EntryDate.IsZero() {
		item.EntryDate = time.Now().UTC()
	}
	return nil
}

// --- Accounts ---------------------------------------------------------------

func (s *JournalService) CreateAccount(ctx context.Context, item *models.Account) error {
	if s == nil || s.Repo == nil || item == nil {
		return nil
	}
	if strings.TrimSpace(item.ID) == "" {
		item.ID = uuid.NewString()
	}
	item.Name = strings.TrimSpace(item.Name)
	if item.Currency == "" {
		item.Currency = "USD"
	}
	if err := s.Repo.UpsertAccount(ctx, item); err != nil {
		return err
	}
	s.notify(ctx)
	return nil
}

func (s *JournalService) UpdateAccount(ctx context.Context, item *models.Account) error {
	if s == nil || s.Repo == nil || item == nil {
		return nil
	}
	existing, err := s.Repo.GetAccountByID(ctx, item.ID)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrAccountNotFound
	}
	if err := s.Repo.UpsertAccount(ctx, item); err != nil {
		return err
	}
	s.notify(ctx)
	return nil
}

func (s *JournalService) DeleteAccount(ctx context.Context, id string) error {
	if s == nil || s.Repo == nil {
		return nil
	}
	existing, err := s.Repo.GetAccountByID(ctx, id)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrAccountNotFound
	}
	total, err := s.Repo.CountAccounts(ctx)
	if err != nil {
		return err
	}
	if total <= 1 {
		return ErrLastAccount
	}
	if err := s.Repo.DeleteAccount(ctx, id); err != nil {
		return err
	}
	s.notify(ctx)
	return nil
}

// --- Withdrawals ------------------------------------------------------------

func (s *JournalService) CreateWithdrawal(ctx context.Context, item *models.Withdrawal) error {
	if s == nil || s.Repo == nil || item == nil {
		return nil
	}
	if err := s.normalizeWithdrawal(ctx, item); err != nil {
		return err
	}
	if err := s.Repo.UpsertWithdrawal(ctx, item); err != nil {
		return err
	}
	s.notify(ctx)
	return nil
}

func (s *JournalService) UpdateWithdrawal(ctx context.Context, item *models.Withdrawal) error {
	if s == nil || s.Repo == nil || item == nil {
		return nil
	}
	existing, err := s.Repo.GetWithdrawalByID(ctx, item.ID)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrWithdrawalNotFound
	}
	if err := s.normalizeWithdrawal(ctx, item); err != nil {
		return err
	}
	if err := s.Repo.UpsertWithdrawal(ctx, item); err != nil {
		return err
	}
	s.notify(ctx)
	return nil
}

func (s *JournalService) DeleteWithdrawal(ctx context.Context, id string) error {
	if s == nil || s.Repo == nil {
		return nil
	}
	existing, err := s.Repo.GetWithdrawalByID(ctx, id)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrWithdrawalNotFound
	}
	if err := s.Repo.DeleteWithdrawal(ctx, id); err != nil {
		return err
	}
	s.notify(ctx)
	return nil
}

func (s *JournalService) normalizeWithdrawal(ctx context.Context, item *models.Withdrawal) error {
	if strings.TrimSpace(item.ID) == "" {
		item.ID = uuid.NewString()
	}
	if !item.Amount.IsPositive() {
		return ErrAmountNotPositive
	}
	if strings.TrimSpace(item.AccountID) == "" {
		return ErrMissingAccount
	}
	if account, err := s.Repo.GetAccountByID(ctx, item.AccountID); err != nil {
		return err
	} else if account == nil {
		return ErrAccountNotFound
	}
	if item.Status != models.WithdrawalStatusPending {
		item.Status = models.WithdrawalStatusCompleted
	}
	if item.Date.IsZero() {
		item.Date = time.Now().UTC()
	}
	return nil
}

// notify hands the coordinator the post-mutation state. A snapshot load
// failure only costs this round of mirroring, never the mutation itself.
func (s *JournalService) notify(ctx context.Context) {
	if s.Sync == nil {
		return
	}
	snap, err := s.Repo.LoadSnapshot(ctx)
	if err != nil {
		if s.Logger != nil {
			s.Logger.Warn("snapshot load for sync failed", zap.Error(err))
		}
		return
	}
	s.Sync.Notify(snap)
}
