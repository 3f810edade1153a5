package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"tradejournal/internal/models"
)

// Repository is the durable local store for the journal. All money stays in
// decimal columns; derived statistics are never persisted here.
type Repository interface {
	InTx(ctx context.Context, fn func(tx *gorm.DB) error) error

	// Trades
	UpsertTrade(ctx context.Context, item *models.Trade) error
	InsertTrades(ctx context.Context, items []models.Trade) error
	GetTradeByID(ctx context.Context, id string) (*models.Trade, error)
	ListTrades(ctx context.Context, params ListTradesParams) ([]models.Trade, error)
	CountTrades(ctx context.Context, params ListTradesParams) (int64, error)
	DeleteTrade(ctx context.Context, id string) error

	// Accounts
	UpsertAccount(ctx context.Context, item *models.Account) error
	GetAccountByID(ctx context.Context, id string) (*models.Account, error)
	ListAccounts(ctx context.Context) ([]models.Account, error)
	CountAccounts(ctx context.Context) (int64, error)
	DeleteAccount(ctx context.Context, id string) error

	// Withdrawals
	UpsertWithdrawal(ctx context.Context, item *models.Withdrawal) error
	GetWithdrawalByID(ctx context.Context, id string) (*models.Withdrawal, error)
	ListWithdrawals(ctx context.Context, params ListWithdrawalsParams) ([]models.Withdrawal, error)
	CountWithdrawals(ctx context.Context, params ListWithdrawalsParams) (int64, error)
	DeleteWithdrawal(ctx context.Context, id string) error

	// Whole-state snapshot, used by the remote mirror and by export/import.
	LoadSnapshot(ctx context.Context) (models.Snapshot, error)
	ReplaceSnapshot(ctx context.Context, snap models.Snapshot) error

	// Equity snapshots
	InsertEquitySnapshot(ctx context.Context, item *models.EquitySnapshot) error
	ListEquitySnapshots(ctx context.Context, params ListEquitySnapshotsParams) ([]models.EquitySnapshot, error)

	// Sync checkpoints
	UpsertSyncCheckpoint(ctx context.Context, item *models.SyncCheckpoint) error
	GetSyncCheckpointBySyncID(ctx context.Context, syncID string) (*models.SyncCheckpoint, error)
}

// ListTradesParams filters and pages a trade listing. Limit 0 picks the
// store default, a negative Limit disables paging entirely.
type ListTradesParams struct {
	Limit     int
	Offset    int
	AccountID *string
	Symbol    *string
	Status    *string
	Direction *string
	Since     *time.Time
	Until     *time.Time
	OrderBy   string
	Asc       *bool
}

type ListWithdrawalsParams struct {
	Limit     int
	Offset    int
	AccountID *string
	Status    *string
	Since     *time.Time
	Until     *time.Time
	OrderBy   string
	Asc       *bool
}

type ListEquitySnapshotsParams struct {
	Limit     int
	Offset    int
	AccountID *string
	Since     *time.Time
	Until     *time.Time
}
