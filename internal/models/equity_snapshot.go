package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// EquitySnapshot is a periodic record of the computed balance per account,
// taken by the cron job so the balance history survives later trade edits.
type EquitySnapshot struct {
	ID        uint64 `gorm:"primaryKey;autoIncrement" json:"id"`
	AccountID string `gorm:"type:varchar(40);not null;index" json:"account_id"`

	Balance    decimal.Decimal `gorm:"type:numeric(30,10);not null" json:"balance"`
	NetPnL     decimal.Decimal `gorm:"column:net_pnl;type:numeric(30,10);not null;default:0" json:"net_pnl"`
	Withdrawn  decimal.Decimal `gorm:"type:numeric(30,10);not null;default:0" json:"withdrawn"`
	TradeCount int64           `gorm:"not null;default:0" json:"trade_count"`
	RecordedAt time.Time       `gorm:"type:timestamptz;not null;index" json:"recorded_at"`

	CreatedAt time.Time `gorm:"type:timestamptz;autoCreateTime" json:"created_at"`
}

func (EquitySnapshot) TableName() string {
	return "equity_snapshots"
}
