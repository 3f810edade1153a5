package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

const (
	TradeStatusOpen    = "OPEN"
	TradeStatusClosed  = "CLOSED"
	TradeStatusPending = "PENDING"

	DirectionLong  = "LONG"
	DirectionShort = "SHORT"
)

// Trade is a single position record. PnL is authoritative as stored:
// nothing in this service recomputes it from entry/exit prices, so
// broker-reported figures survive import unchanged.
type Trade struct {
	ID        string `gorm:"type:varchar(40);primaryKey" json:"id"`
	AccountID string `gorm:"type:varchar(40);not null;index" json:"account_id"`

	Symbol    string `gorm:"type:varchar(40);not null;index" json:"symbol"`
	Direction string `gorm:"type:varchar(10);not null" json:"direction"`
	Status    string `gorm:"type:varchar(10);not null;default:'OPEN';index" json:"status"`

	EntryDate time.Time  `gorm:"type:timestamptz;not null;index" json:"entry_date"`
	ExitDate  *time.Time `gorm:"type:timestamptz" json:"exit_date,omitempty"`

	EntryPrice decimal.Decimal  `gorm:"type:numeric(30,10);not null;default:0" json:"entry_price"`
	ExitPrice  *decimal.Decimal `gorm:"type:numeric(30,10)" json:"exit_price,omitempty"`
	Size       decimal.Decimal  `gorm:"type:numeric(30,10);not null;default:0" json:"size"`
	PnL        decimal.Decimal  `gorm:"column:pnl;type:numeric(30,10);not null;default:0" json:"pnl"`
	Fees       *decimal.Decimal `gorm:"type:numeric(30,10)" json:"fees,omitempty"`

	StopLoss   *decimal.Decimal `gorm:"column:stop_loss;type:numeric(30,10)" json:"stop_loss,omitempty"`
	TakeProfit *decimal.Decimal `gorm:"column:take_profit;type:numeric(30,10)" json:"take_profit,omitempty"`

	Setup string         `gorm:"type:varchar(100)" json:"setup,omitempty"`
	Notes string         `gorm:"type:text" json:"notes,omitempty"`
	Tags  datatypes.JSON `gorm:"type:jsonb" json:"tags,omitempty"`

	CreatedAt time.Time `gorm:"type:timestamptz;autoCreateTime;index" json:"created_at"`
	UpdatedAt time.Time `gorm:"type:timestamptz;autoUpdateTime" json:"updated_at"`
}

func (Trade) TableName() string {
	return "trades"
}

// Closed reports whether the trade participates in P&L statistics.
func (t Trade) Closed() bool {
	return t.Status == TradeStatusClosed
}
