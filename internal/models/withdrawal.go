package models

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	WithdrawalStatusCompleted = "COMPLETED"
	WithdrawalStatusPending   = "PENDING"
)

// Withdrawal is a capital removal event. Status is informational only:
// the amount reduces the computed balance either way.
type Withdrawal struct {
	ID        string `gorm:"type:varchar(40);primaryKey" json:"id"`
	AccountID string `gorm:"type:varchar(40);not null;index" json:"account_id"`

	Amount decimal.Decimal `gorm:"type:numeric(30,10);not null" json:"amount"`
	Date   time.Time       `gorm:"type:timestamptz;not null;index" json:"date"`
	Method string          `gorm:"type:varchar(100)" json:"method,omitempty"`
	Status string          `gorm:"type:varchar(10);not null;default:'COMPLETED'" json:"status"`
	Notes  string          `gorm:"type:text" json:"notes,omitempty"`

	CreatedAt time.Time `gorm:"type:timestamptz;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"type:timestamptz;autoUpdateTime" json:"updated_at"`
}

func (Withdrawal) TableName() string {
	return "withdrawals"
}
