package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Account is a capital pool trades are attributed to. Balance is the
// initial funding, never a live figure: the current balance is always
// computed from initial balance + realized P&L - withdrawals.
type Account struct {
	ID       string `gorm:"type:varchar(40);primaryKey" json:"id"`
	Name     string `gorm:"type:varchar(100);not null" json:"name"`
	Currency string `gorm:"type:varchar(10);not null;default:'USD'" json:"currency"`

	Balance decimal.Decimal `gorm:"type:numeric(30,10);not null;default:0" json:"balance"`

	CreatedAt time.Time `gorm:"type:timestamptz;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"type:timestamptz;autoUpdateTime" json:"updated_at"`
}

func (Account) TableName() string {
	return "accounts"
}
