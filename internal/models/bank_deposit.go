package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type DepositType string

const (
	DepositTypeDeposit  DepositType = "deposit"
	DepositTypeWithdraw DepositType = "withdraw"
)

// BankDeposit: one bank movement. Amount is signed: positive = deposit,
// negative = withdrawal.
type BankDeposit struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	Amount    decimal.Decimal `gorm:"type:numeric(14,3);not null" json:"amount"`
	Date      time.Time       `gorm:"type:date;index;not null" json:"-"`
	Type      DepositType     `gorm:"size:20;not null;default:deposit" json:"type"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}
