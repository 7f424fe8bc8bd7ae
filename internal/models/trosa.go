package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Trosa is a debt owed by a named debtor. IsPaid and DatePaiement are
// derived from the payment sum and must stay consistent with it after
// every mutation (see internal/ledger).
type Trosa struct {
	ID           uint            `gorm:"primaryKey"`
	UserID       uint            `gorm:"index;not null"`
	DebtorName   string          `gorm:"size:64;index;not null"`
	Description  string          `gorm:"type:text;not null"`
	MontantTotal decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	IsPaid       bool            `gorm:"index;not null;default:false"`
	DatePaiement *time.Time      // set when fully paid, cleared when revived
	CreatedAt    time.Time
	UpdatedAt    time.Time

	User     User           `gorm:"constraint:OnDelete:CASCADE"`
	Payments []TrosaPayment `gorm:"constraint:OnDelete:CASCADE"`
}

// TrosaPayment is a single amount applied against a Trosa.
type TrosaPayment struct {
	ID           uint            `gorm:"primaryKey"`
	TrosaID      uint            `gorm:"index;not null"`
	Montant      decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	DatePaiement time.Time       `gorm:"index;not null"`
	Description  string          `gorm:"type:text"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
