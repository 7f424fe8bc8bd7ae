package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Movement types. Stored as text but validated at the boundary on every write.
const (
	MovementEntry = "entry"
	MovementExit  = "exit"
)

// Movement represents a single cash entry or exit in the shared ledger.
// AmountMGA is always derived from Amount/Currency/ExchangeRate at write
// time, never taken from client input.
type Movement struct {
	ID           uint             `gorm:"primaryKey"`
	UserID       uint             `gorm:"index;not null"`
	Type         string           `gorm:"size:8;index;not null"` // entry / exit
	Currency     string           `gorm:"size:8;index;not null"`
	Amount       decimal.Decimal  `gorm:"type:decimal(10,2);not null"`
	ExchangeRate *decimal.Decimal `gorm:"type:decimal(10,2)"` // nil -> default rate applied
	AmountMGA    decimal.Decimal  `gorm:"type:decimal(10,2);not null"`
	Description  string           `gorm:"type:text;not null"`
	Date         time.Time        `gorm:"index;not null"`
	Author       string           `gorm:"size:64;not null"` // connected user at creation
	Responsible  string           `gorm:"size:64;not null"` // user accountable for the movement
	IsSale       bool             `gorm:"not null;default:false"`
	CreatedAt    time.Time
	UpdatedAt    time.Time

	User User `gorm:"constraint:OnDelete:CASCADE"`
}
