package models

import "time"

// Backup tracks a JSON snapshot file of one user's data.
type Backup struct {
	ID        string `gorm:"primaryKey;size:64"` // UUID
	UserID    uint   `gorm:"index;not null"`
	FileName  string `gorm:"size:255;not null"`
	SizeBytes int64  `gorm:"not null"`
	CreatedAt time.Time

	User User `gorm:"constraint:OnDelete:CASCADE"`
}
