package models

import "time"

// AuditLog records authenticated API operations for auditing. Only the
// audit trail is persisted; ledger state itself lives in memory.
type AuditLog struct {
	ID        uint   `gorm:"primaryKey"`
	Account   string `gorm:"size:64;index"`
	Method    string `gorm:"size:16"`
	Path      string `gorm:"size:255"`
	Status    int
	IP        string `gorm:"size:64"`
	UserAgent string `gorm:"size:255"`
	CreatedAt time.Time
}
