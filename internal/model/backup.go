package model

import (
	"time"

	"github.com/google/uuid"
)

// Backup records one run of the (stub) backup hook. A real export pipeline
// is out of scope; the worker only writes these marker rows.
type Backup struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Path      string    `gorm:"not null"`
	Size      *int64
	Status    string `gorm:"not null"` // "success" | "failed"
	CreatedAt time.Time
}

// LedgerMigration is the completion marker for one-shot reconciliation jobs.
// A row with a given name means that job already ran and must not re-run.
type LedgerMigration struct {
	Name        string `gorm:"primaryKey"`
	CompletedAt time.Time
}
