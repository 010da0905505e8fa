package infra

import (
	"fmt"

	"liquorpos/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase establishes a GORM connection backed by pgx and runs
// AutoMigrate for the ledger tables. The quantity CHECK constraint on
// brands is created by AutoMigrate from the model tag, so even a bug that
// bypassed the conditional decrement could not persist negative stock.
func NewDatabase(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	if err := RunMigrations(db); err != nil {
		return nil, fmt.Errorf("migrations: %w", err)
	}

	return db, nil
}

// RunMigrations creates or updates the ledger schema. Also used by
// integration tests against a scratch database.
func RunMigrations(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.Brand{},
		&model.StockEntry{},
		&model.Transaction{},
		&model.TransactionItem{},
		&model.Backup{},
		&model.LedgerMigration{},
	)
}
