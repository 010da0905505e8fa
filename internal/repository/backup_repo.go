package repository

import (
	"context"
	"time"

	"liquorpos/internal/model"

	"gorm.io/gorm"
)

// BackupRepository records runs of the stub backup hook.
type BackupRepository interface {
	Create(ctx context.Context, b *model.Backup) error
	ListRecent(ctx context.Context, limit int) ([]model.Backup, error)
}

type backupRepo struct{ db *gorm.DB }

func NewBackupRepository(db *gorm.DB) BackupRepository { return &backupRepo{db: db} }

func (r *backupRepo) Create(ctx context.Context, b *model.Backup) error {
	return r.db.WithContext(ctx).Create(b).Error
}

func (r *backupRepo) ListRecent(ctx context.Context, limit int) ([]model.Backup, error) {
	var backups []model.Backup
	err := r.db.WithContext(ctx).Order("created_at DESC").Limit(limit).Find(&backups).Error
	return backups, err
}

// MigrationRepository tracks completion markers for one-shot jobs.
type MigrationRepository interface {
	IsCompleted(ctx context.Context, name string) (bool, error)
	MarkCompletedTx(tx *gorm.DB, name string) error
}

type migrationRepo struct{ db *gorm.DB }

func NewMigrationRepository(db *gorm.DB) MigrationRepository { return &migrationRepo{db: db} }

func (r *migrationRepo) IsCompleted(ctx context.Context, name string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.LedgerMigration{}).
		Where("name = ?", name).Count(&count).Error
	return count > 0, err
}

func (r *migrationRepo) MarkCompletedTx(tx *gorm.DB, name string) error {
	return tx.Create(&model.LedgerMigration{Name: name, CompletedAt: time.Now()}).Error
}
