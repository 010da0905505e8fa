package worker

import (
	"context"
	"fmt"
	"time"

	"liquorpos/internal/model"
	"liquorpos/internal/repository"

	"github.com/rs/zerolog/log"
)

// BackupWorker is the stub export hook. There is no real backup pipeline —
// each run only records a marker row so the owner can see the hook fired.
type BackupWorker struct {
	backups repository.BackupRepository
	path    string
}

func NewBackupWorker(backups repository.BackupRepository, path string) *BackupWorker {
	return &BackupWorker{backups: backups, path: path}
}

func (w *BackupWorker) Run(ctx context.Context) error {
	record := &model.Backup{
		Path:   fmt.Sprintf("%s/%s.json", w.path, time.Now().UTC().Format("20060102T150405Z")),
		Status: "success",
	}
	if err := w.backups.Create(ctx, record); err != nil {
		return err
	}
	log.Info().Str("path", record.Path).Msg("backup hook recorded")
	return nil
}
