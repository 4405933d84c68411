package utils

import (
	"educa/database"
	"educa/logger"
	courseModels "educa/models/course"
	courseRepository "educa/repositories/course"

	"github.com/jinzhu/now"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// InitializeOrphanSweeper schedules SweepOrphanItems on the given cron spec.
// An empty spec leaves the sweeper off.
func InitializeOrphanSweeper(spec string) (*cron.Cron, error) {
	if spec == "" {
		logger.Log.Info("[ORPHAN-SWEEPER] disabled, ORPHAN_SWEEP_SCHEDULE unset")
		return nil, nil
	}

	c := cron.New()
	_, err := c.AddFunc(spec, func() {
		removed, err := SweepOrphanItems(database.Database.Db)
		if err != nil {
			logger.Log.Error("[ORPHAN-SWEEPER] sweep failed", zap.Error(err))
			return
		}
		logger.Log.Info("[ORPHAN-SWEEPER] sweep finished", zap.Int("removed", removed))
	})
	if err != nil {
		return nil, err
	}

	c.Start()
	logger.Log.Info("[ORPHAN-SWEEPER] started", zap.String("schedule", spec))
	return c, nil
}

// SweepOrphanItems deletes items created before today that no content row
// references, together with their uploads.
func SweepOrphanItems(db *gorm.DB) (int, error) {
	cutoff := now.BeginningOfDay()

	removed := 0
	for _, kind := range courseModels.ItemKinds {
		items, err := courseRepository.OrphanItems(db, kind, cutoff)
		if err != nil {
			return removed, err
		}
		for _, item := range items {
			if err := courseRepository.DeleteItem(db, item); err != nil {
				return removed, err
			}
			RemoveStoredFile(item)
			removed++
		}
	}
	return removed, nil
}

// RemoveStoredFile drops the upload behind an item, logging failures
func RemoveStoredFile(item courseModels.Item) {
	fileURL := item.StoredFile()
	if fileURL == "" || Media == nil {
		return
	}
	if err := Media.Remove(fileURL); err != nil {
		logger.Log.Warn("failed to remove stored file", zap.String("file", fileURL), zap.Error(err))
	}
}
