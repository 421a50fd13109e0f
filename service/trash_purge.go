package service

import (
	"context"
	"time"

	"cloudly/drive-api/aws"
	"cloudly/drive-api/model"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// TrashPurge permanently removes anything that has been sitting in the
// trash longer than retention: blobs first, then rows, then the owners'
// quota counters. Runs on its own ticker until the process exits
func TrashPurge(t, retention time.Duration, db *gorm.DB, s3c *aws.S3Client) {
	ticker := time.NewTicker(t)

	zap.L().Debug("Trash purge attached", zap.Duration("tick_every", t), zap.Duration("retention", retention))

	go func() {
		for range ticker.C {
			purgeOnce(retention, db, s3c)
		}
	}()
}

func purgeOnce(retention time.Duration, db *gorm.DB, s3c *aws.S3Client) {
	cutoff := time.Now().Add(-retention)

	var expired []model.File

	err := db.
		Where("is_trashed = ? AND trashed_at < ?", true, cutoff).
		Find(&expired).
		Error
	if err != nil {
		zap.L().Error("Failed to query db for expired trash", zap.Error(err))
		return
	}

	if len(expired) > 0 {
		keys := make([]string, 0, len(expired))
		freed := map[string]int64{}

		for _, f := range expired {
			if f.S3Key != "" {
				keys = append(keys, f.S3Key)
			}
			freed[f.OwnerID] += f.Size
		}

		if err := s3c.DeleteObjects(context.Background(), keys); err != nil {
			// Keep the rows so the next tick retries the blobs
			zap.L().Error("Failed to delete expired blobs", zap.Error(err))
			return
		}

		err = db.Transaction(func(tx *gorm.DB) error {
			err := tx.
				Where("is_trashed = ? AND trashed_at < ?", true, cutoff).
				Delete(&model.File{}).
				Error
			if err != nil {
				return err
			}

			for ownerID, size := range freed {
				var u model.User

				if err := tx.Where("id = ?", ownerID).First(&u).Error; err != nil {
					continue
				}

				u.StorageUsed = max(0, u.StorageUsed-size)

				err = tx.
					Model(&model.User{}).
					Where("id = ?", ownerID).
					Update("storage_used", u.StorageUsed).
					Error
				if err != nil {
					return err
				}
			}

			return nil
		})
		if err != nil {
			zap.L().Error("Failed to delete expired file rows", zap.Error(err))
			return
		}
	}

	// Folder subtrees were trashed together with their files, the rows
	// can go directly
	err = db.
		Where("is_trashed = ? AND trashed_at < ?", true, cutoff).
		Delete(&model.Folder{}).
		Error
	if err != nil {
		zap.L().Error("Failed to delete expired folder rows", zap.Error(err))
		return
	}

	if len(expired) > 0 {
		zap.L().Info("Trash purge finished", zap.Int("files", len(expired)))
	}
}
