// Package service contains multi-row operations and background maintenance
package service

import (
	"errors"
	"time"

	"cloudly/drive-api/model"

	"gorm.io/gorm"
)

// Folder hierarchies are created one level at a time so anything deeper
// than this is either abuse or a bug
const maxTrashDepth = 32

var ErrTrashTooDeep = errors.New("folder hierarchy too deep to trash")

// CascadeTrash soft-deletes a folder together with every file and
// subfolder below it, in one transaction
func CascadeTrash(db *gorm.DB, ownerID string, folderID uint) error {
	now := time.Now()

	return db.Transaction(func(tx *gorm.DB) error {
		return trashWalk(tx, ownerID, folderID, now, 0)
	})
}

func trashWalk(tx *gorm.DB, ownerID string, folderID uint, now time.Time, depth int) error {
	if depth >= maxTrashDepth {
		return ErrTrashTooDeep
	}

	err := tx.
		Model(&model.Folder{}).
		Where("id = ? AND owner_id = ?", folderID, ownerID).
		Updates(map[string]any{
			"is_trashed": true,
			"trashed_at": now,
		}).
		Error
	if err != nil {
		return err
	}

	err = tx.
		Model(&model.File{}).
		Where("folder_id = ? AND owner_id = ?", folderID, ownerID).
		Updates(map[string]any{
			"is_trashed": true,
			"trashed_at": now,
		}).
		Error
	if err != nil {
		return err
	}

	var childIDs []uint

	err = tx.
		Model(&model.Folder{}).
		Where("parent_folder_id = ? AND owner_id = ?", folderID, ownerID).
		Pluck("id", &childIDs).
		Error
	if err != nil {
		return err
	}

	for _, id := range childIDs {
		if err := trashWalk(tx, ownerID, id, now, depth+1); err != nil {
			return err
		}
	}

	return nil
}
