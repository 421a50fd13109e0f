package api

import (
	"cloudly/drive-api/model"

	"gorm.io/gorm"
)

// The download-URL and streaming paths are two deliberate capabilities
// (redirect vs proxy) but they must agree on who may see a file, so both
// go through fileForViewer.

// fileForViewer returns the file when the caller owns it or appears in
// its share list, gorm.ErrRecordNotFound otherwise
func fileForViewer(d *gorm.DB, fileID, userID string) (*model.File, error) {
	shared := d.
		Model(&model.FileShare{}).
		Select("file_id").
		Where("user_id = ?", userID)

	var f model.File

	err := d.
		Where("id = ? AND (owner_id = ? OR id IN (?))", fileID, userID, shared).
		First(&f).
		Error
	if err != nil {
		return nil, err
	}

	return &f, nil
}

// folderForViewer is the folder counterpart of fileForViewer
func folderForViewer(d *gorm.DB, folderID, userID string) (*model.Folder, error) {
	shared := d.
		Model(&model.FolderShare{}).
		Select("folder_id").
		Where("user_id = ?", userID)

	var f model.Folder

	err := d.
		Where("id = ? AND (owner_id = ? OR id IN (?))", folderID, userID, shared).
		First(&f).
		Error
	if err != nil {
		return nil, err
	}

	return &f, nil
}

// ownedFile returns the file only for its owner. Mutations never go
// through the share list
func ownedFile(d *gorm.DB, fileID, userID string) (*model.File, error) {
	var f model.File

	err := d.
		Where("id = ? AND owner_id = ?", fileID, userID).
		First(&f).
		Error
	if err != nil {
		return nil, err
	}

	return &f, nil
}

func ownedFolder(d *gorm.DB, folderID, userID string) (*model.Folder, error) {
	var f model.Folder

	err := d.
		Where("id = ? AND owner_id = ?", folderID, userID).
		First(&f).
		Error
	if err != nil {
		return nil, err
	}

	return &f, nil
}
