package model

import "time"

type Folder struct {
	ID      uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	OwnerID string `gorm:"index;not null" json:"ownerId"`

	// Nil means the folder sits at the root level
	ParentFolderID *uint `gorm:"index" json:"parentFolderId"`

	Name string `gorm:"not null" json:"name"`

	IsStarred bool       `json:"isStarred"`
	IsTrashed bool       `gorm:"index" json:"isTrashed"`
	TrashedAt *time.Time `json:"trashedAt,omitempty"`

	SharedWith []FolderShare `gorm:"foreignKey:FolderID;constraint:OnDelete:CASCADE" json:"sharedWith"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type FolderShare struct {
	ID         uint   `gorm:"primaryKey;autoIncrement" json:"-"`
	FolderID   uint   `gorm:"index" json:"-"`
	UserID     string `gorm:"index;not null" json:"userId"`
	Permission string `gorm:"default:view" json:"permission"` // view or edit
}
