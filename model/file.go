package model

import "time"

type File struct {
	ID      uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	OwnerID string `gorm:"index;not null" json:"ownerId"`

	// Nil means the file sits at the root level
	FolderID *uint `gorm:"index" json:"folderId"`

	Name string `gorm:"not null" json:"name"`

	// Derived from the MIME type, never user supplied
	Type     string `json:"type"`
	MimeType string `json:"mimeType"`
	Size     int64  `json:"size"`

	// Object storage locator. Unique by construction (timestamped key),
	// not enforced by the database
	S3Key string `gorm:"not null" json:"s3Key"`
	S3URL string `gorm:"not null" json:"s3Url"`

	IsStarred bool       `json:"isStarred"`
	IsTrashed bool       `gorm:"index" json:"isTrashed"`
	IsPublic  bool       `json:"isPublic"`
	TrashedAt *time.Time `json:"trashedAt,omitempty"`

	SharedWith []FileShare `gorm:"foreignKey:FileID;constraint:OnDelete:CASCADE" json:"sharedWith"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// FileShare grants another user access to a file. Sharing is an access
// grant, never a transfer of ownership.
type FileShare struct {
	ID         uint   `gorm:"primaryKey;autoIncrement" json:"-"`
	FileID     uint   `gorm:"index" json:"-"`
	UserID     string `gorm:"index;not null" json:"userId"`
	Permission string `gorm:"default:view" json:"permission"` // view or edit
}
