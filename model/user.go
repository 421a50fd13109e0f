// Package model defines database models
package model

import "time"

// DefaultStorageLimit is the free-tier quota given to every newly
// provisioned user.
const DefaultStorageLimit int64 = 15 << 30

type User struct {
	// ID is issued by the identity provider, never generated locally
	ID           string `gorm:"primaryKey" json:"id"`
	Email        string `gorm:"unique;not null" json:"email"`
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	Username     string `gorm:"unique;not null" json:"username"`
	AvatarURL    string `json:"avatarUrl"`
	StorageUsed  int64  `json:"storageUsed"`
	StorageLimit int64  `json:"storageLimit"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
