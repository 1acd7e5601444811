// Package models contains data structures for the application's domain models.
package models

import (
	"time"

	"gorm.io/gorm"
)

// Guide status values. A guide is created pending and ends approved or
// rejected. Rejection keeps the row archived (soft-deleted) rather than
// destroying it, so moderation history survives.
const (
	GuideStatusPending  = "pending"
	GuideStatusApproved = "approved"
	GuideStatusRejected = "rejected"
)

// Guide represents a community-submitted build guide for a character.
type Guide struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Username    string    `gorm:"size:20;not null" json:"username"`
	CharacterID uint      `gorm:"not null;index" json:"character_id"`
	Character   Character `gorm:"foreignKey:CharacterID" json:"character"`
	Title       string    `gorm:"size:30;not null" json:"title"`
	Description string    `gorm:"type:text;not null" json:"description"`
	// PicturePath is a relative reference into the upload directory; it may
	// be empty (the picture is optional) and the file behind it may have
	// been pruned externally.
	PicturePath string         `gorm:"size:500" json:"picture_path,omitempty"`
	Status      string         `gorm:"size:16;not null;default:pending;index" json:"status"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}
