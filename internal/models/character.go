package models

import "time"

// Character is a read-only reference entry in the character directory.
// Rows are seeded out of band (cmd/seed); the API never mutates them.
type Character struct {
	ID            uint       `gorm:"primaryKey" json:"id"`
	Key           string     `gorm:"size:100;uniqueIndex" json:"key"`
	Name          string     `gorm:"size:100;not null;index" json:"name"`
	Title         string     `gorm:"size:200" json:"title"`
	Vision        string     `gorm:"size:50" json:"vision"`
	Weapon        string     `gorm:"size:50" json:"weapon"`
	Gender        string     `gorm:"size:20" json:"gender"`
	Nation        string     `gorm:"size:50" json:"nation"`
	Affiliation   string     `gorm:"size:200" json:"affiliation"`
	Rarity        int        `json:"rarity"`
	Release       *time.Time `json:"release,omitempty"`
	Constellation string     `gorm:"size:100" json:"constellation"`
	Birthday      string     `gorm:"size:20" json:"birthday"`
	Description   string     `gorm:"type:text" json:"description"`
}
