package entity

import "time"

// Timestamps is embedded by every persisted entity. gorm keeps both fields
// current on create and save.
type Timestamps struct {
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
