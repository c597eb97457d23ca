package model

import "time"

// Notification is one fan-out row per recipient. Mutated only to flip Read.
type Notification struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    uint      `gorm:"index;not null" json:"userId"`
	Text      string    `gorm:"size:512;not null" json:"text"`
	Link      string    `gorm:"size:255" json:"link,omitempty"`
	Read      bool      `gorm:"default:false;index" json:"read"`
	CreatedAt time.Time `json:"createdAt"`
}

func (Notification) TableName() string {
	return "notifications"
}
