package models

import "time"

// WasteScan is the persisted result of one classification call.
// Rows are append-only; nothing updates a scan after creation.
type WasteScan struct {
	ID             int       `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID         int       `gorm:"not null;index" json:"userId"`
	Category       string    `gorm:"not null" json:"category"`
	Subcategory    string    `json:"subcategory,omitempty"`
	DisposalMethod string    `gorm:"not null" json:"disposalMethod"`
	PointsEarned   int       `gorm:"not null" json:"pointsEarned"` // clamped to [1,50]
	Confidence     int       `gorm:"not null" json:"confidence"`   // clamped to [0,100]
	ImageURL       string    `json:"imageUrl,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}
