package models

import "time"

// Achievement is a static definition seeded at startup. Condition is a
// stat key ("scans", "points", "level") matched against Threshold.
type Achievement struct {
	ID          int    `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string `gorm:"not null" json:"name"`
	Description string `gorm:"not null" json:"description"`
	Icon        string `json:"icon"`
	Condition   string `gorm:"not null" json:"condition"`
	Threshold   int    `gorm:"not null" json:"threshold"`
}

// UserAchievement records an unlock. Append-only.
type UserAchievement struct {
	ID            int       `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID        int       `gorm:"not null;index" json:"userId"`
	AchievementID int       `gorm:"not null" json:"achievementId"`
	UnlockedAt    time.Time `json:"unlockedAt"`

	User        User        `gorm:"foreignKey:UserID" json:"-"`
	Achievement Achievement `gorm:"foreignKey:AchievementID" json:"achievement,omitempty"`
}
