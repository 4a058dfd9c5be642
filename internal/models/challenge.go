package models

import "time"

type ChallengeType string

const (
	ChallengeDaily   ChallengeType = "daily"
	ChallengeWeekly  ChallengeType = "weekly"
	ChallengeMonthly ChallengeType = "monthly"
)

type Challenge struct {
	ID          int           `gorm:"primaryKey;autoIncrement" json:"id"`
	Title       string        `gorm:"not null" json:"title"`
	Description string        `gorm:"not null" json:"description"`
	Points      int           `gorm:"not null" json:"points"`
	Type        ChallengeType `gorm:"type:text;not null" json:"type"`
	IsActive    bool          `gorm:"default:true" json:"isActive"`
	StartDate   *time.Time    `json:"startDate"`
	EndDate     *time.Time    `json:"endDate"`
}

type UserChallenge struct {
	ID          int        `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID      int        `gorm:"not null;index" json:"userId"`
	ChallengeID int        `gorm:"not null" json:"challengeId"`
	Progress    int        `gorm:"default:0" json:"progress"` // 0-100
	Completed   bool       `gorm:"default:false" json:"completed"`
	CompletedAt *time.Time `json:"completedAt"`
	CreatedAt   time.Time  `json:"createdAt"`

	User      User      `gorm:"foreignKey:UserID" json:"-"`
	Challenge Challenge `gorm:"foreignKey:ChallengeID" json:"challenge,omitempty"`
}
