package models

import "time"

type ReportStatus string

const (
	ReportPending    ReportStatus = "pending"
	ReportInProgress ReportStatus = "in_progress"
	ReportResolved   ReportStatus = "resolved"
)

type CommunityReport struct {
	ID          int          `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID      int          `gorm:"not null;index" json:"userId"`
	Type        string       `gorm:"not null" json:"type"` // illegal_dumping, overflowing_bin, sanitation_issue
	Description string       `gorm:"not null" json:"description"`
	Location    string       `gorm:"not null" json:"location"`
	ImageURL    string       `json:"imageUrl,omitempty"`
	Status      ReportStatus `gorm:"type:text;default:'pending'" json:"status"`
	CreatedAt   time.Time    `json:"createdAt"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}
