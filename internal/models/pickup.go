package models

import "time"

type PickupStatus string

const (
	PickupScheduled  PickupStatus = "scheduled"
	PickupInProgress PickupStatus = "in_progress"
	PickupCompleted  PickupStatus = "completed"
	PickupCancelled  PickupStatus = "cancelled"
)

// ValidPickupStatus reports whether s is one of the known statuses.
func ValidPickupStatus(s string) bool {
	switch PickupStatus(s) {
	case PickupScheduled, PickupInProgress, PickupCompleted, PickupCancelled:
		return true
	}
	return false
}

type Pickup struct {
	ID            int          `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID        int          `gorm:"not null;index" json:"userId"`
	CategoryID    int          `gorm:"not null" json:"categoryId"`
	ScheduledDate time.Time    `gorm:"not null" json:"scheduledDate"`
	Status        PickupStatus `gorm:"type:text;default:'scheduled'" json:"status"`
	Weight        *float64     `json:"weight"` // kg, set only when completed
	Notes         string       `json:"notes"`
	CreatedAt     time.Time    `json:"createdAt"`

	User     User          `gorm:"foreignKey:UserID" json:"-"`
	Category WasteCategory `gorm:"foreignKey:CategoryID" json:"-"`
}
