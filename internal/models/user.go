package models

import "time"

// PointsPerLevel is how many eco-points it takes to advance one level.
const PointsPerLevel = 100

type User struct {
	ID        int       `gorm:"primaryKey;autoIncrement" json:"id"`
	Username  string    `gorm:"uniqueIndex;not null" json:"username"`
	Email     string    `gorm:"uniqueIndex;not null" json:"email"`
	Password  string    `gorm:"not null" json:"-"`
	EcoPoints int       `gorm:"default:0" json:"ecoPoints"`
	Level     int       `gorm:"default:1" json:"level"`
	CreatedAt time.Time `json:"createdAt"`
}

// LevelForPoints derives the level shown on the profile from total points.
func LevelForPoints(points int) int {
	return points/PointsPerLevel + 1
}
