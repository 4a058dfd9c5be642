package models

type WasteCategory struct {
	ID              int    `gorm:"primaryKey;autoIncrement" json:"id"`
	Name            string `gorm:"not null" json:"name"`
	Description     string `gorm:"not null" json:"description"`
	Color           string `gorm:"not null" json:"color"`
	Icon            string `gorm:"not null" json:"icon"`
	PickupFrequency string `gorm:"not null" json:"pickupFrequency"`
}
