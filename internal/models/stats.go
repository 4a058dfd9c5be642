package models

// UserStats is a per-(user, month, year) aggregate, upserted on scan.
type UserStats struct {
	ID           int     `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID       int     `gorm:"not null;index:idx_user_month_year,unique" json:"userId"`
	Month        int     `gorm:"not null;index:idx_user_month_year,unique" json:"month"`
	Year         int     `gorm:"not null;index:idx_user_month_year,unique" json:"year"`
	WasteReduced float64 `gorm:"default:0" json:"wasteReduced"` // kg
	CarbonSaved  float64 `gorm:"default:0" json:"carbonSaved"`  // kg CO2
	PointsEarned int     `gorm:"default:0" json:"pointsEarned"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}
