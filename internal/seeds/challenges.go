package seeds

import (
	"log"

	"github.com/ojas8taori/trash-taste-ai/internal/database"
	"github.com/ojas8taori/trash-taste-ai/internal/models"
)

func DefaultChallenges() []models.Challenge {
	return []models.Challenge{
		{Title: "Daily Scanner", Description: "Scan 5 waste items today.", Points: 25, Type: models.ChallengeDaily, IsActive: true},
		{Title: "Recycling Streak", Description: "Scan recyclables every day this week.", Points: 75, Type: models.ChallengeWeekly, IsActive: true},
		{Title: "E-Waste Hero", Description: "Properly dispose of electronic waste this month.", Points: 150, Type: models.ChallengeMonthly, IsActive: true},
	}
}

func SeedChallenges() {
	log.Println("🏆 Seeding Challenges...")

	var count int64
	database.DB.Model(&models.Challenge{}).Count(&count)
	if count > 0 {
		log.Printf("   ✅ Challenges already seeded (%d)", count)
		return
	}

	for _, challenge := range DefaultChallenges() {
		if err := database.DB.Create(&challenge).Error; err != nil {
			log.Printf("   ⚠️ Failed to seed challenge %s: %v", challenge.Title, err)
		}
	}
	log.Println("   ✅ Challenges seeded")
}
