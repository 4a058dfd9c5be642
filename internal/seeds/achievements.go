package seeds

import (
	"log"

	"github.com/ojas8taori/trash-taste-ai/internal/database"
	"github.com/ojas8taori/trash-taste-ai/internal/models"
)

func DefaultAchievements() []models.Achievement {
	return []models.Achievement{
		{Name: "First Scan", Description: "Scanned your first waste item.", Icon: "camera", Condition: "scans", Threshold: 1},
		{Name: "Waste Watcher", Description: "Scanned 10 waste items.", Icon: "eye", Condition: "scans", Threshold: 10},
		{Name: "Sorting Machine", Description: "Scanned 50 waste items.", Icon: "layers", Condition: "scans", Threshold: 50},
		{Name: "Point Collector", Description: "Earned 100 eco-points.", Icon: "star", Condition: "points", Threshold: 100},
		{Name: "Eco Warrior", Description: "Earned 500 eco-points.", Icon: "shield", Condition: "points", Threshold: 500},
		{Name: "Level Five", Description: "Reached level 5.", Icon: "trending-up", Condition: "level", Threshold: 5},
	}
}

func SeedAchievements() {
	log.Println("🎖️ Seeding Achievements...")

	var count int64
	database.DB.Model(&models.Achievement{}).Count(&count)
	if count > 0 {
		log.Printf("   ✅ Achievements already seeded (%d)", count)
		return
	}

	for _, achievement := range DefaultAchievements() {
		if err := database.DB.Create(&achievement).Error; err != nil {
			log.Printf("   ⚠️ Failed to seed achievement %s: %v", achievement.Name, err)
		}
	}
	log.Println("   ✅ Achievements seeded")
}
