package seeds

import (
	"log"

	"github.com/ojas8taori/trash-taste-ai/internal/database"
	"github.com/ojas8taori/trash-taste-ai/internal/models"
)

// DefaultWasteCategories is the fixed taxonomy the classifier prompts
// against. Shared by the DB seeder and the in-memory store.
func DefaultWasteCategories() []models.WasteCategory {
	return []models.WasteCategory{
		{Name: "Organic", Description: "Food waste, garden waste, biodegradable materials", Color: "#4CAF50", Icon: "leaf", PickupFrequency: "weekly"},
		{Name: "Plastic", Description: "Bottles, containers, packaging, plastic bags", Color: "#2196F3", Icon: "recycle", PickupFrequency: "biweekly"},
		{Name: "Electronic", Description: "Phones, batteries, cables, computers, appliances", Color: "#9C27B0", Icon: "cpu", PickupFrequency: "monthly"},
		{Name: "Hazardous", Description: "Chemicals, paint, batteries, medical waste, toxic materials", Color: "#F44336", Icon: "alert-triangle", PickupFrequency: "monthly"},
		{Name: "Paper", Description: "Newspapers, cardboard, books, office paper", Color: "#795548", Icon: "file-text", PickupFrequency: "weekly"},
		{Name: "Glass", Description: "Bottles, jars, broken glass", Color: "#00BCD4", Icon: "wine", PickupFrequency: "biweekly"},
		{Name: "Metal", Description: "Cans, foil, metal objects", Color: "#607D8B", Icon: "box", PickupFrequency: "biweekly"},
		{Name: "Textile", Description: "Clothing, fabric, shoes", Color: "#E91E63", Icon: "shirt", PickupFrequency: "monthly"},
		{Name: "General", Description: "Items that don't fit other categories", Color: "#9E9E9E", Icon: "trash-2", PickupFrequency: "weekly"},
	}
}

func SeedWasteCategories() {
	log.Println("🗑️  Seeding Waste Categories...")

	var count int64
	database.DB.Model(&models.WasteCategory{}).Count(&count)
	if count > 0 {
		log.Printf("   ✅ Categories already seeded (%d)", count)
		return
	}

	for _, category := range DefaultWasteCategories() {
		if err := database.DB.Create(&category).Error; err != nil {
			log.Printf("   ⚠️ Failed to seed category %s: %v", category.Name, err)
		}
	}
	log.Println("   ✅ Waste categories seeded")
}
