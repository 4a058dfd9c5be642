package main

import (
	"log"

	"github.com/ojas8taori/trash-taste-ai/internal/config"
	"github.com/ojas8taori/trash-taste-ai/internal/database"
	"github.com/ojas8taori/trash-taste-ai/internal/seeds"
	"github.com/ojas8taori/trash-taste-ai/internal/storage"
)

// Standalone seeder for the Postgres backend: migrates the schema and
// installs the category taxonomy, starter challenges, achievement
// definitions and the demo user.
func main() {
	config.LoadConfig()
	database.Connect()

	store := storage.NewGormStore(database.DB)
	if err := store.Migrate(); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}

	seeds.SeedWasteCategories()
	seeds.SeedChallenges()
	seeds.SeedAchievements()

	if _, err := seeds.GetOrCreateDemoUser(); err != nil {
		log.Fatalf("Failed to seed demo user: %v", err)
	}

	log.Println("✅ Seeding complete")
}
