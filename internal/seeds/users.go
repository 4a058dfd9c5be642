package seeds

import (
	"log"
	"time"

	"github.com/ojas8taori/trash-taste-ai/internal/database"
	"github.com/ojas8taori/trash-taste-ai/internal/models"
	"golang.org/x/crypto/bcrypt"
)

// GetOrCreateDemoUser makes sure user id 1 exists. The API treats it as
// the implicit current user when no token is presented.
func GetOrCreateDemoUser() (models.User, error) {
	log.Println("👤 Checking Demo User...")

	var user models.User
	err := database.DB.Where("username = ?", "demo").First(&user).Error
	if err == nil {
		log.Printf("   ✅ Demo user found: %s", user.Username)
		return user, nil
	}

	hash, _ := bcrypt.GenerateFromPassword([]byte("TrashTasteDemo2025!"), bcrypt.DefaultCost)

	user = models.User{
		Username:  "demo",
		Email:     "demo@trashtaste.app",
		Password:  string(hash),
		EcoPoints: 0,
		Level:     1,
		CreatedAt: time.Now(),
	}

	if err := database.DB.Create(&user).Error; err != nil {
		return models.User{}, err
	}

	log.Printf("   ✅ Demo user created: %s", user.Username)
	return user, nil
}
