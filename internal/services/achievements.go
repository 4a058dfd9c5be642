package services

import (
	"context"

	"github.com/ojas8taori/trash-taste-ai/internal/models"
	"github.com/ojas8taori/trash-taste-ai/internal/storage"
	"github.com/ojas8taori/trash-taste-ai/pkg/logger"
)

// CheckAchievements evaluates every achievement definition against the
// user's current stats and unlocks any newly earned ones. Called after
// each point award. Unlock records are append-only.
func CheckAchievements(ctx context.Context, store storage.Store, userID int) ([]models.Achievement, error) {
	var unlocked []models.Achievement

	existing, err := store.GetUserAchievements(ctx, userID)
	if err != nil {
		return nil, err
	}
	owned := make(map[int]bool, len(existing))
	for _, ua := range existing {
		owned[ua.AchievementID] = true
	}

	scanCount, err := store.CountUserScans(ctx, userID)
	if err != nil {
		return nil, err
	}
	user, err := store.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	stats := map[string]int64{
		"scans":  scanCount,
		"points": int64(user.EcoPoints),
		"level":  int64(user.Level),
	}

	definitions, err := store.GetAchievements(ctx)
	if err != nil {
		return nil, err
	}

	for _, def := range definitions {
		if owned[def.ID] {
			continue
		}
		progress, ok := stats[def.Condition]
		if !ok {
			continue
		}
		if progress >= int64(def.Threshold) {
			ua := models.UserAchievement{
				UserID:        userID,
				AchievementID: def.ID,
			}
			if err := store.CreateUserAchievement(ctx, &ua); err != nil {
				logger.Error().Err(err).Int("achievement", def.ID).Msg("Failed to unlock achievement")
				continue
			}
			unlocked = append(unlocked, def)
		}
	}

	return unlocked, nil
}
