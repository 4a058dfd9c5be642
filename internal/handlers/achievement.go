package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ojas8taori/trash-taste-ai/internal/middleware"
	"github.com/ojas8taori/trash-taste-ai/pkg/logger"
)

type achievementView struct {
	ID          int        `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Icon        string     `json:"icon"`
	Threshold   int        `json:"threshold"`
	Unlocked    bool       `json:"unlocked"`
	UnlockedAt  *time.Time `json:"unlockedAt,omitempty"`
}

// GetAchievements returns every achievement definition with the current
// user's unlock state.
func (h *Handler) GetAchievements(c *gin.Context) {
	ctx := c.Request.Context()
	userID := middleware.CurrentUserID(c)

	definitions, err := h.Store.GetAchievements(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to fetch achievements")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	unlocks, err := h.Store.GetUserAchievements(ctx, userID)
	if err != nil {
		logger.Error().Err(err).Int("user_id", userID).Msg("Failed to fetch user achievements")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	unlockedAt := make(map[int]time.Time, len(unlocks))
	for _, ua := range unlocks {
		unlockedAt[ua.AchievementID] = ua.UnlockedAt
	}

	views := make([]achievementView, 0, len(definitions))
	for _, def := range definitions {
		view := achievementView{
			ID:          def.ID,
			Name:        def.Name,
			Description: def.Description,
			Icon:        def.Icon,
			Threshold:   def.Threshold,
		}
		if at, ok := unlockedAt[def.ID]; ok {
			view.Unlocked = true
			t := at
			view.UnlockedAt = &t
		}
		views = append(views, view)
	}

	c.JSON(http.StatusOK, views)
}
