package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/ojas8taori/trash-taste-ai/pkg/logger"
)

// GetChallenges lists the currently active challenge templates.
func (h *Handler) GetChallenges(c *gin.Context) {
	challenges, err := h.Store.GetActiveChallenges(c.Request.Context())
	if err != nil {
		logger.Error().Err(err).Msg("Failed to fetch challenges")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	c.JSON(http.StatusOK, challenges)
}

// GetUserChallenges returns per-user progress for /api/user-challenges/:userId.
func (h *Handler) GetUserChallenges(c *gin.Context) {
	userID, err := strconv.Atoi(c.Param("userId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user id"})
		return
	}

	ucs, err := h.Store.GetUserChallenges(c.Request.Context(), userID)
	if err != nil {
		logger.Error().Err(err).Int("user_id", userID).Msg("Failed to fetch user challenges")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	c.JSON(http.StatusOK, ucs)
}
