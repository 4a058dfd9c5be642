package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ojas8taori/trash-taste-ai/internal/middleware"
	"github.com/ojas8taori/trash-taste-ai/internal/storage"
	"github.com/ojas8taori/trash-taste-ai/pkg/logger"
)

// recentScanWindow bounds how many scans the daily/weekly counters pull
// before filtering by timestamp in memory.
const recentScanWindow = 200

// GetStats handles GET /api/stats. Lifetime figures (total scans, waste
// and carbon impact) come from the scan count and the monthly-stats
// aggregates; only the daily/weekly counts are derived by filtering the
// user's recent scans by timestamp.
func (h *Handler) GetStats(c *gin.Context) {
	ctx := c.Request.Context()
	userID := middleware.CurrentUserID(c)

	user, err := h.Store.GetUser(ctx, userID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	totalScans, err := h.Store.CountUserScans(ctx, userID)
	if err != nil {
		logger.Error().Err(err).Int("user_id", userID).Msg("Failed to count scans for stats")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	wasteKg, carbonKg, err := h.Store.GetUserStatsTotals(ctx, userID)
	if err != nil {
		logger.Error().Err(err).Int("user_id", userID).Msg("Failed to sum monthly stats")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	scans, err := h.Store.GetUserScans(ctx, userID, recentScanWindow)
	if err != nil {
		logger.Error().Err(err).Int("user_id", userID).Msg("Failed to fetch scans for stats")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	now := time.Now()
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	startOfWeek := startOfDay.AddDate(0, 0, -int(now.Weekday()))

	var scansToday, scansThisWeek int
	for _, scan := range scans {
		if !scan.CreatedAt.Before(startOfDay) {
			scansToday++
		}
		if !scan.CreatedAt.Before(startOfWeek) {
			scansThisWeek++
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"totalScans":    totalScans,
		"scansToday":    scansToday,
		"scansThisWeek": scansThisWeek,
		"ecoPoints":     user.EcoPoints,
		"level":         user.Level,
		"wasteReduced":  wasteKg,
		"carbonSaved":   carbonKg,
	})
}

// GetUserMonthlyStats handles GET /api/user-stats/:userId/:month/:year.
func (h *Handler) GetUserMonthlyStats(c *gin.Context) {
	userID, err := strconv.Atoi(c.Param("userId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user id"})
		return
	}
	month, err := strconv.Atoi(c.Param("month"))
	if err != nil || month < 1 || month > 12 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid month"})
		return
	}
	year, err := strconv.Atoi(c.Param("year"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid year"})
		return
	}

	stats, err := h.Store.GetUserStats(c.Request.Context(), userID, month, year)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "No stats for that month"})
			return
		}
		logger.Error().Err(err).Int("user_id", userID).Msg("Failed to fetch monthly stats")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	c.JSON(http.StatusOK, stats)
}
