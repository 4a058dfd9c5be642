package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ojas8taori/trash-taste-ai/internal/database"
	"github.com/ojas8taori/trash-taste-ai/internal/middleware"
	"github.com/ojas8taori/trash-taste-ai/internal/models"
	"github.com/ojas8taori/trash-taste-ai/internal/services"
	"github.com/ojas8taori/trash-taste-ai/internal/storage"
	"github.com/ojas8taori/trash-taste-ai/pkg/logger"
	"github.com/ojas8taori/trash-taste-ai/pkg/utils"
)

const (
	maxScanUploadSize = 5 << 20 // 5MB

	// Each scan moves every active challenge forward by this much;
	// five scans complete a challenge.
	scanChallengeIncrement = 20
)

var allowedScanMimeTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
}

// CreateScan handles POST /api/scan: multipart image upload, external
// classification, persistence and point award. Classification runs
// before persistence so its fallback still produces a storable scan row
// even when the upstream service is down.
func (h *Handler) CreateScan(c *gin.Context) {
	ctx := c.Request.Context()
	userID := middleware.CurrentUserID(c)

	// The user must exist before we touch the vision API
	user, err := h.Store.GetUser(ctx, userID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	// Redis-backed per-user limit; fail open when Redis is down
	if database.Redis != nil {
		allowed, err := database.CheckRateLimit(fmt.Sprintf("scan:%d", userID), 10, time.Minute)
		if err == nil && !allowed {
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "Too many scans, try again in a minute"})
			return
		}
	}

	file, header, err := c.Request.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No image file provided"})
		return
	}
	defer file.Close()

	if header.Size > maxScanUploadSize {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Image too large (max 5MB)"})
		return
	}

	// Sniff the real content type; the client-sent header is not trusted
	head := make([]byte, 512)
	n, err := file.Read(head)
	if err != nil && err != io.EOF {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unreadable image file"})
		return
	}
	mimeType := http.DetectContentType(head[:n])
	ext, ok := allowedScanMimeTypes[mimeType]
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unsupported image type (jpeg, png, webp only)"})
		return
	}
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	// Spool to a temp file for the analyzer; removed on every exit path
	tmp, err := os.CreateTemp("", "waste-scan-*"+ext)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := io.Copy(tmp, file); err != nil {
		tmp.Close()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	tmp.Close()

	// Never errors: any upstream failure degrades to the fallback
	analysis := h.Analyzer.AnalyzeWasteImage(ctx, tmpPath)

	imageURL := ""
	if h.Uploader != nil {
		if f, err := os.Open(tmpPath); err == nil {
			key := fmt.Sprintf("scans/%s%s", utils.GenerateID(), filepath.Ext(tmpPath))
			if url, err := h.Uploader.Upload(ctx, key, f, mimeType); err == nil {
				imageURL = url
			} else {
				logger.Warn().Err(err).Msg("Scan image upload failed, persisting without imageUrl")
			}
			f.Close()
		}
	}

	scan := models.WasteScan{
		UserID:         userID,
		Category:       analysis.Category,
		Subcategory:    analysis.Subcategory,
		DisposalMethod: analysis.DisposalMethod,
		PointsEarned:   analysis.PointsEarned,
		Confidence:     analysis.Confidence,
		ImageURL:       imageURL,
	}
	if err := h.Store.CreateWasteScan(ctx, &scan); err != nil {
		logger.Error().Err(err).Msg("Failed to persist scan")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	h.awardScanPoints(c, user, &scan, analysis)

	c.JSON(http.StatusOK, gin.H{"scan": scan, "analysis": analysis})
}

// awardScanPoints applies the side effects of a persisted scan: point
// award, monthly stats upsert, challenge progress, achievement check and
// leaderboard cache invalidation. Failures here are logged, not surfaced;
// the scan row already exists.
func (h *Handler) awardScanPoints(c *gin.Context, user *models.User, scan *models.WasteScan, analysis *services.WasteAnalysis) {
	ctx := c.Request.Context()

	if err := h.Store.UpdateUserPoints(ctx, user.ID, user.EcoPoints+scan.PointsEarned); err != nil {
		logger.Error().Err(err).Int("user_id", user.ID).Msg("Failed to award scan points")
		return
	}

	now := time.Now()
	wasteKg, carbonKg := services.EstimateImpact(analysis.Category)
	if err := h.Store.AddUserStats(ctx, user.ID, int(now.Month()), now.Year(), wasteKg, carbonKg, scan.PointsEarned); err != nil {
		logger.Error().Err(err).Int("user_id", user.ID).Msg("Failed to update monthly stats")
	}

	challenges, err := h.Store.GetActiveChallenges(ctx)
	if err == nil {
		current, _ := h.Store.GetUserChallenges(ctx, user.ID)
		progressByID := make(map[int]int, len(current))
		for _, uc := range current {
			progressByID[uc.ChallengeID] = uc.Progress
		}
		for _, challenge := range challenges {
			next := progressByID[challenge.ID] + scanChallengeIncrement
			if err := h.Store.UpdateChallengeProgress(ctx, user.ID, challenge.ID, next); err != nil {
				logger.Error().Err(err).Int("challenge_id", challenge.ID).Msg("Failed to bump challenge progress")
			}
		}
	}

	if unlocked, err := services.CheckAchievements(ctx, h.Store, user.ID); err == nil && len(unlocked) > 0 {
		logger.Info().Int("user_id", user.ID).Int("count", len(unlocked)).Msg("Achievements unlocked")
	}

	if database.Redis != nil {
		database.CacheInvalidate("leaderboard:*")
	}
}

// GetScans lists the current user's scans, most recent first.
// Supports ?limit=N.
func (h *Handler) GetScans(c *gin.Context) {
	userID := middleware.CurrentUserID(c)

	limit := 0
	if l := c.Query("limit"); l != "" {
		parsed, err := strconv.Atoi(l)
		if err != nil || parsed < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid limit"})
			return
		}
		limit = parsed
	}

	scans, err := h.Store.GetUserScans(c.Request.Context(), userID, limit)
	if err != nil {
		logger.Error().Err(err).Int("user_id", userID).Msg("Failed to fetch scans")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	c.JSON(http.StatusOK, scans)
}

// GetRecentScans lists the newest scans across all users, a community
// activity feed. Supports ?limit=N, default 20.
func (h *Handler) GetRecentScans(c *gin.Context) {
	limit := 20
	if l := c.Query("limit"); l != "" {
		parsed, err := strconv.Atoi(l)
		if err != nil || parsed < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid limit"})
			return
		}
		limit = parsed
	}

	scans, err := h.Store.GetRecentScans(c.Request.Context(), limit)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to fetch recent scans")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	c.JSON(http.StatusOK, scans)
}
