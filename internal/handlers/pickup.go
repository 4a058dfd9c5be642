package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ojas8taori/trash-taste-ai/internal/middleware"
	"github.com/ojas8taori/trash-taste-ai/internal/models"
	"github.com/ojas8taori/trash-taste-ai/internal/storage"
	"github.com/ojas8taori/trash-taste-ai/pkg/logger"
)

// GetPickups lists pickups for /api/pickups (current user) or
// /api/pickups/:userId, most recent scheduled date first.
func (h *Handler) GetPickups(c *gin.Context) {
	userID := middleware.CurrentUserID(c)
	if idParam := c.Param("userId"); idParam != "" {
		id, err := strconv.Atoi(idParam)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user id"})
			return
		}
		userID = id
	}

	pickups, err := h.Store.GetUserPickups(c.Request.Context(), userID)
	if err != nil {
		logger.Error().Err(err).Int("user_id", userID).Msg("Failed to fetch pickups")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	c.JSON(http.StatusOK, pickups)
}

type CreatePickupInput struct {
	CategoryID    int       `json:"categoryId" binding:"required"`
	ScheduledDate time.Time `json:"scheduledDate" binding:"required"`
	Notes         string    `json:"notes"`
}

// CreatePickup schedules a collection. The category must exist; a bad
// categoryId is a validation failure, nothing is persisted.
func (h *Handler) CreatePickup(c *gin.Context) {
	var input CreatePickupInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid pickup data", "details": err.Error()})
		return
	}

	if _, err := h.Store.GetWasteCategory(c.Request.Context(), input.CategoryID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid pickup data", "details": "unknown categoryId"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	pickup := models.Pickup{
		UserID:        middleware.CurrentUserID(c),
		CategoryID:    input.CategoryID,
		ScheduledDate: input.ScheduledDate,
		Notes:         input.Notes,
		Status:        models.PickupScheduled,
	}
	if err := h.Store.CreatePickup(c.Request.Context(), &pickup); err != nil {
		logger.Error().Err(err).Msg("Failed to create pickup")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusCreated, pickup)
}

type UpdatePickupInput struct {
	Status string   `json:"status" binding:"required"`
	Weight *float64 `json:"weight"`
}

// UpdatePickup handles PATCH /api/pickups/:id. Weight is only touched
// when the request carries one; an update without weight leaves any
// previously collected weight as-is.
func (h *Handler) UpdatePickup(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid pickup id"})
		return
	}

	var input UpdatePickupInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid pickup data", "details": err.Error()})
		return
	}
	if !models.ValidPickupStatus(input.Status) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid pickup data", "details": "unknown status"})
		return
	}

	err = h.Store.UpdatePickupStatus(c.Request.Context(), id, models.PickupStatus(input.Status), input.Weight)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Pickup not found"})
			return
		}
		logger.Error().Err(err).Int("pickup_id", id).Msg("Failed to update pickup")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Pickup updated successfully"})
}
