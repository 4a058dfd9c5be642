package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ojas8taori/trash-taste-ai/internal/middleware"
	"github.com/ojas8taori/trash-taste-ai/internal/models"
	"github.com/ojas8taori/trash-taste-ai/pkg/logger"
)

type CreateReportInput struct {
	Type        string `json:"type" binding:"required,oneof=illegal_dumping overflowing_bin sanitation_issue"`
	Description string `json:"description" binding:"required"`
	Location    string `json:"location" binding:"required"`
	ImageURL    string `json:"imageUrl"`
}

// CreateCommunityReport files an issue report for the current user.
func (h *Handler) CreateCommunityReport(c *gin.Context) {
	var input CreateReportInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid report data", "details": err.Error()})
		return
	}

	report := models.CommunityReport{
		UserID:      middleware.CurrentUserID(c),
		Type:        input.Type,
		Description: input.Description,
		Location:    input.Location,
		ImageURL:    input.ImageURL,
		Status:      models.ReportPending,
	}
	if err := h.Store.CreateCommunityReport(c.Request.Context(), &report); err != nil {
		logger.Error().Err(err).Msg("Failed to create community report")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusCreated, report)
}

// GetCommunityReports lists all reports, newest first.
func (h *Handler) GetCommunityReports(c *gin.Context) {
	reports, err := h.Store.GetCommunityReports(c.Request.Context())
	if err != nil {
		logger.Error().Err(err).Msg("Failed to fetch community reports")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	c.JSON(http.StatusOK, reports)
}
