package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ojas8taori/trash-taste-ai/pkg/logger"
)

// GetWasteCategories returns the static category taxonomy.
func (h *Handler) GetWasteCategories(c *gin.Context) {
	categories, err := h.Store.GetWasteCategories(c.Request.Context())
	if err != nil {
		logger.Error().Err(err).Msg("Failed to fetch waste categories")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	c.JSON(http.StatusOK, categories)
}
