package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ojas8taori/trash-taste-ai/internal/database"
	"github.com/ojas8taori/trash-taste-ai/internal/middleware"
	"github.com/ojas8taori/trash-taste-ai/internal/models"
	"github.com/ojas8taori/trash-taste-ai/internal/storage"
	"github.com/ojas8taori/trash-taste-ai/pkg/logger"
	"golang.org/x/crypto/bcrypt"
)

// GetUser returns the user for /api/user/:id, or the current user when
// no id is present in the path.
func (h *Handler) GetUser(c *gin.Context) {
	userID := middleware.CurrentUserID(c)
	if idParam := c.Param("id"); idParam != "" {
		id, err := strconv.Atoi(idParam)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user id"})
			return
		}
		userID = id
	}

	user, err := h.Store.GetUser(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		logger.Error().Err(err).Int("user_id", userID).Msg("Failed to fetch user")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, user)
}

type CreateUserInput struct {
	Username string `json:"username" binding:"required,min=3,max=30"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

// CreateUser handles POST /api/users.
func (h *Handler) CreateUser(c *gin.Context) {
	var input CreateUserInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user data", "details": err.Error()})
		return
	}

	if _, err := h.Store.GetUserByUsername(c.Request.Context(), input.Username); err == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Username already taken"})
		return
	}
	if _, err := h.Store.GetUserByEmail(c.Request.Context(), input.Email); err == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email already registered"})
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	user := models.User{
		Username: input.Username,
		Email:    input.Email,
		Password: string(hashed),
	}
	if err := h.Store.CreateUser(c.Request.Context(), &user); err != nil {
		logger.Error().Err(err).Msg("Failed to create user")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusCreated, user)
}

// GetLeaderboard returns users ordered by eco-points descending.
// Responses are cached in Redis briefly; the cache is invalidated on
// every point award.
func (h *Handler) GetLeaderboard(c *gin.Context) {
	limit := 10
	if l := c.Query("limit"); l != "" {
		parsed, err := strconv.Atoi(l)
		if err != nil || parsed < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid limit"})
			return
		}
		limit = parsed
	}

	cacheKey := fmt.Sprintf("leaderboard:%d", limit)
	if database.Redis != nil {
		var cached []models.User
		if err := database.CacheGet(cacheKey, &cached); err == nil {
			c.JSON(http.StatusOK, cached)
			return
		}
	}

	users, err := h.Store.GetLeaderboard(c.Request.Context(), limit)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to fetch leaderboard")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	if database.Redis != nil {
		database.CacheSet(cacheKey, users, 30*time.Second)
	}

	c.JSON(http.StatusOK, users)
}
