package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/ojas8taori/trash-taste-ai/internal/handlers"
	"github.com/ojas8taori/trash-taste-ai/internal/middleware"
)

// RegisterAPIRoutes wires the REST surface under /api. All routes run
// behind optional auth: a valid bearer token selects the user, anything
// else falls back to the demo user.
func RegisterAPIRoutes(r gin.IRouter, h *handlers.Handler) {
	api := r.Group("/api")
	api.Use(middleware.OptionalAuthMiddleware())
	{
		auth := api.Group("/auth")
		{
			auth.POST("/register", h.Register)
			auth.POST("/login", h.Login)
		}

		api.GET("/user", h.GetUser)
		api.GET("/user/:id", h.GetUser)
		api.POST("/users", h.CreateUser)

		api.GET("/waste-categories", h.GetWasteCategories)

		api.GET("/pickups", h.GetPickups)
		api.GET("/pickups/:userId", h.GetPickups)
		api.POST("/pickups", h.CreatePickup)
		api.PATCH("/pickups/:id", h.UpdatePickup)

		api.GET("/challenges", h.GetChallenges)
		api.GET("/user-challenges/:userId", h.GetUserChallenges)

		api.POST("/scan", h.CreateScan)
		api.GET("/scans", h.GetScans)
		api.GET("/scans/recent", h.GetRecentScans)

		api.GET("/achievements", h.GetAchievements)
		api.GET("/stats", h.GetStats)
		api.GET("/user-stats/:userId/:month/:year", h.GetUserMonthlyStats)

		api.POST("/community-reports", h.CreateCommunityReport)
		api.GET("/community-reports", h.GetCommunityReports)

		api.GET("/leaderboard", h.GetLeaderboard)
	}
}
