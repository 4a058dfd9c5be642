package storage

import (
	"context"
	"errors"

	"github.com/ojas8taori/trash-taste-ai/internal/models"
)

// ErrNotFound is returned by lookups when no row matches.
var ErrNotFound = errors.New("record not found")

// Store is the data-access contract shared by the Postgres-backed and the
// in-memory implementations. Handlers hold a Store and never care which
// one is active; both produce identical observable shapes.
type Store interface {
	// Users
	GetUser(ctx context.Context, id int) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	CreateUser(ctx context.Context, user *models.User) error
	// UpdateUserPoints sets the user's absolute eco-point total and
	// recomputes the level. Callers compute current + earned.
	UpdateUserPoints(ctx context.Context, userID, points int) error
	GetLeaderboard(ctx context.Context, limit int) ([]models.User, error)

	// Waste categories
	GetWasteCategories(ctx context.Context) ([]models.WasteCategory, error)
	GetWasteCategory(ctx context.Context, id int) (*models.WasteCategory, error)

	// Pickups
	GetUserPickups(ctx context.Context, userID int) ([]models.Pickup, error)
	CreatePickup(ctx context.Context, pickup *models.Pickup) error
	// UpdatePickupStatus updates the status; a nil weight leaves any
	// previously collected weight untouched.
	UpdatePickupStatus(ctx context.Context, id int, status models.PickupStatus, weight *float64) error

	// Challenges
	GetActiveChallenges(ctx context.Context) ([]models.Challenge, error)
	GetUserChallenges(ctx context.Context, userID int) ([]models.UserChallenge, error)
	// UpdateChallengeProgress moves progress forward (never backward),
	// flipping completed and stamping completedAt once it reaches 100.
	UpdateChallengeProgress(ctx context.Context, userID, challengeID, progress int) error

	// Waste scans (append-only)
	CreateWasteScan(ctx context.Context, scan *models.WasteScan) error
	GetUserScans(ctx context.Context, userID, limit int) ([]models.WasteScan, error)
	// GetRecentScans returns the newest scans across all users.
	GetRecentScans(ctx context.Context, limit int) ([]models.WasteScan, error)
	CountUserScans(ctx context.Context, userID int) (int64, error)

	// Community reports
	CreateCommunityReport(ctx context.Context, report *models.CommunityReport) error
	GetCommunityReports(ctx context.Context) ([]models.CommunityReport, error)

	// Monthly stats
	GetUserStats(ctx context.Context, userID, month, year int) (*models.UserStats, error)
	// AddUserStats upserts the (user, month, year) row, adding the given
	// deltas to its aggregates.
	AddUserStats(ctx context.Context, userID, month, year int, wasteReduced, carbonSaved float64, points int) error
	// GetUserStatsTotals sums the user's monthly aggregates across all rows.
	GetUserStatsTotals(ctx context.Context, userID int) (wasteReduced, carbonSaved float64, err error)

	// Achievements
	GetAchievements(ctx context.Context) ([]models.Achievement, error)
	GetUserAchievements(ctx context.Context, userID int) ([]models.UserAchievement, error)
	CreateUserAchievement(ctx context.Context, ua *models.UserAchievement) error
}

func clampProgress(p int) int {
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}
