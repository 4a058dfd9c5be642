package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/ojas8taori/trash-taste-ai/internal/models"
	"github.com/ojas8taori/trash-taste-ai/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateUserAndFetch(t *testing.T) {
	r, _ := newTestEnv(stubAnalyzer{analysis: services.FallbackAnalysis()})

	w := doJSON(r, http.MethodPost, "/api/users", map[string]interface{}{
		"username": "alice",
		"email":    "alice@example.com",
		"password": "supersecret1",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var created models.User
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, 0, created.EcoPoints)
	assert.Equal(t, 1, created.Level)
	assert.False(t, created.CreatedAt.IsZero())

	w = doJSON(r, http.MethodGet, "/api/user/2", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var fetched models.User
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &fetched))
	assert.Equal(t, "alice", fetched.Username)
}

func TestCreateUser_ValidationErrors(t *testing.T) {
	r, _ := newTestEnv(stubAnalyzer{analysis: services.FallbackAnalysis()})

	// Bad email
	w := doJSON(r, http.MethodPost, "/api/users", map[string]interface{}{
		"username": "bob",
		"email":    "not-an-email",
		"password": "supersecret1",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Short password
	w = doJSON(r, http.MethodPost, "/api/users", map[string]interface{}{
		"username": "bob",
		"email":    "bob@example.com",
		"password": "short",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Duplicate username (demo user is seeded)
	w = doJSON(r, http.MethodPost, "/api/users", map[string]interface{}{
		"username": "demo",
		"email":    "other@example.com",
		"password": "supersecret1",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetUser_NotFound(t *testing.T) {
	r, _ := newTestEnv(stubAnalyzer{analysis: services.FallbackAnalysis()})

	w := doJSON(r, http.MethodGet, "/api/user/999", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRegisterAndLogin(t *testing.T) {
	r, _ := newTestEnv(stubAnalyzer{analysis: services.FallbackAnalysis()})

	w := doJSON(r, http.MethodPost, "/api/auth/register", map[string]interface{}{
		"username": "carol",
		"email":    "carol@example.com",
		"password": "supersecret1",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var reg struct {
		Token string      `json:"token"`
		User  models.User `json:"user"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &reg))
	assert.NotEmpty(t, reg.Token)

	w = doJSON(r, http.MethodPost, "/api/auth/login", map[string]interface{}{
		"email":    "carol@example.com",
		"password": "supersecret1",
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(r, http.MethodPost, "/api/auth/login", map[string]interface{}{
		"email":    "carol@example.com",
		"password": "wrongpassword",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLeaderboardLimitAndOrder(t *testing.T) {
	r, store := newTestEnv(stubAnalyzer{analysis: services.FallbackAnalysis()})

	ctx := context.Background()
	for username, points := range map[string]int{"u100": 100, "u300": 300, "u200": 200} {
		user := &models.User{Username: username, Email: username + "@example.com", Password: "x"}
		require.NoError(t, store.CreateUser(ctx, user))
		require.NoError(t, store.UpdateUserPoints(ctx, user.ID, points))
	}

	w := doJSON(r, http.MethodGet, "/api/leaderboard?limit=3", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var users []models.User
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &users))
	require.Len(t, users, 3)
	assert.Equal(t, "u300", users[0].Username)
	assert.Equal(t, "u200", users[1].Username)
	assert.Equal(t, "u100", users[2].Username)
}

func TestLeaderboard_InvalidLimit(t *testing.T) {
	r, _ := newTestEnv(stubAnalyzer{analysis: services.FallbackAnalysis()})

	w := doJSON(r, http.MethodGet, "/api/leaderboard?limit=zero", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestWasteCategoriesSeeded(t *testing.T) {
	r, _ := newTestEnv(stubAnalyzer{analysis: services.FallbackAnalysis()})

	w := doJSON(r, http.MethodGet, "/api/waste-categories", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var categories []models.WasteCategory
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &categories))
	assert.Len(t, categories, 9)
	assert.Equal(t, "Organic", categories[0].Name)
}

func TestCommunityReports(t *testing.T) {
	r, _ := newTestEnv(stubAnalyzer{analysis: services.FallbackAnalysis()})

	w := doJSON(r, http.MethodPost, "/api/community-reports", map[string]interface{}{
		"type":        "illegal_dumping",
		"description": "Mattress dumped by the river",
		"location":    "Riverside Park, north entrance",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var report models.CommunityReport
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &report))
	assert.Equal(t, models.ReportPending, report.Status)

	// Unknown report type is a validation failure
	w = doJSON(r, http.MethodPost, "/api/community-reports", map[string]interface{}{
		"type":        "alien_invasion",
		"description": "x",
		"location":    "y",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(r, http.MethodGet, "/api/community-reports", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var reports []models.CommunityReport
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &reports))
	assert.Len(t, reports, 1)
}

func TestUserMonthlyStats(t *testing.T) {
	r, store := newTestEnv(stubAnalyzer{analysis: services.FallbackAnalysis()})

	require.NoError(t, store.AddUserStats(context.Background(), 1, 6, 2025, 1.5, 0.75, 40))

	w := doJSON(r, http.MethodGet, "/api/user-stats/1/6/2025", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var stats models.UserStats
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &stats))
	assert.Equal(t, 40, stats.PointsEarned)
	assert.InDelta(t, 1.5, stats.WasteReduced, 1e-9)

	w = doJSON(r, http.MethodGet, "/api/user-stats/1/7/2025", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(r, http.MethodGet, "/api/user-stats/1/13/2025", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
