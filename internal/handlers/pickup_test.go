package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/ojas8taori/trash-taste-ai/internal/models"
	"github.com/ojas8taori/trash-taste-ai/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreatePickup_InvalidCategoryRejected(t *testing.T) {
	r, store := newTestEnv(stubAnalyzer{analysis: services.FallbackAnalysis()})

	w := doJSON(r, http.MethodPost, "/api/pickups", map[string]interface{}{
		"categoryId":    9999,
		"scheduledDate": time.Now().Add(24 * time.Hour).Format(time.RFC3339),
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Rejected pickups are not persisted
	pickups, err := store.GetUserPickups(context.Background(), 1)
	require.NoError(t, err)
	assert.Empty(t, pickups)
}

func TestCreatePickup_MissingCategoryRejected(t *testing.T) {
	r, _ := newTestEnv(stubAnalyzer{analysis: services.FallbackAnalysis()})

	w := doJSON(r, http.MethodPost, "/api/pickups", map[string]interface{}{
		"scheduledDate": time.Now().Add(24 * time.Hour).Format(time.RFC3339),
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPickupLifecycle(t *testing.T) {
	r, _ := newTestEnv(stubAnalyzer{analysis: services.FallbackAnalysis()})

	w := doJSON(r, http.MethodPost, "/api/pickups", map[string]interface{}{
		"categoryId":    1,
		"scheduledDate": time.Now().Add(24 * time.Hour).Format(time.RFC3339),
		"notes":         "side gate",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var pickup models.Pickup
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &pickup))
	assert.Equal(t, models.PickupScheduled, pickup.Status)
	assert.Nil(t, pickup.Weight)

	// Complete with a weight
	w = doJSON(r, http.MethodPatch, "/api/pickups/1", map[string]interface{}{
		"status": "completed",
		"weight": 4.2,
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(r, http.MethodGet, "/api/pickups", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var pickups []models.Pickup
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &pickups))
	require.Len(t, pickups, 1)
	assert.Equal(t, models.PickupCompleted, pickups[0].Status)
	require.NotNil(t, pickups[0].Weight)
	assert.Equal(t, 4.2, *pickups[0].Weight)

	// A status-only update leaves the collected weight untouched
	w = doJSON(r, http.MethodPatch, "/api/pickups/1", map[string]interface{}{
		"status": "completed",
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(r, http.MethodGet, "/api/pickups", nil)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &pickups))
	require.NotNil(t, pickups[0].Weight)
	assert.Equal(t, 4.2, *pickups[0].Weight)
}

func TestUpdatePickup_UnknownStatusRejected(t *testing.T) {
	r, _ := newTestEnv(stubAnalyzer{analysis: services.FallbackAnalysis()})

	doJSON(r, http.MethodPost, "/api/pickups", map[string]interface{}{
		"categoryId":    1,
		"scheduledDate": time.Now().Add(24 * time.Hour).Format(time.RFC3339),
	})

	w := doJSON(r, http.MethodPatch, "/api/pickups/1", map[string]interface{}{
		"status": "teleported",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdatePickup_NotFound(t *testing.T) {
	r, _ := newTestEnv(stubAnalyzer{analysis: services.FallbackAnalysis()})

	w := doJSON(r, http.MethodPatch, "/api/pickups/404", map[string]interface{}{
		"status": "cancelled",
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
}
