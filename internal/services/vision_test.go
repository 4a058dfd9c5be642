package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/ojas8taori/trash-taste-ai/internal/config"
	"github.com/ojas8taori/trash-taste-ai/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	logger.Init("test")
	config.AppConfig = &config.Config{
		GeminiAPIKey: "test-key",
		GeminiModel:  "gemini-2.5-pro",
	}
}

// fakeGemini returns an httptest server that responds like the
// generateContent endpoint, wrapping the given analysis JSON.
func fakeGemini(t *testing.T, status int, analysisJSON string) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if status != http.StatusOK {
			w.WriteHeader(status)
			return
		}
		resp := map[string]interface{}{
			"candidates": []map[string]interface{}{
				{
					"content": map[string]interface{}{
						"parts": []map[string]interface{}{
							{"text": analysisJSON},
						},
					},
				},
			},
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	}))
}

func writeTempImage(t *testing.T) string {
	path := filepath.Join(t.TempDir(), "item.jpg")
	require.NoError(t, os.WriteFile(path, []byte{0xFF, 0xD8, 0xFF, 0xE0, 0x00, 0x10}, 0o644))
	return path
}

func analyzerFor(server *httptest.Server) *GeminiAnalyzer {
	a := NewGeminiAnalyzer()
	a.BaseURL = server.URL
	return a
}

func TestAnalyzeWasteImage_Success(t *testing.T) {
	server := fakeGemini(t, http.StatusOK, `{
		"category": "Plastic",
		"subcategory": "PET bottle",
		"disposalMethod": "Recycle in designated bins",
		"pointsEarned": 12,
		"confidence": 88,
		"description": "A clear plastic bottle"
	}`)
	defer server.Close()

	analysis := analyzerFor(server).AnalyzeWasteImage(context.Background(), writeTempImage(t))

	assert.Equal(t, "Plastic", analysis.Category)
	assert.Equal(t, "PET bottle", analysis.Subcategory)
	assert.Equal(t, 12, analysis.PointsEarned)
	assert.Equal(t, 88, analysis.Confidence)
	assert.False(t, analysis.Degraded)
}

func TestAnalyzeWasteImage_ClampsOutOfRangeValues(t *testing.T) {
	server := fakeGemini(t, http.StatusOK, `{
		"category": "Electronic",
		"disposalMethod": "Take to electronic waste recycling center",
		"pointsEarned": 500,
		"confidence": 180
	}`)
	defer server.Close()

	analysis := analyzerFor(server).AnalyzeWasteImage(context.Background(), writeTempImage(t))

	assert.Equal(t, 50, analysis.PointsEarned)
	assert.Equal(t, 100, analysis.Confidence)
}

func TestAnalyzeWasteImage_ClampsLowPoints(t *testing.T) {
	server := fakeGemini(t, http.StatusOK, `{
		"category": "Organic",
		"disposalMethod": "Compost at home or municipal facility",
		"pointsEarned": 0,
		"confidence": -5
	}`)
	defer server.Close()

	analysis := analyzerFor(server).AnalyzeWasteImage(context.Background(), writeTempImage(t))

	assert.Equal(t, 1, analysis.PointsEarned)
	assert.Equal(t, 0, analysis.Confidence)
}

func TestAnalyzeWasteImage_MissingFileReturnsFallback(t *testing.T) {
	server := fakeGemini(t, http.StatusOK, `{}`)
	defer server.Close()

	analysis := analyzerFor(server).AnalyzeWasteImage(context.Background(), "/nonexistent/image.jpg")

	assert.Equal(t, "General", analysis.Category)
	assert.Equal(t, 5, analysis.PointsEarned)
	assert.Equal(t, 30, analysis.Confidence)
	assert.True(t, analysis.Degraded)
}

func TestAnalyzeWasteImage_MissingRequiredFieldsReturnsFallback(t *testing.T) {
	server := fakeGemini(t, http.StatusOK, `{"pointsEarned": 20, "confidence": 90}`)
	defer server.Close()

	analysis := analyzerFor(server).AnalyzeWasteImage(context.Background(), writeTempImage(t))

	assert.True(t, analysis.Degraded)
	assert.Equal(t, "General", analysis.Category)
	assert.Equal(t, 5, analysis.PointsEarned)
}

func TestAnalyzeWasteImage_UpstreamErrorReturnsFallback(t *testing.T) {
	server := fakeGemini(t, http.StatusInternalServerError, "")
	defer server.Close()

	analysis := analyzerFor(server).AnalyzeWasteImage(context.Background(), writeTempImage(t))

	assert.True(t, analysis.Degraded)
	assert.Equal(t, "General", analysis.Category)
	assert.Equal(t, 30, analysis.Confidence)
}

func TestFallbackAnalysisIsWithinBounds(t *testing.T) {
	fb := FallbackAnalysis()
	assert.GreaterOrEqual(t, fb.PointsEarned, 1)
	assert.LessOrEqual(t, fb.PointsEarned, 50)
	assert.GreaterOrEqual(t, fb.Confidence, 0)
	assert.LessOrEqual(t, fb.Confidence, 100)
}

func TestEstimateImpactUnknownCategoryFallsBack(t *testing.T) {
	w, c := EstimateImpact("Mystery")
	gw, gc := EstimateImpact("General")
	assert.Equal(t, gw, w)
	assert.Equal(t, gc, c)
}
