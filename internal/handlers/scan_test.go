package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/ojas8taori/trash-taste-ai/internal/config"
	"github.com/ojas8taori/trash-taste-ai/internal/handlers"
	"github.com/ojas8taori/trash-taste-ai/internal/models"
	"github.com/ojas8taori/trash-taste-ai/internal/routes"
	"github.com/ojas8taori/trash-taste-ai/internal/seeds"
	"github.com/ojas8taori/trash-taste-ai/internal/services"
	"github.com/ojas8taori/trash-taste-ai/internal/storage"
	"github.com/ojas8taori/trash-taste-ai/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	logger.Init("test")
	config.AppConfig = &config.Config{JWTSecret: "test_secret_key_12345"}
	gin.SetMode(gin.TestMode)
}

// stubAnalyzer returns a canned analysis without any network call.
type stubAnalyzer struct {
	analysis *services.WasteAnalysis
}

func (s stubAnalyzer) AnalyzeWasteImage(_ context.Context, _ string) *services.WasteAnalysis {
	a := *s.analysis
	return &a
}

// newTestEnv builds a router over a seeded in-memory store. The demo
// user (id 1) is the implicit current user for every request.
func newTestEnv(analyzer services.WasteAnalyzer) (*gin.Engine, *storage.MemoryStore) {
	store := storage.NewMemoryStore()
	for _, category := range seeds.DefaultWasteCategories() {
		c := category
		store.CreateWasteCategory(&c)
	}
	for _, challenge := range seeds.DefaultChallenges() {
		ch := challenge
		store.CreateChallenge(&ch)
	}
	for _, achievement := range seeds.DefaultAchievements() {
		a := achievement
		store.CreateAchievement(&a)
	}

	h := handlers.New(store, analyzer, nil)
	r := gin.New()
	routes.RegisterAPIRoutes(r, h)
	return r, store
}

var jpegMagic = []byte{0xFF, 0xD8, 0xFF, 0xE0, 0x00, 0x10, 0x4A, 0x46, 0x49, 0x46}

func multipartImage(t *testing.T, field, filename string, content []byte) (*bytes.Buffer, string) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile(field, filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())
	return body, writer.FormDataContentType()
}

func doJSON(r *gin.Engine, method, path string, payload interface{}) *httptest.ResponseRecorder {
	var body *bytes.Buffer
	if payload != nil {
		data, _ := json.Marshal(payload)
		body = bytes.NewBuffer(data)
	} else {
		body = &bytes.Buffer{}
	}
	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCreateScan_AwardsExactPoints(t *testing.T) {
	analyzer := stubAnalyzer{analysis: &services.WasteAnalysis{
		Category:       "Plastic",
		Subcategory:    "PET bottle",
		DisposalMethod: "Recycle in designated bins",
		PointsEarned:   12,
		Confidence:     88,
	}}
	r, _ := newTestEnv(analyzer)

	body, contentType := multipartImage(t, "image", "bottle.jpg", jpegMagic)
	req := httptest.NewRequest(http.MethodPost, "/api/scan", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Scan     models.WasteScan       `json:"scan"`
		Analysis services.WasteAnalysis `json:"analysis"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Plastic", resp.Scan.Category)
	assert.Equal(t, 12, resp.Scan.PointsEarned)
	assert.Equal(t, 88, resp.Scan.Confidence)
	assert.False(t, resp.Analysis.Degraded)

	// The owning user's balance moved by exactly the scan's points
	w = doJSON(r, http.MethodGet, "/api/user", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var user models.User
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &user))
	assert.Equal(t, 12, user.EcoPoints)

	// Scan is listed, newest first
	w = doJSON(r, http.MethodGet, "/api/scans?limit=5", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var scans []models.WasteScan
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &scans))
	require.Len(t, scans, 1)
	assert.Equal(t, "Plastic", scans[0].Category)

	// Active challenges moved forward
	w = doJSON(r, http.MethodGet, "/api/user-challenges/1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var ucs []models.UserChallenge
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &ucs))
	require.NotEmpty(t, ucs)
	assert.Equal(t, 20, ucs[0].Progress)
}

func TestCreateScan_FallbackStillPersists(t *testing.T) {
	r, _ := newTestEnv(stubAnalyzer{analysis: services.FallbackAnalysis()})

	body, contentType := multipartImage(t, "image", "blurry.jpg", jpegMagic)
	req := httptest.NewRequest(http.MethodPost, "/api/scan", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Scan     models.WasteScan       `json:"scan"`
		Analysis services.WasteAnalysis `json:"analysis"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "General", resp.Scan.Category)
	assert.Equal(t, 5, resp.Scan.PointsEarned)
	assert.Equal(t, 30, resp.Scan.Confidence)
	assert.True(t, resp.Analysis.Degraded)

	// Degraded scans still award their minimal points
	w = doJSON(r, http.MethodGet, "/api/user", nil)
	var user models.User
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &user))
	assert.Equal(t, 5, user.EcoPoints)
}

func TestCreateScan_NoFileRejected(t *testing.T) {
	r, _ := newTestEnv(stubAnalyzer{analysis: services.FallbackAnalysis()})

	req := httptest.NewRequest(http.MethodPost, "/api/scan", &bytes.Buffer{})
	req.Header.Set("Content-Type", "multipart/form-data; boundary=x")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateScan_WrongFieldRejected(t *testing.T) {
	r, _ := newTestEnv(stubAnalyzer{analysis: services.FallbackAnalysis()})

	body, contentType := multipartImage(t, "file", "bottle.jpg", jpegMagic)
	req := httptest.NewRequest(http.MethodPost, "/api/scan", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateScan_OversizeRejected(t *testing.T) {
	r, store := newTestEnv(stubAnalyzer{analysis: services.FallbackAnalysis()})

	payload := make([]byte, 5<<20+1)
	copy(payload, jpegMagic)
	body, contentType := multipartImage(t, "image", "huge.jpg", payload)
	req := httptest.NewRequest(http.MethodPost, "/api/scan", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Nothing was persisted
	scans, err := store.GetUserScans(context.Background(), 1, 0)
	require.NoError(t, err)
	assert.Empty(t, scans)
}

func TestCreateScan_NonImageRejected(t *testing.T) {
	r, store := newTestEnv(stubAnalyzer{analysis: services.FallbackAnalysis()})

	body, contentType := multipartImage(t, "image", "notes.txt", []byte("just some plain text, definitely not an image"))
	req := httptest.NewRequest(http.MethodPost, "/api/scan", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Nothing was persisted
	scans, err := store.GetUserScans(context.Background(), 1, 0)
	require.NoError(t, err)
	assert.Empty(t, scans)
}

func TestGetStats_DerivedCounts(t *testing.T) {
	analyzer := stubAnalyzer{analysis: &services.WasteAnalysis{
		Category:       "Glass",
		DisposalMethod: "Recycle in designated bins",
		PointsEarned:   10,
		Confidence:     90,
	}}
	r, _ := newTestEnv(analyzer)

	for i := 0; i < 3; i++ {
		body, contentType := multipartImage(t, "image", "jar.jpg", jpegMagic)
		req := httptest.NewRequest(http.MethodPost, "/api/scan", body)
		req.Header.Set("Content-Type", contentType)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code)
	}

	w := doJSON(r, http.MethodGet, "/api/stats", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var stats map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &stats))
	assert.Equal(t, float64(3), stats["totalScans"])
	assert.Equal(t, float64(3), stats["scansToday"])
	assert.Equal(t, float64(3), stats["scansThisWeek"])
	assert.Equal(t, float64(30), stats["ecoPoints"])
}

func TestGetStats_TotalsNotCappedByRecentWindow(t *testing.T) {
	r, store := newTestEnv(stubAnalyzer{analysis: services.FallbackAnalysis()})

	ctx := context.Background()
	for i := 0; i < 205; i++ {
		scan := &models.WasteScan{
			UserID:         1,
			Category:       "Plastic",
			DisposalMethod: "Recycle in designated bins",
			PointsEarned:   10,
			Confidence:     80,
		}
		require.NoError(t, store.CreateWasteScan(ctx, scan))
	}
	require.NoError(t, store.AddUserStats(ctx, 1, 6, 2025, 41.0, 102.5, 2050))

	w := doJSON(r, http.MethodGet, "/api/stats", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var stats map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &stats))
	assert.Equal(t, float64(205), stats["totalScans"])
	assert.InDelta(t, 41.0, stats["wasteReduced"].(float64), 1e-9)
	assert.InDelta(t, 102.5, stats["carbonSaved"].(float64), 1e-9)
}

func TestRecentScansFeed(t *testing.T) {
	analyzer := stubAnalyzer{analysis: &services.WasteAnalysis{
		Category:       "Paper",
		DisposalMethod: "Recycle in designated bins",
		PointsEarned:   8,
		Confidence:     82,
	}}
	r, store := newTestEnv(analyzer)

	ctx := context.Background()
	for _, category := range []string{"Glass", "Paper"} {
		scan := &models.WasteScan{
			UserID:         1,
			Category:       category,
			DisposalMethod: "Recycle in designated bins",
			PointsEarned:   10,
			Confidence:     80,
		}
		require.NoError(t, store.CreateWasteScan(ctx, scan))
	}

	w := doJSON(r, http.MethodGet, "/api/scans/recent", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var scans []models.WasteScan
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &scans))
	assert.Len(t, scans, 2)

	w = doJSON(r, http.MethodGet, "/api/scans/recent?limit=1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &scans))
	require.Len(t, scans, 1)
	assert.Equal(t, "Paper", scans[0].Category) // newest first

	w = doJSON(r, http.MethodGet, "/api/scans/recent?limit=nope", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestScanUnlocksFirstScanAchievement(t *testing.T) {
	analyzer := stubAnalyzer{analysis: &services.WasteAnalysis{
		Category:       "Metal",
		DisposalMethod: "Recycle in designated bins",
		PointsEarned:   15,
		Confidence:     85,
	}}
	r, _ := newTestEnv(analyzer)

	body, contentType := multipartImage(t, "image", "can.jpg", jpegMagic)
	req := httptest.NewRequest(http.MethodPost, "/api/scan", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(r, http.MethodGet, "/api/achievements", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var views []struct {
		Name     string `json:"name"`
		Unlocked bool   `json:"unlocked"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &views))

	unlocked := make(map[string]bool)
	for _, v := range views {
		unlocked[v.Name] = v.Unlocked
	}
	assert.True(t, unlocked["First Scan"])
	assert.False(t, unlocked["Waste Watcher"])
}
