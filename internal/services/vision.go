package services

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/ojas8taori/trash-taste-ai/internal/config"
	"github.com/ojas8taori/trash-taste-ai/pkg/logger"
)

// WasteAnalysis is the normalized result of one classification call.
// Degraded marks the fixed fallback returned when the upstream call
// failed for any reason; degraded results are still persisted and
// still award their (minimal) points.
type WasteAnalysis struct {
	Category       string `json:"category"`
	Subcategory    string `json:"subcategory,omitempty"`
	DisposalMethod string `json:"disposalMethod"`
	PointsEarned   int    `json:"pointsEarned"`
	Confidence     int    `json:"confidence"`
	Description    string `json:"description,omitempty"`
	Degraded       bool   `json:"degraded"`
}

// WasteAnalyzer classifies an image on disk. Implementations never
// return an error: any failure yields the fallback analysis, so callers
// always receive a usable result.
type WasteAnalyzer interface {
	AnalyzeWasteImage(ctx context.Context, imagePath string) *WasteAnalysis
}

const visionPrompt = `You are an expert waste management and recycling specialist.
Analyze the uploaded image and identify the waste item(s) shown.
Provide detailed categorization and disposal guidance.

Categories to use:
- Organic: Food waste, garden waste, biodegradable materials
- Plastic: Bottles, containers, packaging, plastic bags
- Electronic: Phones, batteries, cables, computers, appliances
- Hazardous: Chemicals, paint, batteries, medical waste, toxic materials
- Paper: Newspapers, cardboard, books, office paper
- Glass: Bottles, jars, broken glass
- Metal: Cans, foil, metal objects
- Textile: Clothing, fabric, shoes
- General: Items that don't fit other categories

Disposal methods to suggest:
- "Recycle in designated bins"
- "Compost at home or municipal facility"
- "Take to hazardous waste collection point"
- "Donate or sell if in good condition"
- "Regular trash collection"
- "Take to electronic waste recycling center"
- "Return to manufacturer or retailer"

Points system:
- Organic waste: 5-10 points
- Recyclable materials: 10-15 points
- Electronic waste: 20-30 points
- Hazardous waste proper disposal: 25-40 points
- Textile donation/recycling: 15-25 points

Confidence should be 70-95 for clear images, lower for unclear ones.

Respond with JSON only.`

// FallbackAnalysis is returned whenever classification cannot complete.
func FallbackAnalysis() *WasteAnalysis {
	return &WasteAnalysis{
		Category:       "General",
		Subcategory:    "Unidentified item",
		DisposalMethod: "Please consult local waste management guidelines or try scanning again with a clearer image",
		PointsEarned:   5,
		Confidence:     30,
		Description:    "Unable to clearly identify the waste item. Please ensure the image is clear and well-lit.",
		Degraded:       true,
	}
}

// GeminiAnalyzer calls the Gemini generateContent REST endpoint with an
// inline image and a JSON response schema.
type GeminiAnalyzer struct {
	BaseURL string // override for tests
	client  *http.Client
}

func NewGeminiAnalyzer() *GeminiAnalyzer {
	return &GeminiAnalyzer{
		BaseURL: "https://generativelanguage.googleapis.com",
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

// Request/response shapes for the generateContent endpoint. Only the
// fields we read or send.
type geminiRequest struct {
	SystemInstruction *geminiContent   `json:"system_instruction,omitempty"`
	Contents          []geminiContent  `json:"contents"`
	GenerationConfig  geminiGenConfig  `json:"generationConfig"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text       string            `json:"text,omitempty"`
	InlineData *geminiInlineData `json:"inline_data,omitempty"`
}

type geminiInlineData struct {
	MimeType string `json:"mime_type"`
	Data     string `json:"data"`
}

type geminiGenConfig struct {
	ResponseMimeType string          `json:"response_mime_type"`
	ResponseSchema   json.RawMessage `json:"response_schema"`
}

type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

var analysisSchema = json.RawMessage(`{
	"type": "object",
	"properties": {
		"category": {"type": "string"},
		"subcategory": {"type": "string"},
		"disposalMethod": {"type": "string"},
		"pointsEarned": {"type": "number"},
		"confidence": {"type": "number"},
		"description": {"type": "string"}
	},
	"required": ["category", "disposalMethod", "pointsEarned", "confidence"]
}`)

// rawAnalysis tolerates float-valued numeric fields from the model.
type rawAnalysis struct {
	Category       string  `json:"category"`
	Subcategory    string  `json:"subcategory"`
	DisposalMethod string  `json:"disposalMethod"`
	PointsEarned   float64 `json:"pointsEarned"`
	Confidence     float64 `json:"confidence"`
	Description    string  `json:"description"`
}

// AnalyzeWasteImage sends the image to Gemini and normalizes the result.
// It never fails past its boundary: any error path logs and returns the
// fixed fallback. The caller owns deleting imagePath afterwards.
func (g *GeminiAnalyzer) AnalyzeWasteImage(ctx context.Context, imagePath string) *WasteAnalysis {
	analysis, err := g.analyze(ctx, imagePath)
	if err != nil {
		logger.Error().Err(err).Str("image", imagePath).Msg("Waste image analysis failed, returning fallback")
		return FallbackAnalysis()
	}
	return analysis
}

func (g *GeminiAnalyzer) analyze(ctx context.Context, imagePath string) (*WasteAnalysis, error) {
	imageBytes, err := os.ReadFile(imagePath)
	if err != nil {
		return nil, fmt.Errorf("read image: %w", err)
	}

	reqBody := geminiRequest{
		SystemInstruction: &geminiContent{Parts: []geminiPart{{Text: visionPrompt}}},
		Contents: []geminiContent{{
			Parts: []geminiPart{
				{InlineData: &geminiInlineData{
					MimeType: "image/jpeg",
					Data:     base64.StdEncoding.EncodeToString(imageBytes),
				}},
				{Text: "Analyze this waste item and provide categorization and disposal guidance."},
			},
		}},
		GenerationConfig: geminiGenConfig{
			ResponseMimeType: "application/json",
			ResponseSchema:   analysisSchema,
		},
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return nil, err
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s",
		g.BaseURL, config.AppConfig.GeminiModel, config.AppConfig.GeminiAPIKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := g.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("gemini api failed with status: %d", resp.StatusCode)
	}

	var result geminiResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, err
	}

	if len(result.Candidates) == 0 || len(result.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("empty response from gemini api")
	}

	var raw rawAnalysis
	if err := json.Unmarshal([]byte(result.Candidates[0].Content.Parts[0].Text), &raw); err != nil {
		return nil, fmt.Errorf("parse analysis json: %w", err)
	}

	if raw.Category == "" || raw.DisposalMethod == "" {
		return nil, fmt.Errorf("invalid response from gemini - missing required fields")
	}

	logger.Info().
		Str("category", raw.Category).
		Dur("latency", time.Since(start)).
		Int("image_bytes", len(imageBytes)).
		Msg("Analyzed waste image via Gemini")

	return &WasteAnalysis{
		Category:       raw.Category,
		Subcategory:    raw.Subcategory,
		DisposalMethod: raw.DisposalMethod,
		PointsEarned:   clampInt(int(raw.PointsEarned), 1, 50),
		Confidence:     clampInt(int(raw.Confidence), 0, 100),
		Description:    raw.Description,
	}, nil
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
