package vision

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"google.golang.org/genai"
)

// DefaultModel is the Gemini model used when the config leaves it empty
const DefaultModel = "gemini-3-pro-preview"

// GeminiAnalyzer reads board positions with the Gemini multimodal API
type GeminiAnalyzer struct {
	apiKey  string
	model   string
	baseURL string
	logger  *zap.Logger

	once      sync.Once
	client    *genai.Client
	clientErr error
}

// NewGeminiAnalyzer creates an analyzer. An empty apiKey yields an analyzer
// that reports itself unavailable instead of failing at call time.
func NewGeminiAnalyzer(cfg *Config, apiKey string, logger *zap.Logger) *GeminiAnalyzer {
	if logger == nil {
		logger = zap.NewNop()
	}
	model := cfg.Model
	if model == "" {
		model = DefaultModel
	}
	return &GeminiAnalyzer{
		apiKey:  strings.TrimSpace(apiKey),
		model:   model,
		baseURL: cfg.BaseURL,
		logger:  logger,
	}
}

// Available reports whether a credential is configured
func (g *GeminiAnalyzer) Available() bool {
	return g.apiKey != ""
}

// Model returns the model name requests are sent to
func (g *GeminiAnalyzer) Model() string {
	return g.model
}

// AnalyzePosition sends the image with the extraction prompt and returns the FEN
// from the schema-constrained JSON answer. There is no retry.
func (g *GeminiAnalyzer) AnalyzePosition(ctx context.Context, img Image) (string, error) {
	if !g.Available() {
		return "", ErrUnavailable
	}
	client, err := g.getClient(ctx)
	if err != nil {
		return "", fmt.Errorf("%w: create client: %v", ErrAnalysisFailed, err)
	}

	mimeType := img.MIMEType
	if mimeType == "" {
		mimeType = "image/jpeg"
	}
	parts := []*genai.Part{
		genai.NewPartFromBytes(img.Data, mimeType),
		genai.NewPartFromText(positionPrompt),
	}
	contents := []*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)}

	start := time.Now()
	resp, err := client.Models.GenerateContent(ctx, g.model, contents, &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   responseSchema(),
	})
	if err != nil {
		g.logger.Error("Gemini request failed",
			zap.String("model", g.model),
			zap.Error(err),
		)
		return "", fmt.Errorf("%w: %v", ErrAnalysisFailed, err)
	}

	fen, err := parseResponse(resp.Text())
	if err != nil {
		g.logger.Warn("Unusable Gemini response", zap.Error(err))
		return "", err
	}

	g.logger.Debug("Gemini analysis complete",
		zap.String("model", g.model),
		zap.Int("image_bytes", len(img.Data)),
		zap.Duration("latency", time.Since(start)),
	)
	return fen, nil
}

func (g *GeminiAnalyzer) getClient(ctx context.Context) (*genai.Client, error) {
	g.once.Do(func() {
		cc := &genai.ClientConfig{
			APIKey:  g.apiKey,
			Backend: genai.BackendGeminiAPI,
		}
		if g.baseURL != "" {
			cc.HTTPOptions = genai.HTTPOptions{BaseURL: g.baseURL}
		}
		g.client, g.clientErr = genai.NewClient(ctx, cc)
	})
	return g.client, g.clientErr
}

func responseSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			fenField: {
				Type:        genai.TypeString,
				Description: "The FEN string of the chess position.",
			},
		},
		Required: []string{fenField},
	}
}

type positionResponse struct {
	FEN string `json:"fen"`
}

// parseResponse extracts the fen field from the model's JSON text
func parseResponse(text string) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", fmt.Errorf("%w: empty response", ErrAnalysisFailed)
	}
	var out positionResponse
	if err := json.Unmarshal([]byte(text), &out); err != nil {
		return "", fmt.Errorf("%w: decode response: %v", ErrAnalysisFailed, err)
	}
	fen := strings.TrimSpace(out.FEN)
	if fen == "" {
		return "", fmt.Errorf("%w: response has no %s field", ErrAnalysisFailed, fenField)
	}
	return fen, nil
}
