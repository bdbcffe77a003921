package translation

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"google.golang.org/genai"
)

// ErrMissingGeminiKey is returned when the Gemini backend has no credentials
var ErrMissingGeminiKey = errors.New("Gemini API key not found")

// DefaultGeminiModel is used when no model is configured
const DefaultGeminiModel = "gemini-2.0-flash"

// GeminiConfig configures the Gemini backend
type GeminiConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

// GeminiTranslator translates through the Gemini API. The client is
// created on first use.
type GeminiTranslator struct {
	cfg GeminiConfig

	once    sync.Once
	client  *genai.Client
	initErr error
}

// NewGeminiTranslator creates a Gemini backed translator
func NewGeminiTranslator(cfg GeminiConfig) *GeminiTranslator {
	if cfg.Model == "" {
		cfg.Model = DefaultGeminiModel
	}
	return &GeminiTranslator{cfg: cfg}
}

func (g *GeminiTranslator) connect(ctx context.Context) error {
	g.once.Do(func() {
		clientConfig := &genai.ClientConfig{
			APIKey:  g.cfg.APIKey,
			Backend: genai.BackendGeminiAPI,
		}
		if g.cfg.BaseURL != "" {
			clientConfig.HTTPOptions = genai.HTTPOptions{BaseURL: g.cfg.BaseURL}
		}
		g.client, g.initErr = genai.NewClient(ctx, clientConfig)
	})
	return g.initErr
}

// Translate implements Translator
func (g *GeminiTranslator) Translate(ctx context.Context, text, srcTag, tgtTag string) (string, error) {
	if g.cfg.APIKey == "" {
		return "", ErrMissingGeminiKey
	}
	if err := g.connect(ctx); err != nil {
		return "", fmt.Errorf("failed to create Gemini client: %w", err)
	}

	config := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(systemPrompt, genai.RoleUser),
		Temperature:       genai.Ptr[float32](0.2),
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.cfg.Model, genai.Text(buildPrompt(text, srcTag, tgtTag)), config)
	if err != nil {
		return "", fmt.Errorf("Gemini API error: %w", err)
	}

	translation := strings.TrimSpace(resp.Text())
	if translation == "" {
		return "", ErrEmptyTranslation
	}
	return translation, nil
}
