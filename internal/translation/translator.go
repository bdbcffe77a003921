package translation

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"
)

var (
	// ErrMissingAPIKey is returned when a backend has no credentials
	ErrMissingAPIKey = errors.New("OpenAI API key not found")
	// ErrEmptyTranslation is returned when the model answers with nothing
	ErrEmptyTranslation = errors.New("no translation returned")
)

// Translator translates text between translation model language tags
type Translator interface {
	Translate(ctx context.Context, text, srcTag, tgtTag string) (string, error)
}

// OpenAIConfig configures the OpenAI backend
type OpenAIConfig struct {
	APIKey  string
	Model   string
	BaseURL string // optional, for proxies and tests
}

// OpenAITranslator handles translation through OpenAI chat completions
type OpenAITranslator struct {
	apiKey string
	model  string
	client *openai.Client
}

// NewOpenAITranslator creates a new translator instance
func NewOpenAITranslator(cfg OpenAIConfig) *OpenAITranslator {
	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}

	model := cfg.Model
	if model == "" {
		model = openai.GPT4oMini
	}

	return &OpenAITranslator{
		apiKey: cfg.APIKey,
		model:  model,
		client: openai.NewClientWithConfig(clientConfig),
	}
}

// Translate translates text from srcTag to tgtTag
func (t *OpenAITranslator) Translate(ctx context.Context, text, srcTag, tgtTag string) (string, error) {
	if t.apiKey == "" {
		return "", ErrMissingAPIKey
	}

	req := openai.ChatCompletionRequest{
		Model: t.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: systemPrompt,
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: buildPrompt(text, srcTag, tgtTag),
			},
		},
		MaxTokens:   512,
		Temperature: 0.2,
	}

	resp, err := t.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("OpenAI API error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", ErrEmptyTranslation
	}

	translation := strings.TrimSpace(resp.Choices[0].Message.Content)
	if translation == "" {
		return "", ErrEmptyTranslation
	}
	return translation, nil
}

const systemPrompt = "You are a translation engine for short social media posts. " +
	"Translate faithfully, keep hashtags, mentions, URLs and emoji unchanged, " +
	"and respond with only the translation."

func buildPrompt(text, srcTag, tgtTag string) string {
	return fmt.Sprintf("Translate the following %s (%s) text to %s (%s).\n\n%s",
		DescribeTag(srcTag), srcTag, DescribeTag(tgtTag), tgtTag, text)
}
