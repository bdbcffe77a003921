package transliteration

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"

	"codeberg.org/snonux/tweetlate/internal/guard"
	"codeberg.org/snonux/tweetlate/internal/langdetect"
)

var (
	// ErrMissingAPIKey is returned when no OpenAI key is configured
	ErrMissingAPIKey = errors.New("OpenAI API key not found")
	// ErrNoCandidates is returned when no usable Devanagari candidate came back
	ErrNoCandidates = errors.New("no transliteration candidates")
)

// Transliterator converts Latin script Hindi to Devanagari
type Transliterator interface {
	Transliterate(ctx context.Context, text string) (string, error)
}

// Config configures the OpenAI transliterator
type Config struct {
	APIKey  string
	Model   string
	BaseURL string
	// BeamWidth is the number of sentence candidates requested
	BeamWidth int
	Guard     *guard.Guard
}

// OpenAITransliterator asks a chat model for several sentence-level
// candidates and keeps the best one
type OpenAITransliterator struct {
	apiKey    string
	model     string
	beamWidth int
	client    *openai.Client
	guard     *guard.Guard
}

// NewOpenAITransliterator creates a transliterator
func NewOpenAITransliterator(cfg Config) *OpenAITransliterator {
	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}
	model := cfg.Model
	if model == "" {
		model = openai.GPT4oMini
	}
	beam := cfg.BeamWidth
	if beam < 1 {
		beam = 1
	}

	return &OpenAITransliterator{
		apiKey:    cfg.APIKey,
		model:     model,
		beamWidth: beam,
		client:    openai.NewClientWithConfig(clientConfig),
		guard:     cfg.Guard,
	}
}

// Transliterate returns the best Devanagari rendering of text
func (t *OpenAITransliterator) Transliterate(ctx context.Context, text string) (string, error) {
	if t.apiKey == "" {
		return "", ErrMissingAPIKey
	}

	if t.guard != nil {
		return t.guard.Do(ctx, func(ctx context.Context) (string, error) {
			return t.transliterate(ctx, text)
		})
	}
	return t.transliterate(ctx, text)
}

func (t *OpenAITransliterator) transliterate(ctx context.Context, text string) (string, error) {
	req := openai.ChatCompletionRequest{
		Model: t.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role: openai.ChatMessageRoleSystem,
				Content: "You transliterate Hindi written in Latin script (Hinglish) into Devanagari. " +
					"Do not translate. Keep English loan words phonetically, keep hashtags, mentions, URLs, " +
					"numbers and emoji unchanged. Respond with only the Devanagari sentence.",
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: text,
			},
		},
		N:           t.beamWidth,
		MaxTokens:   512,
		Temperature: 0.7,
	}

	resp, err := t.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("OpenAI API error: %w", err)
	}

	candidates := make([]string, 0, len(resp.Choices))
	for _, choice := range resp.Choices {
		candidates = append(candidates, choice.Message.Content)
	}

	best, ok := BestCandidate(candidates)
	if !ok {
		return "", ErrNoCandidates
	}
	return best, nil
}

// BestCandidate picks the most frequent Devanagari candidate, ties go to
// the earliest one. Candidates without Devanagari are ignored.
func BestCandidate(candidates []string) (string, bool) {
	counts := make(map[string]int)
	var order []string

	for _, c := range candidates {
		norm := normalize(c)
		if norm == "" || !langdetect.HasDevanagari(norm) {
			continue
		}
		if counts[norm] == 0 {
			order = append(order, norm)
		}
		counts[norm]++
	}

	best := ""
	bestCount := 0
	for _, c := range order {
		if counts[c] > bestCount {
			best = c
			bestCount = counts[c]
		}
	}
	return best, bestCount > 0
}

func normalize(s string) string {
	s = strings.TrimSpace(s)
	s = strings.Trim(s, "\"'`")
	return strings.Join(strings.Fields(s), " ")
}
