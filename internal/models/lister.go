package models

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/sashabaranov/go-openai"
)

// Lister handles listing available OpenAI models
type Lister struct {
	apiKey string
	client *openai.Client
}

// NewLister creates a new model lister
func NewLister(apiKey string) *Lister {
	return NewListerWithBaseURL(apiKey, "")
}

// NewListerWithBaseURL creates a lister talking to an OpenAI compatible endpoint
func NewListerWithBaseURL(apiKey, baseURL string) *Lister {
	config := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		config.BaseURL = baseURL
	}
	return &Lister{
		apiKey: apiKey,
		client: openai.NewClientWithConfig(config),
	}
}

// Catalog is the model list split by usefulness for this tool
type Catalog struct {
	// Chat models can translate and transliterate
	Chat []string
	// Other holds embedding, audio, image and moderation models
	Other []string
}

// FetchCatalog retrieves and categorizes the models for the API key
func (l *Lister) FetchCatalog(ctx context.Context) (Catalog, error) {
	if l.apiKey == "" {
		return Catalog{}, fmt.Errorf("OpenAI API key not found. Set OPENAI_API_KEY environment variable or configure in .tweetlate.yaml")
	}

	models, err := l.client.ListModels(ctx)
	if err != nil {
		return Catalog{}, fmt.Errorf("failed to list models: %w", err)
	}

	var catalog Catalog
	for _, model := range models.Models {
		if IsChatModel(model.ID) {
			catalog.Chat = append(catalog.Chat, model.ID)
		} else {
			catalog.Other = append(catalog.Other, model.ID)
		}
	}

	sort.Strings(catalog.Chat)
	sort.Strings(catalog.Other)
	return catalog, nil
}

// IsChatModel reports whether a model id looks like a text chat model
func IsChatModel(id string) bool {
	for _, skip := range []string{"tts", "audio", "realtime", "transcribe", "dall-e", "image", "embedding", "whisper", "moderation", "search"} {
		if strings.Contains(id, skip) {
			return false
		}
	}
	return strings.HasPrefix(id, "gpt") || strings.Contains(id, "chat") ||
		strings.HasPrefix(id, "o1") || strings.HasPrefix(id, "o3") || strings.HasPrefix(id, "o4")
}

// ListAvailableModels prints the chat models usable for translation
func (l *Lister) ListAvailableModels(ctx context.Context, w io.Writer) error {
	catalog, err := l.FetchCatalog(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintln(w, "Available OpenAI Models:")
	fmt.Fprintln(w, "\nChat Models (for translation and transliteration):")
	if len(catalog.Chat) == 0 {
		fmt.Fprintln(w, "  No chat models found")
	} else {
		for _, model := range catalog.Chat {
			fmt.Fprintf(w, "  %s\n", model)
		}
	}

	if len(catalog.Other) > 0 {
		fmt.Fprintf(w, "\n... and %d other models not usable for translation\n", len(catalog.Other))
	}

	return nil
}
