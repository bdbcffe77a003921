package translation

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"codeberg.org/snonux/tweetlate/internal/guard"
)

// Options selects and configures the translation service
type Options struct {
	Provider  string // "openai" or "gemini"
	Model     string
	OpenAIKey string
	GeminiKey string
	BaseURL   string
	Guard     *guard.Guard
	Store     Store
	Logger    logrus.FieldLogger
}

// NewService builds the translator stack: backend, guard, then cache
func NewService(opts Options) (*CachingTranslator, error) {
	var backend Translator
	switch strings.ToLower(opts.Provider) {
	case "", "openai":
		backend = NewOpenAITranslator(OpenAIConfig{
			APIKey:  opts.OpenAIKey,
			Model:   opts.Model,
			BaseURL: opts.BaseURL,
		})
	case "gemini":
		backend = NewGeminiTranslator(GeminiConfig{
			APIKey:  opts.GeminiKey,
			Model:   opts.Model,
			BaseURL: opts.BaseURL,
		})
	default:
		return nil, fmt.Errorf("unknown translation provider: %s", opts.Provider)
	}

	if opts.Guard != nil {
		backend = NewGuardedTranslator(backend, opts.Guard)
	}

	return NewCachingTranslator(backend, opts.Store, opts.Logger), nil
}
