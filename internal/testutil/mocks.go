package testutil

import (
	"context"
	"fmt"
	"strings"

	"codeberg.org/snonux/tweetlate/internal/langdetect"
)

// MockDetector returns canned detections keyed by text
type MockDetector struct {
	Detections map[string]langdetect.Detection
	// Default is returned for unknown texts
	Default langdetect.Detection
	// PanicOn makes Detect panic for the given text
	PanicOn string
	Calls   []string
}

// Detect mocks language detection
func (m *MockDetector) Detect(text string) langdetect.Detection {
	m.Calls = append(m.Calls, text)
	if m.PanicOn != "" && text == m.PanicOn {
		panic("mock detector exploded")
	}
	if d, ok := m.Detections[text]; ok {
		return d
	}
	return m.Default
}

// MockTranslator mocks translation service
type MockTranslator struct {
	Translations map[string]string
	Errors       map[string]error
	Calls        []string
}

// Translate mocks translating text
func (m *MockTranslator) Translate(ctx context.Context, text, fromLang, toLang string) (string, error) {
	call := fmt.Sprintf("Translate: %s (%s->%s)", text, fromLang, toLang)
	m.Calls = append(m.Calls, call)

	if err, ok := m.Errors[text]; ok {
		return "", err
	}

	if translation, ok := m.Translations[text]; ok {
		return translation, nil
	}

	// Default mock translation
	return fmt.Sprintf("mock translation of %s", text), nil
}

// MockTransliterator mocks romanized Hindi transliteration
type MockTransliterator struct {
	Results map[string]string
	Errors  map[string]error
	Calls   []string
}

// Transliterate mocks transliterating text
func (m *MockTransliterator) Transliterate(ctx context.Context, text string) (string, error) {
	m.Calls = append(m.Calls, text)

	if err, ok := m.Errors[text]; ok {
		return "", err
	}
	if out, ok := m.Results[text]; ok {
		return out, nil
	}
	return "देवनागरी(" + strings.TrimSpace(text) + ")", nil
}

// TestDataGenerator generates test data
type TestDataGenerator struct{}

// GenerateCorpus generates a JSON corpus of n tweets, each with one comment
func (g *TestDataGenerator) GenerateCorpus(n int) []byte {
	var b strings.Builder
	b.WriteString("[")
	for i := 1; i <= n; i++ {
		if i > 1 {
			b.WriteString(",")
		}
		fmt.Fprintf(&b, `{"tweet_id": "%d", "content": "tweet %d", "comments": [{"content": "comment %d"}]}`, i, i, i)
	}
	b.WriteString("]")
	return []byte(b.String())
}
