package langdetect

import (
	"fmt"
	"strings"
)

// Identification is a single identifier guess
type Identification struct {
	Label       string  // ISO 639-3 code or RomanizedHindiLabel
	Probability float64 // 0..1
}

// Identifier is a probabilistic language identification model
type Identifier interface {
	// Identify returns the best guess, false when the text is unidentifiable
	Identify(text string) (Identification, bool)
}

// NewIdentifier creates the identifier for an engine name, wrapped with
// romanized Hindi detection
func NewIdentifier(engine string) (Identifier, error) {
	var base Identifier
	switch strings.ToLower(engine) {
	case "", "lingua":
		base = NewLinguaIdentifier(DefaultLinguaLanguages()...)
	case "whatlang", "whatlanggo":
		base = NewWhatlangIdentifier()
	default:
		return nil, fmt.Errorf("unknown detector engine: %s", engine)
	}
	return NewHinglishIdentifier(base), nil
}
