package langdetect

import (
	"strings"

	"github.com/pemistahl/lingua-go"
)

// DefaultLinguaLanguages is the candidate set used by NewIdentifier: the
// Indic languages lingua models plus the Latin-script languages most seen
// next to them in Indian social media. Kannada, Malayalam and Assamese have no
// lingua model and are found by script.
func DefaultLinguaLanguages() []lingua.Language {
	return []lingua.Language{
		lingua.English,
		lingua.Hindi,
		lingua.Marathi,
		lingua.Tamil,
		lingua.Telugu,
		lingua.Punjabi,
		lingua.Bengali,
		lingua.Gujarati,
		lingua.Urdu,
		lingua.French,
		lingua.Spanish,
		lingua.German,
		lingua.Portuguese,
		lingua.Indonesian,
		lingua.Tagalog,
	}
}

// LinguaIdentifier identifies languages with lingua-go
type LinguaIdentifier struct {
	detector lingua.LanguageDetector
}

// NewLinguaIdentifier builds a detector for the given languages. Lingua
// needs at least two, so fewer selects all languages.
func NewLinguaIdentifier(languages ...lingua.Language) *LinguaIdentifier {
	builder := lingua.NewLanguageDetectorBuilder()
	var detector lingua.LanguageDetector
	if len(languages) >= 2 {
		detector = builder.FromLanguages(languages...).Build()
	} else {
		detector = builder.FromAllLanguages().Build()
	}
	return &LinguaIdentifier{detector: detector}
}

// Identify implements Identifier
func (l *LinguaIdentifier) Identify(text string) (Identification, bool) {
	values := l.detector.ComputeLanguageConfidenceValues(text)
	if len(values) == 0 {
		return Identification{}, false
	}

	// values are sorted by descending confidence
	top := values[0]
	if top.Value() <= 0 {
		return Identification{}, false
	}

	return Identification{
		Label:       strings.ToLower(top.Language().IsoCode639_3().String()),
		Probability: clamp(top.Value()),
	}, true
}
