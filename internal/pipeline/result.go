package pipeline

import "codeberg.org/snonux/tweetlate/internal/langdetect"

// Outcome classifies what happened to a text
type Outcome int

const (
	// Unchanged means the text was intentionally passed through
	Unchanged Outcome = iota
	// Translated means Text holds a translation
	Translated
	// Failed means processing broke and Text is the original
	Failed
)

func (o Outcome) String() string {
	switch o {
	case Unchanged:
		return "unchanged"
	case Translated:
		return "translated"
	case Failed:
		return "failed"
	}
	return "unknown"
}

// Reasons for unchanged and failed results
const (
	ReasonEnglish         = "english"
	ReasonLowConfidence   = "low-confidence"
	ReasonUnsupported     = "unsupported"
	ReasonTransliteration = "transliteration"
	ReasonTranslation     = "translation"
	ReasonPanic           = "panic"
)

// Result is the outcome of processing one text
type Result struct {
	Text           string
	Original       string
	Language       langdetect.Code
	Confidence     float64
	// Overridden is set when script analysis replaced the identifier's answer
	Overridden     bool
	Transliterated string
	Outcome        Outcome
	Reason         string
	Err            error
}
