package langdetect

import (
	"math"
	"strings"

	"github.com/sirupsen/logrus"

	"codeberg.org/snonux/tweetlate/internal/logging"
)

// Thresholds tune when the identifier is trusted over script heuristics
type Thresholds struct {
	// Accept is the probability an identification must exceed to be used
	Accept float64
	// ASCIIHindi is the probability below which ASCII text is taken as romanized Hindi
	ASCIIHindi float64
	// English is the probability below which an English guess is re-checked
	English float64
	// Fallback is the confidence reported for script-based answers
	Fallback float64
}

// DefaultThresholds returns the thresholds the corpus runs were tuned with
func DefaultThresholds() Thresholds {
	return Thresholds{
		Accept:     0.5,
		ASCIIHindi: 0.7,
		English:    0.9,
		Fallback:   0.7,
	}
}

// Detection is the detected language of a text
type Detection struct {
	Code       Code
	Confidence float64
	// Overridden is set when script analysis replaced the identifier's answer
	Overridden bool
}

// Detector combines an identifier with script range heuristics
type Detector struct {
	identifier Identifier
	thresholds Thresholds
	log        logrus.FieldLogger
}

// NewDetector creates a detector, a nil logger discards output
func NewDetector(identifier Identifier, thresholds Thresholds, log logrus.FieldLogger) *Detector {
	if log == nil {
		log = logging.Discard()
	}
	return &Detector{
		identifier: identifier,
		thresholds: thresholds,
		log:        log,
	}
}

// DetectScript guesses the language from the characters used
func (d *Detector) DetectScript(text string) Code {
	if strings.TrimSpace(text) == "" {
		return English
	}

	if code, ok := scriptOf(text); ok {
		return code
	}

	if IsASCII(text) {
		if result, ok := d.identify(text); ok {
			if result.Label == RomanizedHindiLabel {
				return Hindi
			}
			if result.Probability < d.thresholds.ASCIIHindi {
				d.log.WithField("probability", result.Probability).
					Debug("Low confidence ASCII text, assuming romanized Hindi")
				return Hindi
			}
		}
	}

	return English
}

// Detect returns the language of text and a confidence in [0, 1]
func (d *Detector) Detect(text string) Detection {
	if strings.TrimSpace(text) == "" {
		return Detection{Code: English, Confidence: 1.0}
	}

	result, ok := d.identify(text)
	if ok && result.Probability > d.thresholds.Accept {
		detected := CodeForLabel(result.Label)
		if !detected.Supported() || (detected == English && result.Probability < d.thresholds.English) {
			scriptLang := d.DetectScript(text)
			if scriptLang != detected {
				d.log.WithFields(logrus.Fields{
					"detected": string(detected),
					"script":   string(scriptLang),
				}).Debug("Script disagrees with identifier, overriding")
				return Detection{
					Code:       scriptLang,
					Confidence: clamp(max(result.Probability, d.thresholds.Fallback)),
					Overridden: true,
				}
			}
		}
		return Detection{Code: detected, Confidence: clamp(result.Probability)}
	}

	return Detection{Code: d.DetectScript(text), Confidence: clamp(d.thresholds.Fallback)}
}

func (d *Detector) identify(text string) (Identification, bool) {
	if d.identifier == nil {
		return Identification{}, false
	}
	return d.identifier.Identify(text)
}

func clamp(p float64) float64 {
	switch {
	case math.IsNaN(p), p < 0:
		return 0
	case p > 1:
		return 1
	}
	return p
}
