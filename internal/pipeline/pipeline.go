package pipeline

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"codeberg.org/snonux/tweetlate/internal"
	"codeberg.org/snonux/tweetlate/internal/langdetect"
	"codeberg.org/snonux/tweetlate/internal/logging"
	"codeberg.org/snonux/tweetlate/internal/translation"
	"codeberg.org/snonux/tweetlate/internal/transliteration"
)

// Detector is the part of langdetect.Detector the pipeline needs
type Detector interface {
	Detect(text string) langdetect.Detection
}

// Pipeline processes texts into English
type Pipeline struct {
	detector       Detector
	transliterator transliteration.Transliterator
	translator     translation.Translator
	minConfidence  float64
	targetTag      string
	log            logrus.FieldLogger
}

// Config holds pipeline dependencies
type Config struct {
	Detector       Detector
	Transliterator transliteration.Transliterator
	Translator     translation.Translator
	// MinConfidence is the lowest accepted detection confidence, inclusive
	MinConfidence float64
	// TargetTag defaults to langdetect.TargetTag
	TargetTag string
	Logger    logrus.FieldLogger
}

// New creates a pipeline
func New(cfg Config) *Pipeline {
	log := cfg.Logger
	if log == nil {
		log = logging.Discard()
	}
	target := cfg.TargetTag
	if target == "" {
		target = langdetect.TargetTag
	}
	return &Pipeline{
		detector:       cfg.Detector,
		transliterator: cfg.Transliterator,
		translator:     cfg.Translator,
		minConfidence:  cfg.MinConfidence,
		targetTag:      target,
		log:            log,
	}
}

// ProcessText returns the processed text, the original on any failure
func (p *Pipeline) ProcessText(ctx context.Context, text string) string {
	return p.Process(ctx, text).Text
}

// Process runs text through the pipeline, it never panics
func (p *Pipeline) Process(ctx context.Context, text string) (res Result) {
	res = Result{Text: text, Original: text, Outcome: Unchanged}

	defer func() {
		if r := recover(); r != nil {
			res = Result{
				Text:       text,
				Original:   text,
				Language:   res.Language,
				Confidence: res.Confidence,
				Overridden: res.Overridden,
				Outcome:    Failed,
				Reason:     ReasonPanic,
				Err:        fmt.Errorf("panic while processing text: %v", r),
			}
		}
		p.logResult(res)
	}()

	detection := p.detector.Detect(text)
	res.Language = detection.Code
	res.Confidence = detection.Confidence
	res.Overridden = detection.Overridden

	if detection.Confidence < p.minConfidence {
		res.Reason = ReasonLowConfidence
		return res
	}

	switch {
	case detection.Code == langdetect.English:
		res.Reason = ReasonEnglish
		return res

	case detection.Code == langdetect.Hindi:
		source := text
		if !langdetect.HasDevanagari(text) {
			devanagari, err := p.transliterate(ctx, text)
			if err != nil {
				return failed(res, ReasonTransliteration, err)
			}
			res.Transliterated = devanagari
			source = devanagari
		}
		tag, _ := langdetect.Hindi.ModelTag()
		return p.translate(ctx, res, source, tag)

	case detection.Code.Supported():
		tag, _ := detection.Code.ModelTag()
		return p.translate(ctx, res, text, tag)
	}

	res.Reason = ReasonUnsupported
	return res
}

func (p *Pipeline) transliterate(ctx context.Context, text string) (string, error) {
	if p.transliterator == nil {
		return "", fmt.Errorf("no transliterator configured")
	}
	devanagari, err := p.transliterator.Transliterate(ctx, text)
	if err != nil {
		return "", fmt.Errorf("transliteration failed: %w", err)
	}
	return devanagari, nil
}

func (p *Pipeline) translate(ctx context.Context, res Result, source, srcTag string) Result {
	if p.translator == nil {
		return failed(res, ReasonTranslation, fmt.Errorf("no translator configured"))
	}
	translated, err := p.translator.Translate(ctx, source, srcTag, p.targetTag)
	if err != nil {
		return failed(res, ReasonTranslation, fmt.Errorf("translation failed: %w", err))
	}
	res.Text = translated
	res.Outcome = Translated
	return res
}

func failed(res Result, reason string, err error) Result {
	res.Text = res.Original
	res.Outcome = Failed
	res.Reason = reason
	res.Err = err
	return res
}

func (p *Pipeline) logResult(res Result) {
	entry := p.log.WithFields(logrus.Fields{
		"lang":       string(res.Language),
		"confidence": res.Confidence,
		"outcome":    res.Outcome.String(),
	})
	if res.Reason != "" {
		entry = entry.WithField("reason", res.Reason)
	}
	if res.Overridden {
		entry = entry.WithField("overridden", true)
	}

	switch res.Outcome {
	case Failed:
		entry.WithError(res.Err).Warn("Text left unchanged after error")
	case Translated:
		if res.Transliterated != "" {
			entry = entry.WithField("devanagari", internal.Truncate(res.Transliterated, 60))
		}
		entry.WithField("text", internal.Truncate(res.Text, 60)).Debug("Translated to English")
	default:
		entry.Debug("Text passed through")
	}
}
