package langdetect

import (
	"github.com/abadojack/whatlanggo"
)

// WhatlangIdentifier identifies languages with whatlanggo's trigram model
type WhatlangIdentifier struct {
	options whatlanggo.Options
}

// NewWhatlangIdentifier creates an identifier over all whatlanggo languages
func NewWhatlangIdentifier() *WhatlangIdentifier {
	return &WhatlangIdentifier{}
}

// Identify implements Identifier
func (w *WhatlangIdentifier) Identify(text string) (Identification, bool) {
	info := whatlanggo.DetectWithOptions(text, w.options)
	if info.Script == nil || info.Confidence <= 0 {
		return Identification{}, false
	}

	return Identification{
		Label:       info.Lang.Iso6393(),
		Probability: clamp(info.Confidence),
	}, true
}
