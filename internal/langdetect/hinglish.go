package langdetect

import (
	"strings"
	"unicode"
)

// hinglishMarkers are frequent Hindi function words and fillers as they are
// usually spelled in Latin script
var hinglishMarkers = map[string]bool{
	"hai": true, "hain": true, "nahi": true, "nahin": true, "nhi": true,
	"kya": true, "kyun": true, "kyu": true, "kaise": true, "kaisa": true,
	"mera": true, "meri": true, "mere": true, "tera": true, "teri": true,
	"tere": true, "tum": true, "tumhara": true, "aap": true, "apna": true,
	"apni": true, "hum": true, "hamara": true, "yeh": true, "ye": true,
	"woh": true, "wo": true, "bhi": true, "tha": true, "thi": true,
	"karo": true, "karna": true, "kar": true, "raha": true,
	"rahi": true, "rahe": true, "hoga": true, "hogi": true, "kuch": true,
	"bahut": true, "bohot": true, "bhai": true, "yaar": true, "accha": true,
	"acha": true, "ji": true, "sab": true, "koi": true, "kab": true,
	"kahan": true, "abhi": true, "sirf": true, "jab": true,
	"ko": true, "ka": true, "ki": true, "ke": true,
	"se": true, "mein": true, "toh": true, "aur": true, "lekin": true,
	"sarkar": true, "desh": true, "matlab": true, "chahiye": true, "gaya": true,
	"gayi": true, "diya": true, "liya": true, "wala": true, "wali": true,
}

// HinglishIdentifier reports RomanizedHindiLabel for ASCII text dense in
// Hindi function words and delegates everything else
type HinglishIdentifier struct {
	next Identifier
	// MinTokens is the minimum number of words to judge
	MinTokens int
	// MinRatio is the share of marker words required
	MinRatio float64
}

// NewHinglishIdentifier wraps next with romanized Hindi detection
func NewHinglishIdentifier(next Identifier) *HinglishIdentifier {
	return &HinglishIdentifier{
		next:      next,
		MinTokens: 2,
		MinRatio:  0.3,
	}
}

// Identify implements Identifier
func (h *HinglishIdentifier) Identify(text string) (Identification, bool) {
	if IsASCII(text) {
		if ratio, ok := h.markerRatio(text); ok && ratio >= h.MinRatio {
			return Identification{
				Label:       RomanizedHindiLabel,
				Probability: clamp(0.6 + 0.4*ratio),
			}, true
		}
	}
	if h.next == nil {
		return Identification{}, false
	}
	return h.next.Identify(text)
}

func (h *HinglishIdentifier) markerRatio(text string) (float64, bool) {
	words := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r)
	})
	if len(words) < h.MinTokens {
		return 0, false
	}

	hits := 0
	for _, w := range words {
		if hinglishMarkers[w] {
			hits++
		}
	}
	return float64(hits) / float64(len(words)), true
}
