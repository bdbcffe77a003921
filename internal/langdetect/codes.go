package langdetect

import "unicode/utf8"

// Code is an ISO 639-1 language code understood by the pipeline
type Code string

const (
	English   Code = "en"
	Hindi     Code = "hi"
	Tamil     Code = "ta"
	Telugu    Code = "te"
	Marathi   Code = "mr"
	Punjabi   Code = "pa"
	Bengali   Code = "bn"
	Gujarati  Code = "gu"
	Malayalam Code = "ml"
	Kannada   Code = "kn"
	Assamese  Code = "as"
)

// RomanizedHindiLabel is the identifier label for Hindi written in Latin script
const RomanizedHindiLabel = "hi-Latn"

// modelTags maps supported codes to translation model language tags
var modelTags = map[Code]string{
	English:   "eng_Latn",
	Hindi:     "hin_Deva",
	Tamil:     "tam_Taml",
	Telugu:    "tel_Telu",
	Marathi:   "mar_Deva",
	Punjabi:   "pan_Guru",
	Bengali:   "ben_Beng",
	Gujarati:  "guj_Gujr",
	Malayalam: "mal_Mlym",
	Kannada:   "kan_Knda",
	Assamese:  "asm_Beng",
}

// labelCodes maps identifier labels (ISO 639-3) to codes
var labelCodes = map[string]Code{
	"eng":               English,
	"hin":               Hindi,
	"tam":               Tamil,
	"tel":               Telugu,
	"mar":               Marathi,
	"pan":               Punjabi,
	"ben":               Bengali,
	"guj":               Gujarati,
	"mal":               Malayalam,
	"kan":               Kannada,
	"asm":               Assamese,
	RomanizedHindiLabel: Hindi,
}

// TargetTag is the model tag translations are produced in
const TargetTag = "eng_Latn"

// Supported reports whether the code has a translation model tag
func (c Code) Supported() bool {
	_, ok := modelTags[c]
	return ok
}

// ModelTag returns the translation model tag for the code
func (c Code) ModelTag() (string, bool) {
	tag, ok := modelTags[c]
	return tag, ok
}

// SupportedCodes returns all codes in a fixed order
func SupportedCodes() []Code {
	return []Code{English, Hindi, Tamil, Telugu, Marathi, Punjabi, Bengali, Gujarati, Malayalam, Kannada, Assamese}
}

// CodeForLabel maps an identifier label to a code, unknown labels pass through
func CodeForLabel(label string) Code {
	if code, ok := labelCodes[label]; ok {
		return code
	}
	return Code(label)
}

// ScriptRange is an inclusive block of code points used by a language
type ScriptRange struct {
	Code Code
	Lo   rune
	Hi   rune
}

// Contains reports whether r falls inside the range
func (s ScriptRange) Contains(r rune) bool {
	return r >= s.Lo && r <= s.Hi
}

// scriptRanges is checked in order, the first match wins. Marathi and
// Assamese share blocks with Hindi and Bengali and are never reached.
var scriptRanges = []ScriptRange{
	{Hindi, 0x0900, 0x097F},
	{Tamil, 0x0B80, 0x0BFF},
	{Telugu, 0x0C00, 0x0C7F},
	{Marathi, 0x0900, 0x097F},
	{Punjabi, 0x0A00, 0x0A7F},
	{Bengali, 0x0980, 0x09FF},
	{Gujarati, 0x0A80, 0x0AFF},
	{Malayalam, 0x0D00, 0x0D7F},
	{Kannada, 0x0C80, 0x0CFF},
	{Assamese, 0x0980, 0x09FF},
}

// ScriptRanges returns a copy of the script table
func ScriptRanges() []ScriptRange {
	out := make([]ScriptRange, len(scriptRanges))
	copy(out, scriptRanges)
	return out
}

// HasDevanagari reports whether text contains any Devanagari code point
func HasDevanagari(text string) bool {
	for _, r := range text {
		if r >= 0x0900 && r <= 0x097F {
			return true
		}
	}
	return false
}

// IsASCII reports whether every rune in text is below 128
func IsASCII(text string) bool {
	for _, r := range text {
		if r >= utf8.RuneSelf {
			return false
		}
	}
	return true
}

// scriptOf returns the language of the first rune inside a script range
func scriptOf(text string) (Code, bool) {
	for _, r := range text {
		for _, sr := range scriptRanges {
			if sr.Contains(r) {
				return sr.Code, true
			}
		}
	}
	return "", false
}
