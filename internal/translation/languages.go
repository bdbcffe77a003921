package translation

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// DescribeTag returns the English name of a model tag such as "hin_Deva"
func DescribeTag(tag string) string {
	base := tag
	if idx := strings.IndexAny(tag, "_-"); idx >= 0 {
		base = tag[:idx]
	}

	parsed, err := language.Parse(base)
	if err != nil {
		return tag
	}

	name := display.English.Languages().Name(parsed)
	if name == "" {
		return tag
	}
	return name
}
