package internal

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"strings"
)

// CacheKey creates a stable key for a translation request
// Format: md5(src|tgt|text)
func CacheKey(srcTag, tgtTag, text string) string {
	hash := md5.Sum([]byte(srcTag + "|" + tgtTag + "|" + text))
	return hex.EncodeToString(hash[:])
}

// PartFileName returns the output file name for a 1-based part number
func PartFileName(prefix string, part int) string {
	return fmt.Sprintf("%s%d.json", prefix, part)
}

// Truncate shortens text for log output
func Truncate(s string, max int) string {
	s = strings.TrimSpace(s)
	runes := []rune(s)
	if max <= 0 || len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "..."
}
