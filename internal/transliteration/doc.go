// Package transliteration converts romanized Hindi (Hinglish) into
// Devanagari so it can be translated with the Hindi model tag.
package transliteration
