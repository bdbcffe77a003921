// Package langdetect identifies the language of short social-media texts.
// A statistical identifier (lingua or whatlanggo) provides a label and a
// probability, and Unicode script ranges override the model when it is
// unsure or reports a language outside the supported Indic set.
package langdetect
