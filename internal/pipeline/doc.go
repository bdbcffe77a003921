// Package pipeline runs a single text through detection, optional
// transliteration and translation. Failures never escape: the caller
// always gets a Result, and failed texts keep their original content.
package pipeline
