// Package batch reads and writes the tweet corpus and splits it into
// numbered parts.
//
// Records keep every field they were read with. Only content fields are
// meant to be rewritten, everything else round-trips unchanged.
package batch
