// Package processor contains the batch logic of tweetlate. It loads the
// corpus, selects the requested parts, runs every tweet and comment
// through the text pipeline and writes each part to its own file.
package processor
