// Package logging configures the logrus logger used across tweetlate.
// It provides a colored key=value formatter for terminals and falls back
// to logrus' JSON formatter for machine-readable runs.
package logging
