// Package models provides functionality for listing and categorizing
// available OpenAI models. It helps users pick a chat model for the
// --model flag.
package models
