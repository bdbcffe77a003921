// Package translation translates social-media text into English using
// hosted chat models (OpenAI or Gemini). Backends are wrapped with an
// in-memory and an optional SQLite cache so that resumed batch runs do not
// translate the same text twice, and with a guard that rate limits calls
// and stops hammering a failing service.
package translation
