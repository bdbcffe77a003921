package batch

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

const (
	fieldTweetID  = "tweet_id"
	fieldContent  = "content"
	fieldComments = "comments"
)

// presence records how the content key appeared in the input
type presence uint8

const (
	contentAbsent presence = iota
	contentPresent
	contentNull
)

// Comment is a reply attached to a tweet
type Comment struct {
	Content string
	// Extra holds fields that are carried through untouched
	Extra map[string]json.RawMessage

	content presence
}

// Tweet is one corpus record. An empty Content is only written back when
// the record had a content key.
type Tweet struct {
	// ID is kept raw so numeric and string ids survive unchanged
	ID       json.RawMessage
	Content  string
	Comments []Comment
	Extra    map[string]json.RawMessage

	content presence
}

// IDString returns the tweet id for logging
func (t Tweet) IDString() string {
	if len(t.ID) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(t.ID, &s); err == nil {
		return s
	}
	return string(t.ID)
}

// UnmarshalJSON decodes a tweet object
func (t *Tweet) UnmarshalJSON(data []byte) error {
	fields, err := decodeObject(data)
	if err != nil {
		return fmt.Errorf("invalid tweet: %w", err)
	}

	out := Tweet{}
	if raw, ok := fields[fieldTweetID]; ok {
		out.ID = append(json.RawMessage(nil), raw...)
		delete(fields, fieldTweetID)
	}
	if out.Content, out.content, err = popString(fields, fieldContent); err != nil {
		return fmt.Errorf("invalid tweet %s: %w", out.IDString(), err)
	}
	if raw, ok := fields[fieldComments]; ok {
		if string(raw) != "null" {
			if err := json.Unmarshal(raw, &out.Comments); err != nil {
				return fmt.Errorf("invalid comments in tweet %s: %w", out.IDString(), err)
			}
			if out.Comments == nil {
				out.Comments = []Comment{}
			}
		}
		delete(fields, fieldComments)
	}
	if len(fields) > 0 {
		out.Extra = fields
	}

	*t = out
	return nil
}

// MarshalJSON encodes the tweet with its extra fields
func (t Tweet) MarshalJSON() ([]byte, error) {
	fields := make(map[string]json.RawMessage, len(t.Extra)+3)
	for k, v := range t.Extra {
		fields[k] = v
	}
	if len(t.ID) > 0 {
		fields[fieldTweetID] = t.ID
	}

	if err := putContent(fields, t.Content, t.content); err != nil {
		return nil, err
	}

	if t.Comments != nil {
		comments, err := encodeValue(t.Comments)
		if err != nil {
			return nil, err
		}
		fields[fieldComments] = comments
	}

	return encodeValue(fields)
}

// UnmarshalJSON decodes a comment object
func (c *Comment) UnmarshalJSON(data []byte) error {
	fields, err := decodeObject(data)
	if err != nil {
		return fmt.Errorf("invalid comment: %w", err)
	}

	out := Comment{}
	if out.Content, out.content, err = popString(fields, fieldContent); err != nil {
		return fmt.Errorf("invalid comment: %w", err)
	}
	if len(fields) > 0 {
		out.Extra = fields
	}

	*c = out
	return nil
}

// MarshalJSON encodes the comment with its extra fields
func (c Comment) MarshalJSON() ([]byte, error) {
	fields := make(map[string]json.RawMessage, len(c.Extra)+1)
	for k, v := range c.Extra {
		fields[k] = v
	}
	if err := putContent(fields, c.Content, c.content); err != nil {
		return nil, err
	}
	return encodeValue(fields)
}

// ReadCorpusFile reads a JSON array of tweets
func ReadCorpusFile(filename string) ([]Tweet, error) {
	content, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read corpus file: %w", err)
	}

	var tweets []Tweet
	if err := json.Unmarshal(content, &tweets); err != nil {
		return nil, fmt.Errorf("failed to parse corpus file %s: %w", filename, err)
	}

	return tweets, nil
}

// WritePartFile writes tweets as an indented JSON array
func WritePartFile(filename string, tweets []Tweet) error {
	if dir := filepath.Dir(filename); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	if tweets == nil {
		tweets = []Tweet{}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(tweets); err != nil {
		return fmt.Errorf("failed to encode part file %s: %w", filename, err)
	}

	if err := os.WriteFile(filename, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write part file: %w", err)
	}

	return nil
}

func decodeObject(data []byte) (map[string]json.RawMessage, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, err
	}
	if fields == nil {
		fields = map[string]json.RawMessage{}
	}
	return fields, nil
}

// popString removes key from fields, a missing or null value is empty
func popString(fields map[string]json.RawMessage, key string) (string, presence, error) {
	raw, ok := fields[key]
	if !ok {
		return "", contentAbsent, nil
	}
	delete(fields, key)
	if string(raw) == "null" {
		return "", contentNull, nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", contentAbsent, fmt.Errorf("field %s: %w", strconv.Quote(key), err)
	}
	return s, contentPresent, nil
}

// putContent writes the content key unless the record never had one
func putContent(fields map[string]json.RawMessage, content string, p presence) error {
	switch {
	case content != "" || p == contentPresent:
		raw, err := encodeValue(content)
		if err != nil {
			return err
		}
		fields[fieldContent] = raw
	case p == contentNull:
		fields[fieldContent] = json.RawMessage("null")
	}
	return nil
}

// encodeValue marshals v without escaping HTML characters
func encodeValue(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
