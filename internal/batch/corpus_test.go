package batch

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestReadCorpusFile(t *testing.T) {
	tests := []struct {
		name         string
		fileContent  string
		wantTweets   int
		wantComments []int
		wantErr      bool
	}{
		{
			name:        "empty array",
			fileContent: `[]`,
			wantTweets:  0,
		},
		{
			name: "tweets with comments",
			fileContent: `[
				{"tweet_id": "1", "content": "hello", "comments": [{"content": "a"}, {"content": "b"}]},
				{"tweet_id": 2, "content": "नमस्ते", "comments": []}
			]`,
			wantTweets:   2,
			wantComments: []int{2, 0},
		},
		{
			name:         "missing comments and content",
			fileContent:  `[{"tweet_id": "3"}]`,
			wantTweets:   1,
			wantComments: []int{0},
		},
		{
			name:        "not an array",
			fileContent: `{"tweet_id": "1"}`,
			wantErr:     true,
		},
		{
			name:        "invalid json",
			fileContent: `[{"tweet_id": }]`,
			wantErr:     true,
		},
		{
			name:        "content is not a string",
			fileContent: `[{"tweet_id": "1", "content": 42}]`,
			wantErr:     true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "corpus.json")
			if err := os.WriteFile(path, []byte(tt.fileContent), 0644); err != nil {
				t.Fatalf("Failed to create test file: %v", err)
			}

			tweets, err := ReadCorpusFile(path)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ReadCorpusFile() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if len(tweets) != tt.wantTweets {
				t.Fatalf("Got %d tweets, want %d", len(tweets), tt.wantTweets)
			}
			for i, n := range tt.wantComments {
				if len(tweets[i].Comments) != n {
					t.Errorf("Tweet %d has %d comments, want %d", i, len(tweets[i].Comments), n)
				}
			}
		})
	}
}

func TestReadCorpusFile_NotFound(t *testing.T) {
	_, err := ReadCorpusFile(filepath.Join(t.TempDir(), "missing.json"))
	if err == nil {
		t.Error("Expected error for missing file")
	}
}

func TestTweet_RoundTripKeepsExtraFields(t *testing.T) {
	input := `{"tweet_id": 1234567890123456789, "content": "hi", "lang_hint": "hi", "likes": 7,
		"comments": [{"content": "wah", "author": {"name": "x"}}]}`

	var tweet Tweet
	if err := json.Unmarshal([]byte(input), &tweet); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}

	if tweet.IDString() != "1234567890123456789" {
		t.Errorf("IDString() = %q", tweet.IDString())
	}
	if tweet.Content != "hi" {
		t.Errorf("Content = %q", tweet.Content)
	}
	if _, ok := tweet.Extra["likes"]; !ok {
		t.Error("Expected extra field likes to be kept")
	}

	tweet.Content = "hello"
	tweet.Comments[0].Content = "wow"

	out, err := json.Marshal(tweet)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(out, &decoded); err != nil {
		t.Fatalf("Output is not valid JSON: %v", err)
	}
	if decoded["content"] != "hello" || decoded["lang_hint"] != "hi" {
		t.Errorf("Unexpected fields: %v", decoded)
	}
	if !strings.Contains(string(out), `"tweet_id":1234567890123456789`) {
		t.Errorf("Numeric tweet id lost precision: %s", out)
	}
	comments := decoded["comments"].([]any)
	comment := comments[0].(map[string]any)
	if comment["content"] != "wow" {
		t.Errorf("Comment content = %v", comment["content"])
	}
	if _, ok := comment["author"]; !ok {
		t.Error("Expected comment author to be kept")
	}
}

func TestTweet_StringID(t *testing.T) {
	var tweet Tweet
	if err := json.Unmarshal([]byte(`{"tweet_id": "abc", "content": null}`), &tweet); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if tweet.IDString() != "abc" {
		t.Errorf("IDString() = %q, want abc", tweet.IDString())
	}
	if tweet.Content != "" {
		t.Errorf("Null content should decode as empty, got %q", tweet.Content)
	}
	if tweet.Comments != nil {
		t.Error("Missing comments should stay nil")
	}

	out, err := json.Marshal(tweet)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if strings.Contains(string(out), "comments") {
		t.Errorf("Comments should not be added: %s", out)
	}

	if (Tweet{}).IDString() != "" {
		t.Error("Empty id should give empty string")
	}
}

func TestWritePartFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out", "nested", "translated_part_1.json")

	tweets := []Tweet{
		{
			ID:       json.RawMessage(`"1"`),
			Content:  "मुझे <b>चाय</b> & coffee",
			Comments: []Comment{{Content: "ঠিক আছে"}},
		},
	}

	if err := WritePartFile(path, tweets); err != nil {
		t.Fatalf("WritePartFile() error = %v", err)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read part file: %v", err)
	}
	text := string(content)

	if !strings.Contains(text, "मुझे <b>चाय</b> & coffee") {
		t.Errorf("Expected literal non-ASCII and HTML characters, got:\n%s", text)
	}
	if !strings.Contains(text, "ঠিক আছে") {
		t.Errorf("Expected literal Bengali comment, got:\n%s", text)
	}
	if !strings.Contains(text, "\n    {\n        \"comments\"") {
		t.Errorf("Expected 4 space indentation, got:\n%s", text)
	}

	roundTrip, err := ReadCorpusFile(path)
	if err != nil {
		t.Fatalf("Failed to read back part file: %v", err)
	}
	if len(roundTrip) != 1 || roundTrip[0].Content != tweets[0].Content {
		t.Errorf("Round trip mismatch: %+v", roundTrip)
	}
}

func TestWritePartFile_Empty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.json")
	if err := WritePartFile(path, nil); err != nil {
		t.Fatalf("WritePartFile() error = %v", err)
	}
	content, _ := os.ReadFile(path)
	if strings.TrimSpace(string(content)) != "[]" {
		t.Errorf("Expected empty array, got %q", content)
	}
}

func TestWritePartFile_Unwritable(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	if err := os.WriteFile(blocker, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	// A regular file cannot be used as a parent directory
	if err := WritePartFile(filepath.Join(blocker, "part.json"), nil); err == nil {
		t.Error("Expected error when parent is a file")
	}
}

func TestTweet_MissingContentStaysMissing(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
		avoid []string
	}{
		{
			name:  "no content keys",
			input: `{"tweet_id": "1", "comments": [{"author": "a"}]}`,
			avoid: []string{`"content"`},
		},
		{
			name:  "null content kept as null",
			input: `{"tweet_id": "2", "content": null, "comments": [{"content": null}]}`,
			want:  []string{`"content":null,"tweet_id"`, `[{"content":null}]`},
		},
		{
			name:  "empty content kept as empty string",
			input: `{"tweet_id": "3", "content": "", "comments": [{"content": ""}]}`,
			want:  []string{`"content":"","tweet_id"`, `[{"content":""}]`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var tweet Tweet
			if err := json.Unmarshal([]byte(tt.input), &tweet); err != nil {
				t.Fatalf("Unmarshal failed: %v", err)
			}

			out, err := json.Marshal(tweet)
			if err != nil {
				t.Fatalf("Marshal failed: %v", err)
			}
			for _, w := range tt.want {
				if !strings.Contains(string(out), w) {
					t.Errorf("Output %s does not contain %s", out, w)
				}
			}
			for _, a := range tt.avoid {
				if strings.Contains(string(out), a) {
					t.Errorf("Output %s should not contain %s", out, a)
				}
			}
		})
	}
}

func TestTweet_ContentSetOnNewRecord(t *testing.T) {
	out, err := json.Marshal(Tweet{Content: "fresh", Comments: []Comment{{Content: "reply"}}})
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if string(out) != `{"comments":[{"content":"reply"}],"content":"fresh"}` {
		t.Errorf("Unexpected output: %s", out)
	}
}
