package llm

import (
	"encoding/json"
	"strings"
)

const (
	jsonFence = "```json"
	anyFence  = "```"
)

// ExtractJSON recovers a JSON object from raw completion text. LLMs often
// wrap JSON in markdown fences or surround it with prose even when told not
// to. Strategies, in order:
//  1. direct parse of the trimmed text
//  2. the substring between the first ```json fence and the next fence
//  3. the substring between the first generic fence pair
//
// Valid JSON is returned unchanged. When every strategy fails the error is
// always *ErrMalformedCompletion carrying a bounded snippet of the input.
func ExtractJSON(raw string) (json.RawMessage, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed != "" && json.Valid([]byte(trimmed)) {
		return json.RawMessage(trimmed), nil
	}

	if candidate, ok := fencedBlock(trimmed, jsonFence); ok {
		if json.Valid([]byte(candidate)) {
			return json.RawMessage(candidate), nil
		}
		return nil, &ErrMalformedCompletion{Snippet: Snippet(raw)}
	}

	if candidate, ok := fencedBlock(trimmed, anyFence); ok {
		if json.Valid([]byte(candidate)) {
			return json.RawMessage(candidate), nil
		}
	}

	return nil, &ErrMalformedCompletion{Snippet: Snippet(raw)}
}

// fencedBlock returns the trimmed substring between the first occurrence of
// open and the next closing fence.
func fencedBlock(text, open string) (string, bool) {
	start := strings.Index(text, open)
	if start < 0 {
		return "", false
	}
	rest := text[start+len(open):]
	end := strings.Index(rest, anyFence)
	if end < 0 {
		return "", false
	}
	return strings.TrimSpace(rest[:end]), true
}

// DecodeInto extracts JSON from raw completion text and unmarshals it into
// dst. Decode failures after successful extraction are reported as malformed
// completions too: the backend produced JSON of the wrong kind.
func DecodeInto(raw string, dst any) error {
	payload, err := ExtractJSON(raw)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(payload, dst); err != nil {
		return &ErrMalformedCompletion{Snippet: Snippet(raw)}
	}
	return nil
}
