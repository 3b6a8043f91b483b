// Package llm provides the completion-backend client abstraction and the
// JSON recovery pipeline shared by every LLM-driven use case.
package llm

import "fmt"

// SnippetLimit bounds how much raw completion text an error may carry.
// Diagnostics need a prefix, never the full text.
const SnippetLimit = 200

// Snippet returns a bounded prefix of raw text for diagnostics.
func Snippet(raw string) string {
	if len(raw) <= SnippetLimit {
		return raw
	}
	return raw[:SnippetLimit]
}

// ErrMalformedCompletion indicates no JSON could be extracted from the
// completion text by any recovery strategy.
type ErrMalformedCompletion struct {
	Snippet string
}

func (e *ErrMalformedCompletion) Error() string {
	return fmt.Sprintf("no JSON object found in completion text: %q", e.Snippet)
}

// ErrCompletionUnavailable indicates the completion backend returned a
// non-2xx status.
type ErrCompletionUnavailable struct {
	Status int
	Body   string
}

func (e *ErrCompletionUnavailable) Error() string {
	return fmt.Sprintf("completion backend returned status %d: %s", e.Status, e.Body)
}

// ErrInvalidCompletionEnvelope indicates the backend replied with 2xx but
// the response envelope carried no recognizable text field.
type ErrInvalidCompletionEnvelope struct {
	Snippet string
}

func (e *ErrInvalidCompletionEnvelope) Error() string {
	return fmt.Sprintf("completion response envelope has no message content: %q", e.Snippet)
}
