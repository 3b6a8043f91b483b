package server

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peopleprotocol/skill-builder/internal/transform"
	"github.com/peopleprotocol/skill-builder/internal/types"
)

const validRubricJSON = `{
	"name": "Python",
	"description": "General-purpose programming language",
	"lightcast_id": "KS125LS6N7WP4S6SFTCK",
	"levels": {
		"poor": ["Copies snippets without understanding them", "Cannot read a stack trace"],
		"basic": ["Writes small scripts with guidance", "Understands basic data structures"],
		"intermediate": ["Builds modules independently", "Writes unit tests"],
		"advanced": ["Designs package architecture", "Mentors others on idioms"],
		"exceptional": ["Contributes to the language ecosystem", "Sets org-wide standards"]
	}
}`

func TestTransform(t *testing.T) {
	completion := &fakeCompletion{replies: []string{validRubricJSON}}
	s := newTestServer(t, nil, completion)

	rec := doRequest(s, http.MethodPost, "/transform",
		`{"skill":{"id":"KS125LS6N7WP4S6SFTCK","name":"Python","description":"A programming language"}}`)

	require.Equal(t, http.StatusOK, rec.Code)
	var rubric types.TransformedSkill
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &rubric))
	assert.Equal(t, "Python", rubric.Name)
	assert.Len(t, rubric.Levels.Poor, 2)

	// The skill's identity must reach the prompt.
	require.Len(t, completion.prompts, 1)
	assert.Contains(t, completion.prompts[0], "Python")
	assert.Contains(t, completion.prompts[0], "KS125LS6N7WP4S6SFTCK")
}

func TestTransform_MissingName(t *testing.T) {
	s := newTestServer(t, nil, nil)

	rec := doRequest(s, http.MethodPost, "/transform", `{"skill":{"id":"K1"}}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestTransform_MalformedCompletionIsBadGateway(t *testing.T) {
	completion := &fakeCompletion{replies: []string{"Sorry, I cannot help with that."}}
	s := newTestServer(t, nil, completion)

	rec := doRequest(s, http.MethodPost, "/transform", `{"skill":{"id":"K1","name":"Python"}}`)

	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestTransformBatch_PartialFailureIsStillOK(t *testing.T) {
	completion := &fakeCompletion{replies: []string{validRubricJSON, "not json at all"}}
	s := newTestServer(t, nil, completion)

	rec := doRequest(s, http.MethodPost, "/transform/batch",
		`{"skills":[{"id":"K1","name":"Python"},{"id":"K2","name":"SQL"}]}`)

	require.Equal(t, http.StatusOK, rec.Code)
	var result transform.BatchResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, 1, result.Succeeded)
	assert.Equal(t, 1, result.Failed)
	require.Len(t, result.Items, 2)
	assert.NotNil(t, result.Items[0].Rubric)
	assert.NotEmpty(t, result.Items[1].Error)
}

func TestTransformBatch_EmptySkills(t *testing.T) {
	s := newTestServer(t, nil, nil)

	rec := doRequest(s, http.MethodPost, "/transform/batch", `{"skills":[]}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestTransformStream_EmitsItemAndCompleteEvents(t *testing.T) {
	completion := &fakeCompletion{replies: []string{validRubricJSON}}
	s := newTestServer(t, nil, completion)

	rec := doRequest(s, http.MethodPost, "/transform/stream",
		`{"skills":[{"id":"K1","name":"Python"}]}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/event-stream", rec.Header().Get("Content-Type"))

	body := rec.Body.String()
	assert.Contains(t, body, "event: item")
	assert.Contains(t, body, `"skill_name":"Python"`)
	assert.Contains(t, body, "event: complete")
	assert.Contains(t, body, `"succeeded":1`)
}
