package transform

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peopleprotocol/skill-builder/internal/llm"
	"github.com/peopleprotocol/skill-builder/internal/types"
)

// fakeClient replays canned completions in order.
type fakeClient struct {
	replies []string
	errs    []error
	calls   int
	prompts []string
}

func (f *fakeClient) Complete(_ context.Context, prompt string) (string, error) {
	i := f.calls
	f.calls++
	f.prompts = append(f.prompts, prompt)
	var err error
	if i < len(f.errs) {
		err = f.errs[i]
	}
	if err != nil {
		return "", err
	}
	if i < len(f.replies) {
		return f.replies[i], nil
	}
	return "", errors.New("no canned reply")
}

func (f *fakeClient) Model() string { return "fake" }
func (f *fakeClient) Close() error  { return nil }

const validRubric = `{
	"name": "Python",
	"description": "A general-purpose programming language",
	"lightcast_id": "KS125LS6N7WP4S6SFTCK",
	"levels": {
		"poor": ["Writes code that does not run", "Copies snippets without understanding them"],
		"basic": ["Writes small working scripts", "Reads tracebacks and fixes simple errors"],
		"intermediate": ["Builds modules independently", "Writes tests for own code"],
		"advanced": ["Designs package architecture", "Reviews others' code effectively", "Profiles and removes bottlenecks"],
		"exceptional": ["Contributes accepted changes to major open-source projects", "Sets language-level conventions adopted beyond the team"]
	}
}`

var pythonSkill = types.SkillRecord{
	ID:          "KS125LS6N7WP4S6SFTCK",
	Name:        "Python",
	Description: "A general-purpose programming language",
}

func TestSkill_ValidCompletion(t *testing.T) {
	client := &fakeClient{replies: []string{validRubric}}
	tr := New(client, true)

	rubric, err := tr.Skill(context.Background(), pythonSkill)
	require.NoError(t, err)
	assert.Equal(t, "Python", rubric.Name)
	assert.Equal(t, "KS125LS6N7WP4S6SFTCK", rubric.LightcastID)
	assert.Len(t, rubric.Levels.Advanced, 3)
}

func TestSkill_PromptCarriesSkillFields(t *testing.T) {
	client := &fakeClient{replies: []string{validRubric}}
	tr := New(client, false)

	_, err := tr.Skill(context.Background(), pythonSkill)
	require.NoError(t, err)
	require.Len(t, client.prompts, 1)
	assert.Contains(t, client.prompts[0], "Name: Python")
	assert.Contains(t, client.prompts[0], "Lightcast ID: KS125LS6N7WP4S6SFTCK")
	assert.NotContains(t, client.prompts[0], "{{.SkillName}}")
}

func TestSkill_MissingDescriptionSubstituted(t *testing.T) {
	client := &fakeClient{replies: []string{validRubric}}
	tr := New(client, false)

	_, err := tr.Skill(context.Background(), types.SkillRecord{ID: "K1", Name: "Python"})
	require.NoError(t, err)
	assert.Contains(t, client.prompts[0], "No description available")
}

func TestSkill_FencedCompletionRecovered(t *testing.T) {
	client := &fakeClient{replies: []string{"Here you go:\n```json\n" + validRubric + "\n```"}}
	tr := New(client, true)

	rubric, err := tr.Skill(context.Background(), pythonSkill)
	require.NoError(t, err)
	assert.Equal(t, "Python", rubric.Name)
}

func TestSkill_ProseOnlyCompletion(t *testing.T) {
	client := &fakeClient{replies: []string{"I cannot produce that rubric."}}
	tr := New(client, true)

	_, err := tr.Skill(context.Background(), pythonSkill)

	var malformed *llm.ErrMalformedCompletion
	assert.ErrorAs(t, err, &malformed)
}

func TestSkill_MissingLevelKey(t *testing.T) {
	client := &fakeClient{replies: []string{`{
		"name": "Python", "description": "d", "lightcast_id": "K1",
		"levels": {"poor": ["a","b"], "basic": ["a","b"], "intermediate": ["a","b"], "advanced": ["a","b"]}
	}`}}
	tr := New(client, false)

	_, err := tr.Skill(context.Background(), pythonSkill)

	var invalid *ErrInvalidRubricShape
	require.ErrorAs(t, err, &invalid)
	assert.Contains(t, invalid.Reason, "five proficiency keys")
}

func TestSkill_NonStringStatements(t *testing.T) {
	client := &fakeClient{replies: []string{`{
		"name": "Python", "description": "d", "lightcast_id": "K1",
		"levels": {"poor": [1,2], "basic": ["a","b"], "intermediate": ["a","b"], "advanced": ["a","b"], "exceptional": ["a","b"]}
	}`}}
	tr := New(client, false)

	_, err := tr.Skill(context.Background(), pythonSkill)

	var invalid *ErrInvalidRubricShape
	require.ErrorAs(t, err, &invalid)
	assert.Contains(t, invalid.Reason, "poor")
}

func TestSkill_NullLevelRejectedEvenWhenAdvisory(t *testing.T) {
	client := &fakeClient{replies: []string{`{
		"name": "Python", "description": "d", "lightcast_id": "K1",
		"levels": {"poor": null, "basic": ["a","b"], "intermediate": ["a","b"], "advanced": ["a","b"], "exceptional": ["a","b"]}
	}`}}
	tr := New(client, false)

	_, err := tr.Skill(context.Background(), pythonSkill)

	var invalid *ErrInvalidRubricShape
	require.ErrorAs(t, err, &invalid)
	assert.Contains(t, invalid.Reason, "poor")
}

const sparseRubric = `{
	"name": "Python", "description": "d", "lightcast_id": "K1",
	"levels": {"poor": ["only one"], "basic": ["a","b"], "intermediate": ["a","b"], "advanced": ["a","b"], "exceptional": ["a","b"]}
}`

func TestSkill_SparseLevelRejectedWhenEnforced(t *testing.T) {
	client := &fakeClient{replies: []string{sparseRubric}}
	tr := New(client, true)

	_, err := tr.Skill(context.Background(), pythonSkill)

	var sparse *ErrSparseLevels
	require.ErrorAs(t, err, &sparse)
	assert.Equal(t, []string{"poor"}, sparse.Levels)
}

func TestSkill_SparseLevelAllowedWhenAdvisory(t *testing.T) {
	client := &fakeClient{replies: []string{sparseRubric}}
	tr := New(client, false)

	rubric, err := tr.Skill(context.Background(), pythonSkill)
	require.NoError(t, err)
	assert.Len(t, rubric.Levels.Poor, 1)
}

func TestBatch_ContinuesPastFailures(t *testing.T) {
	client := &fakeClient{
		replies: []string{validRubric, "", validRubric},
		errs:    []error{nil, &llm.ErrCompletionUnavailable{Status: 503, Body: "down"}, nil},
	}
	tr := New(client, true)

	skills := []types.SkillRecord{
		{ID: "K1", Name: "Python"},
		{ID: "K2", Name: "SQL"},
		{ID: "K3", Name: "Go"},
	}

	var seen int
	result := tr.Batch(context.Background(), skills, func(_, total int, _ ItemResult) {
		seen++
		assert.Equal(t, 3, total)
	})

	assert.Equal(t, 3, seen)
	assert.Equal(t, 2, result.Succeeded)
	assert.Equal(t, 1, result.Failed)
	require.Len(t, result.Items, 3)
	assert.Empty(t, result.Items[0].Error)
	assert.Contains(t, result.Items[1].Error, "503")
	assert.Len(t, result.Rubrics(), 2)
}
