//nolint:revive // types is a standard Go package name pattern
package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransformedSkill_JSONMarshaling(t *testing.T) {
	skill := TransformedSkill{
		Name:        "Critical Thinking",
		Description: "Evaluating information objectively to reach sound conclusions",
		LightcastID: "KS1226Y6LTCQJDGV6WPW",
		Levels: RubricLevels{
			Poor:         []string{"Accepts claims without verification", "Repeats errors after they are pointed out"},
			Basic:        []string{"Checks sources before citing them", "Asks clarifying questions"},
			Intermediate: []string{"Identifies errors in seemingly correct statements", "Weighs competing evidence"},
			Advanced:     []string{"Synthesizes conflicting inputs into a decision", "Coaches others on reasoning", "Builds decision frameworks"},
			Exceptional:  []string{"Recognized externally as an authority on analytical rigor", "Redefines how the field evaluates evidence"},
		},
	}

	jsonBytes, err := json.MarshalIndent(skill, "", "  ")
	require.NoError(t, err)
	assert.Contains(t, string(jsonBytes), `"lightcast_id": "KS1226Y6LTCQJDGV6WPW"`)
	assert.Contains(t, string(jsonBytes), `"poor"`)
	assert.Contains(t, string(jsonBytes), `"exceptional"`)
}

func TestTransformedSkill_JSONUnmarshaling(t *testing.T) {
	jsonInput := `{
		"name": "Python",
		"description": "A general-purpose programming language",
		"lightcast_id": "KS125LS6N7WP4S6SFTCK",
		"levels": {
			"poor": ["Writes code that does not run"],
			"basic": ["Writes small scripts"],
			"intermediate": ["Builds modules independently"],
			"advanced": ["Designs package architecture"],
			"exceptional": ["Contributes to the language itself"]
		}
	}`

	var skill TransformedSkill
	err := json.Unmarshal([]byte(jsonInput), &skill)
	require.NoError(t, err)
	assert.Equal(t, "Python", skill.Name)
	assert.Equal(t, "KS125LS6N7WP4S6SFTCK", skill.LightcastID)
	assert.Len(t, skill.Levels.Basic, 1)
	assert.Equal(t, "Contributes to the language itself", skill.Levels.Exceptional[0])
}

func TestRubricLevels_Get(t *testing.T) {
	levels := RubricLevels{
		Poor:     []string{"a", "b"},
		Advanced: []string{"c"},
	}

	assert.Equal(t, []string{"a", "b"}, levels.Get(LevelPoor))
	assert.Equal(t, []string{"c"}, levels.Get(LevelAdvanced))
	assert.Nil(t, levels.Get(LevelBasic))
	assert.Nil(t, levels.Get("no-such-level"))
}

func TestLevelNames_Order(t *testing.T) {
	assert.Equal(t, []string{"poor", "basic", "intermediate", "advanced", "exceptional"}, LevelNames)
}
