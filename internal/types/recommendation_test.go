//nolint:revive // types is a standard Go package name pattern
package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecommendationResult_FollowUpOmitsSkillsFields(t *testing.T) {
	result := RecommendationResult{
		Type:     RecommendationFollowUp,
		Question: "Is this role more focused on infrastructure or product work?",
	}

	jsonBytes, err := json.Marshal(result)
	require.NoError(t, err)
	assert.Contains(t, string(jsonBytes), `"type":"follow_up"`)
	assert.NotContains(t, string(jsonBytes), `"skills"`)
	assert.NotContains(t, string(jsonBytes), `"keywords"`)
}

func TestRecommendationResult_SkillsBranch(t *testing.T) {
	result := RecommendationResult{
		Type:      RecommendationSkills,
		Skills:    []SkillRecord{{ID: "KS1", Name: "Go"}},
		Reasoning: "Backend-heavy role",
		Keywords:  []string{"go", "grpc", "postgres", "docker", "kubernetes", "terraform"},
	}

	jsonBytes, err := json.Marshal(result)
	require.NoError(t, err)
	assert.Contains(t, string(jsonBytes), `"type":"skills"`)

	var decoded RecommendationResult
	require.NoError(t, json.Unmarshal(jsonBytes, &decoded))
	assert.Len(t, decoded.Keywords, 6)
	assert.Equal(t, "Go", decoded.Skills[0].Name)
}
