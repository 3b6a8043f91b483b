package transform

import (
	"context"

	"github.com/peopleprotocol/skill-builder/internal/types"
)

// ItemResult records the outcome for one skill in a batch.
type ItemResult struct {
	SkillID   string                  `json:"skill_id"`
	SkillName string                  `json:"skill_name"`
	Rubric    *types.TransformedSkill `json:"rubric,omitempty"`
	Error     string                  `json:"error,omitempty"`
}

// BatchResult aggregates a whole batch run.
type BatchResult struct {
	Items     []ItemResult `json:"items"`
	Succeeded int          `json:"succeeded"`
	Failed    int          `json:"failed"`
}

// Rubrics returns only the successfully transformed skills, in batch order.
func (b *BatchResult) Rubrics() []types.TransformedSkill {
	rubrics := make([]types.TransformedSkill, 0, b.Succeeded)
	for _, item := range b.Items {
		if item.Rubric != nil {
			rubrics = append(rubrics, *item.Rubric)
		}
	}
	return rubrics
}

// ProgressFunc observes each completed item; used by streaming handlers and
// the CLI. May be nil.
type ProgressFunc func(index, total int, item ItemResult)

// Batch transforms skills sequentially. One skill's failure is recorded and
// never halts the remaining skills.
func (t *Transformer) Batch(ctx context.Context, skills []types.SkillRecord, progress ProgressFunc) *BatchResult {
	result := &BatchResult{Items: make([]ItemResult, 0, len(skills))}

	for i, skill := range skills {
		item := ItemResult{SkillID: skill.ID, SkillName: skill.Name}

		rubric, err := t.Skill(ctx, skill)
		if err != nil {
			item.Error = err.Error()
			result.Failed++
			t.log.WithField("skill", skill.Name).WithError(err).Warn("skill transform failed")
		} else {
			item.Rubric = rubric
			result.Succeeded++
		}

		result.Items = append(result.Items, item)
		if progress != nil {
			progress(i, len(skills), item)
		}
	}

	return result
}
