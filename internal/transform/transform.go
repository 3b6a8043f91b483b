package transform

import (
	"context"
	"encoding/json"

	"github.com/sirupsen/logrus"

	"github.com/peopleprotocol/skill-builder/internal/llm"
	"github.com/peopleprotocol/skill-builder/internal/prompts"
	"github.com/peopleprotocol/skill-builder/internal/types"
)

// minStatementsPerLevel is the floor the transformation prompt demands from
// the model. The original framework treats a level with fewer than two
// statements as unusable for scoring.
const minStatementsPerLevel = 2

// noDescription substitutes for skills the taxonomy ships without one.
const noDescription = "No description available"

// Transformer runs the skill-to-rubric use case.
type Transformer struct {
	client          llm.Client
	enforceMinimums bool
	log             *logrus.Entry
}

// New creates a Transformer. When enforceMinimums is set, rubrics where any
// level has fewer than two statements are rejected with ErrSparseLevels
// instead of being passed through.
func New(client llm.Client, enforceMinimums bool) *Transformer {
	return &Transformer{
		client:          client,
		enforceMinimums: enforceMinimums,
		log:             logrus.WithField("component", "transform"),
	}
}

// Skill transforms one taxonomy skill into a People Protocol rubric.
func (t *Transformer) Skill(ctx context.Context, skill types.SkillRecord) (*types.TransformedSkill, error) {
	description := skill.Description
	if description == "" {
		description = noDescription
	}

	prompt := prompts.Format(prompts.MustGet(prompts.TransformSkill), map[string]string{
		"SkillName":        skill.Name,
		"SkillDescription": description,
		"SkillID":          skill.ID,
	})

	raw, err := t.client.Complete(ctx, prompt)
	if err != nil {
		return nil, err
	}

	result, err := t.validate(raw)
	if err != nil {
		t.log.WithFields(logrus.Fields{
			"skill":   skill.Name,
			"snippet": llm.Snippet(raw),
		}).Warn("rubric validation failed")
		return nil, err
	}
	return result, nil
}

// rubricPayload is the lenient decode target: levels stay raw so the key set
// can be checked exactly before each array is decoded.
type rubricPayload struct {
	Name        string                     `json:"name"`
	Description string                     `json:"description"`
	LightcastID string                     `json:"lightcast_id"`
	Levels      map[string]json.RawMessage `json:"levels"`
}

// validate recovers JSON from the completion text and checks the rubric
// contract: the three identity fields, exactly the five level keys, and
// string statements throughout. Statement counts are only checked when
// enforcement is on; the prompt's cardinality contract is otherwise advisory.
func (t *Transformer) validate(raw string) (*types.TransformedSkill, error) {
	var payload rubricPayload
	if err := llm.DecodeInto(raw, &payload); err != nil {
		return nil, err
	}

	switch {
	case payload.Name == "":
		return nil, &ErrInvalidRubricShape{Reason: "missing name"}
	case payload.Description == "":
		return nil, &ErrInvalidRubricShape{Reason: "missing description"}
	case payload.LightcastID == "":
		return nil, &ErrInvalidRubricShape{Reason: "missing lightcast_id"}
	case payload.Levels == nil:
		return nil, &ErrInvalidRubricShape{Reason: "missing levels object"}
	case len(payload.Levels) != len(types.LevelNames):
		return nil, &ErrInvalidRubricShape{Reason: "levels must contain exactly the five proficiency keys"}
	}

	result := &types.TransformedSkill{
		Name:        payload.Name,
		Description: payload.Description,
		LightcastID: payload.LightcastID,
	}

	var sparse []string
	for _, level := range types.LevelNames {
		rawStatements, ok := payload.Levels[level]
		if !ok {
			return nil, &ErrInvalidRubricShape{Reason: "missing level " + level}
		}
		var statements []string
		// Unmarshal accepts an explicit null as a nil slice, so a nil check
		// is needed to keep non-arrays out of the rubric.
		if err := json.Unmarshal(rawStatements, &statements); err != nil || statements == nil {
			return nil, &ErrInvalidRubricShape{Reason: "level " + level + " is not an array of strings"}
		}
		if len(statements) < minStatementsPerLevel {
			sparse = append(sparse, level)
		}
		switch level {
		case types.LevelPoor:
			result.Levels.Poor = statements
		case types.LevelBasic:
			result.Levels.Basic = statements
		case types.LevelIntermediate:
			result.Levels.Intermediate = statements
		case types.LevelAdvanced:
			result.Levels.Advanced = statements
		case types.LevelExceptional:
			result.Levels.Exceptional = statements
		}
	}

	if t.enforceMinimums && len(sparse) > 0 {
		return nil, &ErrSparseLevels{Levels: sparse}
	}

	return result, nil
}
