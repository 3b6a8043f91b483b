//nolint:revive // types is a standard Go package name pattern
package types

// LevelPoor through LevelExceptional name the five People Protocol proficiency levels.
const (
	LevelPoor         = "poor"
	LevelBasic        = "basic"
	LevelIntermediate = "intermediate"
	LevelAdvanced     = "advanced"
	LevelExceptional  = "exceptional"
)

// LevelNames lists the five proficiency levels in ascending order.
var LevelNames = []string{LevelPoor, LevelBasic, LevelIntermediate, LevelAdvanced, LevelExceptional}

// RubricLevels holds the observable behavioral statements for each proficiency level.
// Statements build cumulatively: an employee at Advanced has cleared every
// statement at Basic and Intermediate.
type RubricLevels struct {
	Poor         []string `json:"poor"`
	Basic        []string `json:"basic"`
	Intermediate []string `json:"intermediate"`
	Advanced     []string `json:"advanced"`
	Exceptional  []string `json:"exceptional"`
}

// Get returns the statements for a named level. Unknown names return nil.
func (r *RubricLevels) Get(level string) []string {
	switch level {
	case LevelPoor:
		return r.Poor
	case LevelBasic:
		return r.Basic
	case LevelIntermediate:
		return r.Intermediate
	case LevelAdvanced:
		return r.Advanced
	case LevelExceptional:
		return r.Exceptional
	default:
		return nil
	}
}

// TransformedSkill is the five-level behavioral rubric produced for one skill.
// Created once per transform call and never mutated afterwards.
type TransformedSkill struct {
	Name        string       `json:"name"`
	Description string       `json:"description"`
	LightcastID string       `json:"lightcast_id"`
	Levels      RubricLevels `json:"levels"`
}
