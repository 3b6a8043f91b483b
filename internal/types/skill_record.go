// Package types provides type definitions for structured data used throughout the skill-builder system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// SkillRecord represents a single skill as returned by the Lightcast taxonomy.
// Identity is the opaque taxonomy ID; records are immutable once fetched.
type SkillRecord struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Type        *SkillType `json:"type,omitempty"`
	Description string     `json:"description,omitempty"`
	InfoURL     string     `json:"infoUrl,omitempty"`
}

// SkillType represents the taxonomy category a skill belongs to
type SkillType struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// TypeCount holds the number of skills in one taxonomy category
type TypeCount struct {
	Type  SkillType `json:"type"`
	Count int       `json:"count"`
}
