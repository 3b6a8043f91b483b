//nolint:revive // types is a standard Go package name pattern
package types

// RecommendationType discriminates the two outcomes of a recommendation call.
type RecommendationType string

// Recommendation outcome discriminators
const (
	RecommendationFollowUp RecommendationType = "follow_up"
	RecommendationSkills   RecommendationType = "skills"
)

// RecommendationResult is the tagged union returned by the recommendation
// orchestration: either a follow-up question to the user or a resolved skill
// set. Exactly one branch is populated, selected by Type.
type RecommendationResult struct {
	Type RecommendationType `json:"type"`

	// FollowUp branch
	Question string `json:"question,omitempty"`

	// Skills branch
	Skills    []SkillRecord `json:"skills,omitempty"`
	Reasoning string        `json:"reasoning,omitempty"`
	Keywords  []string      `json:"keywords,omitempty"`
}

// ConversationTurn is one prior exchange in the recommendation loop.
// The full transcript travels with every call; there is no server-side session.
type ConversationTurn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}
