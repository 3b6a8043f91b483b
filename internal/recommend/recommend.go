// Package recommend orchestrates role-based skill recommendation: a
// stateless conversational loop with the completion backend followed by
// keyword searches against the taxonomy and near-duplicate filtering.
package recommend

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/peopleprotocol/skill-builder/internal/llm"
	"github.com/peopleprotocol/skill-builder/internal/prompts"
	"github.com/peopleprotocol/skill-builder/internal/similarity"
	"github.com/peopleprotocol/skill-builder/internal/types"
)

const (
	// keywordCount is the exact number of keywords the prompt demands.
	keywordCount = 6
	// targetSkills is how many taxonomy records a resolved recommendation carries.
	targetSkills = 6
	// perKeywordLimit bounds each taxonomy search.
	perKeywordLimit = 10
)

// ErrInvalidRecommendationShape indicates the completion JSON did not match
// either branch of the recommendation contract.
type ErrInvalidRecommendationShape struct {
	Reason string
}

func (e *ErrInvalidRecommendationShape) Error() string {
	return fmt.Sprintf("completion does not match recommendation shape: %s", e.Reason)
}

// Searcher is the slice of the taxonomy gateway this package needs.
type Searcher interface {
	Search(ctx context.Context, query string, limit int) ([]types.SkillRecord, error)
}

// Orchestrator runs the recommendation use case. It holds no conversation
// state: every call receives the full prior transcript.
type Orchestrator struct {
	client   llm.Client
	taxonomy Searcher
	log      *logrus.Entry
}

// New creates an Orchestrator.
func New(client llm.Client, taxonomy Searcher) *Orchestrator {
	return &Orchestrator{
		client:   client,
		taxonomy: taxonomy,
		log:      logrus.WithField("component", "recommend"),
	}
}

// recommendationPayload keeps keywords raw so element type problems stay
// classified as shape errors instead of surfacing as a failed decode.
type recommendationPayload struct {
	Type      string            `json:"type"`
	Question  string            `json:"question"`
	Keywords  []json.RawMessage `json:"keywords"`
	Reasoning string            `json:"reasoning"`
}

// Recommend is a pure function of (roleTitle, transcript): it either returns
// a follow-up question, growing the conversation by one exchange on the
// caller's side, or resolves to a filtered skill set.
func (o *Orchestrator) Recommend(ctx context.Context, roleTitle string, history []types.ConversationTurn) (*types.RecommendationResult, error) {
	prompt := prompts.Format(prompts.MustGet(prompts.RecommendSkills), map[string]string{
		"RoleTitle":    roleTitle,
		"Conversation": renderTranscript(history),
	})

	raw, err := o.client.Complete(ctx, prompt)
	if err != nil {
		return nil, err
	}

	var payload recommendationPayload
	if err := llm.DecodeInto(raw, &payload); err != nil {
		return nil, err
	}

	switch payload.Type {
	case string(types.RecommendationFollowUp):
		if strings.TrimSpace(payload.Question) == "" {
			return nil, &ErrInvalidRecommendationShape{Reason: "follow_up without a question"}
		}
		return &types.RecommendationResult{
			Type:     types.RecommendationFollowUp,
			Question: payload.Question,
		}, nil

	case string(types.RecommendationSkills):
		if len(payload.Keywords) != keywordCount {
			return nil, &ErrInvalidRecommendationShape{
				Reason: fmt.Sprintf("expected exactly %d keywords, got %d", keywordCount, len(payload.Keywords)),
			}
		}
		keywords := make([]string, 0, keywordCount)
		for _, rawKeyword := range payload.Keywords {
			var keyword string
			if err := json.Unmarshal(rawKeyword, &keyword); err != nil {
				return nil, &ErrInvalidRecommendationShape{Reason: "keywords must be strings"}
			}
			keywords = append(keywords, keyword)
		}
		skills, err := o.resolveSkills(ctx, keywords)
		if err != nil {
			return nil, err
		}
		return &types.RecommendationResult{
			Type:      types.RecommendationSkills,
			Skills:    skills,
			Reasoning: payload.Reasoning,
			Keywords:  keywords,
		}, nil

	default:
		return nil, &ErrInvalidRecommendationShape{Reason: fmt.Sprintf("unknown discriminator %q", payload.Type)}
	}
}

// resolveSkills turns keywords into concrete taxonomy records: one search
// per keyword fanned out concurrently, exact-id dedupe, similarity filter,
// then a broader single-word top-up round when fewer than targetSkills
// survive. The final set may legitimately be smaller than targetSkills.
func (o *Orchestrator) resolveSkills(ctx context.Context, keywords []string) ([]types.SkillRecord, error) {
	candidates := o.fanOutSearches(ctx, keywords)

	accepted := similarity.Filter(similarity.DedupeByID(candidates))
	if len(accepted) > targetSkills {
		accepted = accepted[:targetSkills]
	}
	if len(accepted) >= targetSkills {
		return accepted, nil
	}

	// Top-up round: broader single-word searches in original keyword order.
	broader := make([]string, 0, len(keywords))
	for _, kw := range keywords {
		if fields := strings.Fields(kw); len(fields) > 0 {
			broader = append(broader, fields[0])
		}
	}

	seen := make(map[string]bool, len(accepted))
	for _, rec := range accepted {
		seen[rec.ID] = true
	}

	for _, results := range o.fanOutGrouped(ctx, broader) {
		for _, rec := range results {
			if len(accepted) >= targetSkills {
				return accepted, nil
			}
			if seen[rec.ID] {
				continue
			}
			seen[rec.ID] = true
			topped := similarity.FilterAgainst(accepted, []types.SkillRecord{rec})
			accepted = topped
		}
	}

	return accepted, nil
}

// fanOutSearches runs one search per keyword and concatenates the results in
// keyword order, so the first-seen ordering downstream is deterministic.
func (o *Orchestrator) fanOutSearches(ctx context.Context, keywords []string) []types.SkillRecord {
	grouped := o.fanOutGrouped(ctx, keywords)
	var all []types.SkillRecord
	for _, results := range grouped {
		all = append(all, results...)
	}
	return all
}

// fanOutGrouped issues the searches concurrently and returns per-keyword
// result slices in input order. Individual failures become empty results
// rather than aborting the batch.
func (o *Orchestrator) fanOutGrouped(ctx context.Context, queries []string) [][]types.SkillRecord {
	grouped := make([][]types.SkillRecord, len(queries))

	var g errgroup.Group
	for i, query := range queries {
		g.Go(func() error {
			results, err := o.taxonomy.Search(ctx, query, perKeywordLimit)
			if err != nil {
				o.log.WithField("query", query).WithError(err).Warn("keyword search failed")
				return nil
			}
			grouped[i] = results
			return nil
		})
	}
	g.Wait() //nolint:errcheck // workers never return errors

	return grouped
}

// renderTranscript flattens the prior conversation for the prompt. An empty
// transcript renders as an explicit marker so the model does not invent one.
func renderTranscript(history []types.ConversationTurn) string {
	if len(history) == 0 {
		return "(no prior conversation)"
	}
	var sb strings.Builder
	for _, turn := range history {
		sb.WriteString(turn.Role)
		sb.WriteString(": ")
		sb.WriteString(turn.Content)
		sb.WriteString("\n")
	}
	return strings.TrimRight(sb.String(), "\n")
}
