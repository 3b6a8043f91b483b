// Package roles generates the set of roles a company of a given size
// typically needs, validating the completion into RoleSpec values.
package roles

import (
	"context"
	"encoding/json"
	"math"

	"github.com/sirupsen/logrus"

	"github.com/peopleprotocol/skill-builder/internal/llm"
	"github.com/peopleprotocol/skill-builder/internal/prompts"
	"github.com/peopleprotocol/skill-builder/internal/types"
)

// ErrMissingRoles indicates the completion carried no roles array at all.
type ErrMissingRoles struct{}

func (e *ErrMissingRoles) Error() string {
	return "completion carries no roles array"
}

// ErrNoValidRoles indicates a roles array was present but every element was
// dropped during validation.
type ErrNoValidRoles struct{}

func (e *ErrNoValidRoles) Error() string {
	return "no valid roles in completion: every element was missing a title or a numeric count"
}

// Generator runs the company-size-to-roles use case.
type Generator struct {
	client llm.Client
	log    *logrus.Entry
}

// New creates a Generator.
func New(client llm.Client) *Generator {
	return &Generator{
		client: client,
		log:    logrus.WithField("component", "roles"),
	}
}

type rolesPayload struct {
	Roles []json.RawMessage `json:"roles"`
}

type roleElement struct {
	Title       string   `json:"title"`
	Count       *float64 `json:"count"`
	Description string   `json:"description"`
}

// Generate asks the completion backend for a role breakdown. Elements
// missing a non-empty title or a numeric count are silently dropped rather
// than failing the batch; counts are floored and clamped to a minimum of 1.
func (g *Generator) Generate(ctx context.Context, companySize string) ([]types.RoleSpec, error) {
	prompt := prompts.Format(prompts.MustGet(prompts.GenerateRoles), map[string]string{
		"CompanySize": companySize,
	})

	raw, err := g.client.Complete(ctx, prompt)
	if err != nil {
		return nil, err
	}

	var payload rolesPayload
	if err := llm.DecodeInto(raw, &payload); err != nil {
		return nil, err
	}
	if payload.Roles == nil {
		g.log.WithField("snippet", llm.Snippet(raw)).Warn("completion has no roles array")
		return nil, &ErrMissingRoles{}
	}

	specs := make([]types.RoleSpec, 0, len(payload.Roles))
	for _, rawRole := range payload.Roles {
		var elem roleElement
		if err := json.Unmarshal(rawRole, &elem); err != nil {
			continue
		}
		if elem.Title == "" || elem.Count == nil {
			continue
		}
		count := int(math.Floor(*elem.Count))
		if count < 1 {
			count = 1
		}
		specs = append(specs, types.RoleSpec{
			Title:       elem.Title,
			Count:       count,
			Description: elem.Description,
		})
	}

	if len(specs) == 0 {
		return nil, &ErrNoValidRoles{}
	}
	return specs, nil
}
