package server

import (
	"encoding/json"
	"net/http"

	"github.com/peopleprotocol/skill-builder/internal/transform"
	"github.com/peopleprotocol/skill-builder/internal/types"
)

// TransformRequest represents the request body for /transform
type TransformRequest struct {
	Skill types.SkillRecord `json:"skill"`
}

// TransformBatchRequest represents the request body for /transform/batch
// and /transform/stream
type TransformBatchRequest struct {
	Skills []types.SkillRecord `json:"skills"`
}

// handleTransform turns one taxonomy skill into a five-level rubric.
func (s *Server) handleTransform(w http.ResponseWriter, r *http.Request) {
	var req TransformRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if req.Skill.Name == "" {
		s.errorResponse(w, http.StatusBadRequest, "skill.name is required")
		return
	}

	rubric, err := s.transformer.Skill(r.Context(), req.Skill)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, rubric)
}

// handleTransformBatch transforms a list of skills, reporting per-skill
// outcomes. Partial failure is a normal result, not an error status.
func (s *Server) handleTransformBatch(w http.ResponseWriter, r *http.Request) {
	skills, ok := s.decodeBatchRequest(w, r)
	if !ok {
		return
	}

	result := s.transformer.Batch(r.Context(), skills, nil)
	s.jsonResponse(w, http.StatusOK, result)
}

// handleTransformStream is the SSE variant of the batch transform: one
// "item" event per skill as it completes, then a "complete" tally.
func (s *Server) handleTransformStream(w http.ResponseWriter, r *http.Request) {
	skills, ok := s.decodeBatchRequest(w, r)
	if !ok {
		return
	}

	sse, err := NewSSEWriter(w)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	result := s.transformer.Batch(r.Context(), skills, func(index, total int, item transform.ItemResult) {
		sse.WriteEvent("item", map[string]any{ //nolint:errcheck
			"index": index,
			"total": total,
			"item":  item,
		})
	})

	sse.WriteComplete(result.Succeeded, result.Failed)
}

func (s *Server) decodeBatchRequest(w http.ResponseWriter, r *http.Request) ([]types.SkillRecord, bool) {
	var req TransformBatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return nil, false
	}
	if len(req.Skills) == 0 {
		s.errorResponse(w, http.StatusBadRequest, "skills must not be empty")
		return nil, false
	}
	for _, skill := range req.Skills {
		if skill.Name == "" {
			s.errorResponse(w, http.StatusBadRequest, "every skill needs a name")
			return nil, false
		}
	}
	return req.Skills, true
}
