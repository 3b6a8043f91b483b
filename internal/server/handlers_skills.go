package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/peopleprotocol/skill-builder/internal/types"
)

// defaultSearchLimit caps taxonomy queries when the client sends none.
const defaultSearchLimit = 20

// SkillListResponse represents the response for /skills
type SkillListResponse struct {
	Skills []types.SkillRecord `json:"skills"`
	Count  int                 `json:"count"`
}

// TypeListResponse represents the response for /skills/types
type TypeListResponse struct {
	Types []types.SkillType `json:"types"`
	// Raw carries the upstream version payload when no type list could be
	// extracted from it, for diagnostics.
	Raw json.RawMessage `json:"raw,omitempty"`
}

// TypeCountsResponse represents the response for /skills/counts
type TypeCountsResponse struct {
	Counts []types.TypeCount `json:"counts"`
}

// handleSearchSkills queries the taxonomy by free text or by type.
func (s *Server) handleSearchSkills(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	typeID := r.URL.Query().Get("typeId")
	if query == "" && typeID == "" {
		s.errorResponse(w, http.StatusBadRequest, "q or typeId is required")
		return
	}

	limit := defaultSearchLimit
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		parsed, err := strconv.Atoi(limitStr)
		if err != nil || parsed <= 0 {
			s.errorResponse(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = parsed
	}

	var (
		skills []types.SkillRecord
		err    error
	)
	if typeID != "" {
		skills, err = s.taxonomy.ListByType(r.Context(), typeID, limit)
	} else {
		skills, err = s.taxonomy.Search(r.Context(), query, limit)
	}
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	if skills == nil {
		skills = []types.SkillRecord{}
	}

	s.jsonResponse(w, http.StatusOK, SkillListResponse{Skills: skills, Count: len(skills)})
}

// handleGetSkill fetches one skill by its taxonomy key.
func (s *Server) handleGetSkill(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		s.errorResponse(w, http.StatusBadRequest, "skill id is required")
		return
	}

	skill, err := s.taxonomy.GetByID(r.Context(), id)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, skill)
}

// handleListTypes returns the taxonomy's skill-type categories.
func (s *Server) handleListTypes(w http.ResponseWriter, r *http.Request) {
	typeList, raw, err := s.taxonomy.ListTypes(r.Context())
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, TypeListResponse{Types: typeList, Raw: raw})
}

// handleCountsByType returns approximate skill counts per category.
func (s *Server) handleCountsByType(w http.ResponseWriter, r *http.Request) {
	counts, err := s.taxonomy.CountsByType(r.Context())
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	if counts == nil {
		counts = []types.TypeCount{}
	}

	s.jsonResponse(w, http.StatusOK, TypeCountsResponse{Counts: counts})
}
