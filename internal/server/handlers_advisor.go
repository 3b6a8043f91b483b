package server

import (
	"encoding/json"
	"net/http"

	"github.com/peopleprotocol/skill-builder/internal/export"
	"github.com/peopleprotocol/skill-builder/internal/types"
)

// RolesRequest represents the request body for /roles
type RolesRequest struct {
	CompanySize string `json:"companySize"`
}

// RolesResponse represents the response for /roles
type RolesResponse struct {
	Roles []types.RoleSpec `json:"roles"`
}

// RecommendRequest represents the request body for /recommend
type RecommendRequest struct {
	RoleTitle    string                   `json:"roleTitle"`
	Conversation []types.ConversationTurn `json:"conversationHistory,omitempty"`
}

// ExportRequest represents the request body for /export
type ExportRequest struct {
	Skills []types.TransformedSkill `json:"skills"`
}

// handleGenerateRoles proposes typical roles for a company of a given size.
func (s *Server) handleGenerateRoles(w http.ResponseWriter, r *http.Request) {
	var req RolesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if req.CompanySize == "" {
		s.errorResponse(w, http.StatusBadRequest, "companySize is required")
		return
	}

	specs, err := s.roles.Generate(r.Context(), req.CompanySize)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, RolesResponse{Roles: specs})
}

// handleRecommend runs one turn of the skill recommendation loop. The
// caller carries the conversation; there is no server-side session.
func (s *Server) handleRecommend(w http.ResponseWriter, r *http.Request) {
	var req RecommendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if req.RoleTitle == "" {
		s.errorResponse(w, http.StatusBadRequest, "roleTitle is required")
		return
	}

	result, err := s.recommender.Recommend(r.Context(), req.RoleTitle, req.Conversation)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, result)
}

// handleExport validates rubrics against the export schema and returns the
// framework envelope ready to be written to disk.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	var req ExportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	doc, err := export.Build(req.Skills)
	if err != nil {
		if ve, ok := err.(*export.ValidationError); ok {
			s.jsonResponse(w, http.StatusBadRequest, map[string]any{
				"error":  "export validation failed",
				"fields": ve.Errors,
			})
			return
		}
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	w.Header().Set("Content-Disposition", `attachment; filename="`+export.DefaultFilename+`"`)
	s.jsonResponse(w, http.StatusOK, doc)
}
