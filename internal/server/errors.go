package server

import (
	"net/http"

	"github.com/peopleprotocol/skill-builder/internal/export"
	"github.com/peopleprotocol/skill-builder/internal/lightcast"
	"github.com/peopleprotocol/skill-builder/internal/llm"
	"github.com/peopleprotocol/skill-builder/internal/recommend"
	"github.com/peopleprotocol/skill-builder/internal/roles"
	"github.com/peopleprotocol/skill-builder/internal/transform"
)

// HTTPStatus returns the appropriate HTTP status code for an error.
// Misbehaving backends (the taxonomy upstream or the completion model) map
// to 502: the request was fine, the dependency was not.
func HTTPStatus(err error) int {
	if upstream, ok := err.(*lightcast.ErrUpstreamUnavailable); ok {
		if upstream.Status == http.StatusNotFound {
			return http.StatusNotFound
		}
		return http.StatusBadGateway
	}

	switch err.(type) {
	case *export.ValidationError:
		return http.StatusBadRequest
	case *lightcast.ErrMissingCredentials:
		return http.StatusInternalServerError
	case *llm.ErrCompletionUnavailable,
		*llm.ErrMalformedCompletion,
		*llm.ErrInvalidCompletionEnvelope,
		*transform.ErrInvalidRubricShape,
		*transform.ErrSparseLevels,
		*roles.ErrMissingRoles,
		*roles.ErrNoValidRoles,
		*recommend.ErrInvalidRecommendationShape:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
