// Package lightcast provides authenticated access to the Lightcast skills
// taxonomy: token exchange, search, type listing, and counting.
package lightcast

import "fmt"

// ErrMissingCredentials indicates the Lightcast client ID or secret is not
// configured. Fatal to any gateway call.
type ErrMissingCredentials struct{}

func (e *ErrMissingCredentials) Error() string {
	return "lightcast credentials are not configured (LIGHTCAST_CLIENT_ID / LIGHTCAST_CLIENT_SECRET)"
}

// ErrUpstreamUnavailable indicates a non-2xx reply from Lightcast. There is
// no retry; the status and body surface to the caller.
type ErrUpstreamUnavailable struct {
	Operation string
	Status    int
	Body      string
}

func (e *ErrUpstreamUnavailable) Error() string {
	return fmt.Sprintf("lightcast %s failed with status %d: %s", e.Operation, e.Status, e.Body)
}
