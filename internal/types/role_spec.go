//nolint:revive // types is a standard Go package name pattern
package types

// RoleSpec represents one role suggested for a company of a given size.
// Ephemeral: consumed to drive batched recommendation calls, never persisted.
type RoleSpec struct {
	Title       string `json:"title"`
	Count       int    `json:"count"`
	Description string `json:"description,omitempty"`
}
