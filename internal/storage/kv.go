// Package storage provides the process-wide durable key-value store used for
// the wishlist and the currently selected profile.  Values are opaque strings;
// callers serialize whatever structure they need (JSON in practice).
package storage

// KV is the durable key-value storage contract.  There is exactly one
// implementation backed by a local SQLite database, but the interface keeps the
// stores that persist through it testable without touching disk.
type KV interface {
	// Get returns the stored value and whether the key was present
	Get(key string) (string, bool, error)

	// Set stores the value under key, replacing any previous value
	Set(key, value string) error

	// Delete removes the key.  Deleting an absent key is not an error.
	Delete(key string) error
}
