package kvstore

import "context"

// Store is the local, durable, string-keyed storage of the client.
//
// Calls are synchronous: the value is available when the call returns and
// implementations never reach the network. Single-key reads and writes are
// atomic; there is no cross-key locking.
type Store interface {
	// Get returns the value under key; ok is false when the key is absent.
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	// Set creates or replaces the value under key.
	Set(ctx context.Context, key, value string) error
	// Remove deletes key. Removing an absent key is not an error.
	Remove(ctx context.Context, key string) error
}

// Has reports whether key holds a non-empty value. A read error or an empty
// value counts as absent.
func Has(ctx context.Context, s Store, key string) bool {
	v, ok, err := s.Get(ctx, key)
	return err == nil && ok && v != ""
}
