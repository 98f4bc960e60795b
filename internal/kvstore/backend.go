// Package kvstore defines the durable key-value backend that all entity
// collections persist through, with SQLite and plain-file drivers.
package kvstore

// Backend is a synchronous, string-keyed durable store. Each entity
// collection serializes to a single value under its own key.
type Backend interface {
	// Get returns the value stored under key. ok is false when the key
	// has never been written.
	Get(key string) (value string, ok bool, err error)
	// Set durably stores value under key, replacing any previous value.
	Set(key, value string) error
	// Delete removes key. Deleting an absent key is not an error.
	Delete(key string) error
	// Keys returns every stored key.
	Keys() ([]string, error)
	Close() error
}
