// Package store is the persistence port for engine records. The engines
// marshal their own state; a Store only moves opaque JSON documents keyed
// per user. Two implementations exist: a Postgres document table for
// signed-in users and a local JSON file store for anonymous/offline play.
// Fallback chains them so the engines never know which backend is active.
package store

// Store loads and saves one JSON document per key.
type Store interface {
	// Load returns the stored document, or (nil, nil) when the key has
	// never been saved.
	Load(key string) ([]byte, error)
	Save(key string, data []byte) error
}

// ProgressKey and ShopKey build the document keys the engines use.
func ProgressKey(userID string) string { return "progress:" + userID }
func ShopKey(userID string) string     { return "shop:" + userID }
