package types

import "errors"

// Store defines backend-agnostic access to the persistent collections.
// Callers attach to a backend, access tables by name, and detach when done.
type Store interface {
	// GetTable returns the Table for the given name.
	// Returns ErrTableNotFound if the name is not a standard table.
	GetTable(name string) (Table, error)

	// Attach connects the Store to the backend described by config.
	// Creates the DataDir if it does not exist. Idempotent on first call;
	// returns ErrAlreadyAttached if called while already attached.
	Attach(config Config) error

	// Detach releases backend resources. Idempotent: multiple calls succeed.
	// After Detach, operations on tables return ErrStoreDetached.
	Detach() error

	// BulkPutScenes upserts every scene in a single transaction. Either all
	// scenes are applied or none are.
	BulkPutScenes(scenes []*Scene) error

	// ImportBundle upserts the bundle's story and bulk-upserts its scenes in
	// one transaction. A nil bundle or a bundle without a story is rejected
	// with ErrMalformedBundle and nothing is applied.
	ImportBundle(b *StoryBundle) error

	// ExportBundle collects a story and its scenes, ordered ascending, into
	// a bundle. Returns ErrNotFound if the story does not exist.
	ExportBundle(storyID string) (*StoryBundle, error)
}

// Store lifecycle errors.
var (
	ErrStoreDetached   = errors.New("store is detached")
	ErrAlreadyAttached = errors.New("store is already attached")
	ErrTableNotFound   = errors.New("table not found")
)
