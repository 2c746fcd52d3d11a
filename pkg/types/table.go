package types

import "errors"

// Standard table names for Store.GetTable.
const (
	StoriesTable = "stories"
	ScenesTable  = "scenes"
	AssetsTable  = "assets"
)

// StandardTableNames lists all standard table names for enumeration.
var StandardTableNames = []string{
	StoriesTable,
	ScenesTable,
	AssetsTable,
}

// Filter selects entities in Table.Fetch. Keys are table-specific; an empty
// or nil filter matches every entity.
type Filter map[string]any

// Table provides uniform CRUD operations for a single entity type.
// Get and Fetch return any; callers type-assert to the concrete entity struct.
type Table interface {
	// Get retrieves the entity with the given ID.
	// Returns ErrNotFound if no entity exists with that ID.
	Get(id string) (any, error)

	// Set creates or updates an entity. When id is empty a new UUID v7 is
	// generated. Returns the actual ID used (generated or provided).
	Set(id string, data any) (string, error)

	// Delete removes the entity with the given ID. Deleting an ID that does
	// not exist is a no-op, not an error.
	Delete(id string) error

	// Fetch returns all entities matching the filter. An empty filter
	// returns every entity in the table.
	Fetch(filter Filter) ([]any, error)
}

// Table operation errors.
var (
	ErrNotFound      = errors.New("entity not found")
	ErrInvalidID     = errors.New("invalid entity ID")
	ErrInvalidData   = errors.New("invalid entity data")
	ErrInvalidFilter = errors.New("invalid filter value type")
)

// Entity validation errors.
var (
	ErrInvalidName      = errors.New("invalid name")
	ErrInvalidTheme     = errors.New("invalid story theme")
	ErrInvalidAssetType = errors.New("invalid asset type")
	ErrInvalidShape     = errors.New("invalid token shape")
	ErrInvalidOrder     = errors.New("scene order must not be negative")
)
