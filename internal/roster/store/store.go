package store

import (
	"context"
	"errors"

	"github.com/tidewater-labs/staffdir/internal/roster/domain"
)

var (
	ErrNotFound    = errors.New("store: not found")
	ErrDuplicateID = errors.New("store: duplicate id")
)

// Store is the roster data access interface. Concrete drivers (flatfile)
// implement this. Every mutation runs a full load-modify-save cycle against
// the backing file, so callers are expected to be a single process; the
// atomic save only protects against torn writes, not lost updates.
type Store interface {
	// List returns all records in file order, creating the backing file
	// empty if it does not exist yet.
	List(ctx context.Context) ([]domain.Employee, error)

	// SaveAll replaces the entire collection atomically.
	SaveAll(ctx context.Context, employees []domain.Employee) error

	// Add appends a record. Fails with ErrDuplicateID if the ID is taken.
	Add(ctx context.Context, e domain.Employee) error

	// Update replaces the record stored under id, keeping its position in
	// the file. Fails with ErrNotFound if id is absent, or ErrDuplicateID
	// if the record's new ID collides with a different existing record.
	Update(ctx context.Context, id string, e domain.Employee) error

	// Delete removes the record stored under id. Fails with ErrNotFound.
	Delete(ctx context.Context, id string) error

	// Close releases any underlying resources (no-op for flatfile).
	Close() error
}
