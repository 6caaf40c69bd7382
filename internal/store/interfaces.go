package store

import (
	"context"

	"shopdesk/internal/models"
)

// --- Record Store ---

// RecordStore persists the whole product table at once. There is no partial
// update: callers load everything, merge, and save everything back.
type RecordStore interface {
	// LoadAll returns every row in file order. A missing backing file is an
	// empty table, not an error.
	LoadAll(ctx context.Context) ([]models.Record, error)
	// SaveAll replaces the table with exactly records.
	SaveAll(ctx context.Context, records []models.Record) error

	Ping(ctx context.Context) error
}
