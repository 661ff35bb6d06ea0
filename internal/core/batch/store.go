package batch

import (
	"context"
	"errors"
)

// Sentinel errors for batch history operations.
var (
	ErrNotFound = errors.New("batch record not found")
	ErrEmpty    = errors.New("no batch records")
)

// Store defines persistence operations for rename batch history.
type Store interface {
	// List returns all records, newest first.
	List(ctx context.Context) ([]Record, error)
	// Get returns a record by ID. Returns ErrNotFound if not found.
	Get(ctx context.Context, id string) (Record, error)
	// Save creates or updates a record.
	Save(ctx context.Context, r Record) error
	// LastExecuted returns the most recent record that has not been
	// reverted. Returns ErrEmpty if there is none.
	LastExecuted(ctx context.Context) (Record, error)
}
