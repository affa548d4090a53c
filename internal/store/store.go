// Package store provides the persistence gateways for the action library.
package store

import (
	"context"
	"errors"

	"github.com/rcliao/action-shelf/internal/model"
)

// ErrMalformed reports a data file or table that could not be decoded.
var ErrMalformed = errors.New("malformed action data")

// Gateway loads and saves the whole action collection.
//
// Implementations never merge: Save overwrites whatever was stored before
// with exactly the given records, in order.
type Gateway interface {
	// Load returns the stored records in order. A missing store is created
	// and reported as empty.
	Load(ctx context.Context) ([]model.Action, error)

	// Save replaces the stored collection.
	Save(ctx context.Context, actions []model.Action) error

	// Close releases any underlying handles.
	Close() error
}
