package database

import (
	"errors"

	"github.com/pixelgrove/ingest/internal/model"
)

// ErrNotFound is returned when no matching asset record exists.
var ErrNotFound = errors.New("asset not found")

// AssetStore defines the persistence interface for image asset metadata.
// Field-constraint validation (length limits, category enumeration, priority
// range) is enforced here on create and update, with the same limits the
// pipeline checks against.
type AssetStore interface {
	// Create inserts the asset, assigning an ID when none is set.
	Create(a *model.ImageAsset) error

	// Update patches an existing active record and returns the result.
	Update(id string, patch model.AssetPatch) (*model.ImageAsset, error)

	// Delete removes the record unconditionally.
	Delete(id string) error

	// FindActiveByID returns the asset only if it is active.
	FindActiveByID(id string) (*model.ImageAsset, error)

	// FindByID returns the asset regardless of its active flag.
	FindByID(id string) (*model.ImageAsset, error)

	// List returns one page of assets, newest first then by priority.
	// An empty category matches all categories.
	List(category model.Category, includeInactive bool, page, perPage int) ([]*model.ImageAsset, int, error)

	Close() error
}
