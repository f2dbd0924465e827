package ports

import (
	"context"

	"github.com/aretw0/datatree/pkg/domain"
)

// SnapshotStore defines the interface for persisting built trees.
// Stores hold the JSON wire form, so a loaded tree never aliases the saved one.
type SnapshotStore interface {
	// Save persists the tree under id, replacing any previous snapshot.
	Save(ctx context.Context, id string, tree domain.Tree) error

	// Load retrieves the tree stored under id.
	// Returns domain.ErrSnapshotNotFound if the snapshot does not exist.
	Load(ctx context.Context, id string) (domain.Tree, error)

	// Delete removes the snapshot stored under id.
	Delete(ctx context.Context, id string) error

	// List returns the IDs of the stored snapshots.
	List(ctx context.Context) ([]string, error)
}
