package ports

import "context"

// FileStorage keeps attachment bytes under logical, slash separated paths.
type FileStorage interface {
	// Store writes data under suggestedPath and returns the path it can be
	// retrieved with. Implementations may adjust the path to avoid collisions.
	Store(ctx context.Context, data []byte, suggestedPath string) (string, error)

	// Retrieve returns errs.ObjectNotFoundError for an unknown path.
	Retrieve(ctx context.Context, path string) ([]byte, error)

	// Delete removes a stored file. Deleting an unknown path is not an error.
	Delete(ctx context.Context, path string) error
}
