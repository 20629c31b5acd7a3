package storage

import (
	"context"
)

// Client defines the interface for storing downloaded imagery and metadata
type Client interface {
	// Close closes the storage client
	Close() error

	// StoreFile stores a file under the configured output location and
	// returns the full path or URL of the stored object
	StoreFile(ctx context.Context, filename string, data []byte) (string, error)

	// FileExists checks if a file exists at the specified name
	FileExists(ctx context.Context, filename string) (bool, error)
}
