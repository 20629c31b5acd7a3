package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// LocalClient stores downloaded files on the local file system
type LocalClient struct {
	baseDir string
}

// NewLocalClient creates a new local storage client rooted at baseDir
func NewLocalClient(baseDir string) (*LocalClient, error) {
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory %s: %w", baseDir, err)
	}

	return &LocalClient{
		baseDir: baseDir,
	}, nil
}

// Close is a no-op for local storage (implements the same interface as GCSClient)
func (l *LocalClient) Close() error {
	return nil
}

// StoreFile writes data under the output directory and returns the file path
func (l *LocalClient) StoreFile(ctx context.Context, filename string, data []byte) (string, error) {
	filePath := filepath.Join(l.baseDir, filename)

	if err := os.WriteFile(filePath, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write file %s: %w", filePath, err)
	}

	return filePath, nil
}

// FileExists checks whether a file is present in the output directory
func (l *LocalClient) FileExists(ctx context.Context, filename string) (bool, error) {
	_, err := os.Stat(filepath.Join(l.baseDir, filename))
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
