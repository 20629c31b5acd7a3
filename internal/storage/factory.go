package storage

import (
	"context"
	"fmt"
	"strings"
)

// NewClient creates a storage client for the given output destination.
// Destinations of the form gs://bucket[/prefix] select GCS, anything else
// is treated as a local directory.
func NewClient(ctx context.Context, output string) (Client, error) {
	if strings.HasPrefix(output, "gs://") {
		bucket, prefix, err := ParseGCSOutput(output)
		if err != nil {
			return nil, err
		}

		gcsClient, err := NewGCSClient(ctx, bucket, prefix)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize GCS storage client: %w", err)
		}
		return gcsClient, nil
	}

	localClient, err := NewLocalClient(output)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize local storage client: %w", err)
	}
	return localClient, nil
}

// ParseGCSOutput splits a gs://bucket/prefix destination into its parts.
func ParseGCSOutput(output string) (bucket, prefix string, err error) {
	trimmed := strings.TrimPrefix(output, "gs://")
	trimmed = strings.Trim(trimmed, "/")
	if trimmed == "" {
		return "", "", fmt.Errorf("invalid GCS output %q: missing bucket name", output)
	}

	parts := strings.SplitN(trimmed, "/", 2)
	bucket = parts[0]
	if len(parts) == 2 {
		prefix = parts[1]
	}
	return bucket, prefix, nil
}
