package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cloud.google.com/go/storage"

	"sdofetch/internal/logger"
)

// GCSClient stores downloaded files in a Google Cloud Storage bucket
type GCSClient struct {
	client *storage.Client
	bucket string
	prefix string
}

// NewGCSClient creates a new GCS storage client
func NewGCSClient(ctx context.Context, bucket, prefix string) (*GCSClient, error) {
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCS client: %w", err)
	}

	return &GCSClient{
		client: client,
		bucket: bucket,
		prefix: prefix,
	}, nil
}

// Close closes the GCS client
func (g *GCSClient) Close() error {
	return g.client.Close()
}

// StoreFile uploads data to the bucket and returns the gs:// URL of the object
func (g *GCSClient) StoreFile(ctx context.Context, filename string, data []byte) (string, error) {
	objectPath := g.objectPath(filename)

	logger.Debug("Storing file to GCS", "bucket", g.bucket, "object", objectPath)

	obj := g.client.Bucket(g.bucket).Object(objectPath)
	writer := obj.NewWriter(ctx)
	writer.ContentType = ContentType(filename)
	writer.Metadata = map[string]string{
		"downloaded-at": time.Now().UTC().Format(time.RFC3339),
		"filename":      filename,
	}

	if _, err := writer.Write(data); err != nil {
		writer.Close()
		return "", fmt.Errorf("failed to write file to GCS: %w", err)
	}

	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("failed to finalize GCS upload: %w", err)
	}

	return fmt.Sprintf("gs://%s/%s", g.bucket, objectPath), nil
}

// FileExists checks whether an object exists in the bucket
func (g *GCSClient) FileExists(ctx context.Context, filename string) (bool, error) {
	obj := g.client.Bucket(g.bucket).Object(g.objectPath(filename))
	_, err := obj.Attrs(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("failed to stat object %s: %w", filename, err)
	}
	return true, nil
}

func (g *GCSClient) objectPath(filename string) string {
	if g.prefix == "" {
		return filename
	}
	return g.prefix + "/" + filename
}
