package evidence

import (
	"context"
	"fmt"

	"cloud.google.com/go/storage"
)

// GCSExporter ships evidence blobs to a Google Cloud Storage bucket.
type GCSExporter struct {
	client *storage.Client
	bucket string
}

// NewGCSExporter wraps an already-configured GCS client.
func NewGCSExporter(client *storage.Client, bucket string) *GCSExporter {
	return &GCSExporter{client: client, bucket: bucket}
}

func (e *GCSExporter) Export(ctx context.Context, key string, data []byte) (string, error) {
	w := e.client.Bucket(e.bucket).Object(key).NewWriter(ctx)
	if _, err := w.Write(data); err != nil {
		w.Close()
		return "", fmt.Errorf("evidence: gcs write %s/%s: %w", e.bucket, key, err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("evidence: gcs close %s/%s: %w", e.bucket, key, err)
	}
	return fmt.Sprintf("gs://%s/%s", e.bucket, key), nil
}
