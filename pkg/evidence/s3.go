package evidence

import (
	"bytes"
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3Exporter ships evidence blobs to an S3 bucket.
type S3Exporter struct {
	client *s3.Client
	bucket string
}

// NewS3Exporter wraps an already-configured S3 client.
func NewS3Exporter(client *s3.Client, bucket string) *S3Exporter {
	return &S3Exporter{client: client, bucket: bucket}
}

// NewS3ExporterFromEnv resolves credentials and region the standard AWS
// way (environment, shared config file, EC2/ECS role) and returns an
// S3Exporter for bucket, for callers that don't want to build an
// *s3.Client themselves.
func NewS3ExporterFromEnv(ctx context.Context, bucket string) (*S3Exporter, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("evidence: load aws config: %w", err)
	}
	return NewS3Exporter(s3.NewFromConfig(cfg), bucket), nil
}

func (e *S3Exporter) Export(ctx context.Context, key string, data []byte) (string, error) {
	_, err := e.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(e.bucket),
		Key:    aws.String(key),
		Body:   bytes.NewReader(data),
	})
	if err != nil {
		return "", fmt.Errorf("evidence: s3 put %s/%s: %w", e.bucket, key, err)
	}
	return fmt.Sprintf("s3://%s/%s", e.bucket, key), nil
}
