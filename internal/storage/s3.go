package storage

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	awscfg "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/rs/zerolog"

	"github.com/prn-tf/wilayah/internal/config"
	"github.com/prn-tf/wilayah/internal/domain"
)

// S3Backend stores photos in an S3-compatible object store.
type S3Backend struct {
	client *s3.Client
	bucket string
	logger zerolog.Logger
}

// NewS3Backend builds an S3 client from config and returns a photo store.
// A custom endpoint switches the client to path-style addressing, which is
// what MinIO and most self-hosted S3 implementations expect.
func NewS3Backend(ctx context.Context, cfg config.S3StorageConfig, logger zerolog.Logger) (*S3Backend, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("storage bucket is required")
	}

	loadOpts := []func(*awscfg.LoadOptions) error{
		awscfg.WithRegion(cfg.Region),
	}
	if cfg.AccessKeyID != "" {
		loadOpts = append(loadOpts, awscfg.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}

	awsCfg, err := awscfg.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
		if cfg.UsePathStyle {
			o.UsePathStyle = true
		}
	})

	return &S3Backend{
		client: client,
		bucket: cfg.Bucket,
		logger: logger.With().Str("storage", "s3").Str("bucket", cfg.Bucket).Logger(),
	}, nil
}

// NewS3BackendWithClient wraps an existing S3 client.
func NewS3BackendWithClient(client *s3.Client, bucket string, logger zerolog.Logger) *S3Backend {
	return &S3Backend{
		client: client,
		bucket: bucket,
		logger: logger.With().Str("storage", "s3").Str("bucket", bucket).Logger(),
	}
}

// Save stores a photo and returns its key.
func (b *S3Backend) Save(ctx context.Context, filename string, reader io.Reader, size int64) (string, error) {
	key := newKey(filename)

	input := &s3.PutObjectInput{
		Bucket: aws.String(b.bucket),
		Key:    aws.String(key),
		Body:   reader,
	}
	if size > 0 {
		input.ContentLength = aws.Int64(size)
	}

	if _, err := b.client.PutObject(ctx, input); err != nil {
		return "", fmt.Errorf("failed to upload photo: %w", err)
	}

	b.logger.Debug().Str("key", key).Int64("size", size).Msg("photo stored")
	return key, nil
}

// Open retrieves a photo by key.
func (b *S3Backend) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	if !validKey(key) {
		return nil, domain.ErrPhotoNotFound
	}

	output, err := b.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(b.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		var noSuchKey *types.NoSuchKey
		if errors.As(err, &noSuchKey) {
			return nil, domain.ErrPhotoNotFound
		}
		return nil, fmt.Errorf("failed to get photo: %w", err)
	}

	return output.Body, nil
}

// Delete removes a photo by key. S3 deletes are idempotent already.
func (b *S3Backend) Delete(ctx context.Context, key string) error {
	if !validKey(key) {
		return nil
	}

	if _, err := b.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(b.bucket),
		Key:    aws.String(key),
	}); err != nil {
		return fmt.Errorf("failed to delete photo: %w", err)
	}

	return nil
}

// Ensure S3Backend implements Backend.
var _ Backend = (*S3Backend)(nil)
