// Package storage provides object storage implementations for invoice files.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	appbudget "github.com/Whapy-Dev/Whapy-CRM-sub000/internal/application/budget"
	"github.com/Whapy-Dev/Whapy-CRM-sub000/internal/domain/shared/valueobject"
	infraconfig "github.com/Whapy-Dev/Whapy-CRM-sub000/internal/infrastructure/config"
	"go.uber.org/zap"
)

// Ensure S3InvoiceStore implements InvoiceStorage
var _ appbudget.InvoiceStorage = (*S3InvoiceStore)(nil)

// S3InvoiceStore implements InvoiceStorage using AWS S3 SDK v2.
// It is compatible with any S3-compatible storage (AWS S3, MinIO, etc.)
type S3InvoiceStore struct {
	client *s3.Client
	bucket string
	logger *zap.Logger
}

// S3InvoiceStoreOption is a functional option for configuring S3InvoiceStore
type S3InvoiceStoreOption func(*S3InvoiceStore)

// WithLogger sets a custom logger for S3InvoiceStore
func WithLogger(logger *zap.Logger) S3InvoiceStoreOption {
	return func(s *S3InvoiceStore) {
		s.logger = logger
	}
}

// NewS3InvoiceStore creates a new S3InvoiceStore from configuration.
// It supports any S3-compatible storage backend.
func NewS3InvoiceStore(cfg *infraconfig.StorageConfig, opts ...S3InvoiceStoreOption) (*S3InvoiceStore, error) {
	if cfg == nil {
		return nil, errors.New("storage configuration is required")
	}
	if cfg.Bucket == "" {
		return nil, errors.New("storage bucket is required")
	}
	if cfg.AccessKey == "" {
		return nil, errors.New("storage access key is required")
	}
	if cfg.SecretKey == "" {
		return nil, errors.New("storage secret key is required")
	}

	endpoint := cfg.Endpoint
	if endpoint != "" {
		if !strings.HasPrefix(endpoint, "http://") && !strings.HasPrefix(endpoint, "https://") {
			endpoint = "https://" + endpoint
		}
		if _, err := url.Parse(endpoint); err != nil {
			return nil, fmt.Errorf("invalid storage endpoint: %w", err)
		}
	}

	region := cfg.Region
	if region == "" {
		region = "eu-west-1"
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(),
		awsconfig.WithRegion(region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKey,
			cfg.SecretKey,
			"",
		)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.UsePathStyle = cfg.UsePathStyle
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
		}
	})

	store := &S3InvoiceStore{
		client: client,
		bucket: cfg.Bucket,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(store)
	}

	return store, nil
}

// Store uploads an invoice file under the given key and returns an
// opaque reference to it
func (s *S3InvoiceStore) Store(ctx context.Context, key string, content io.Reader, contentType string) (valueobject.AttachmentRef, error) {
	if key == "" {
		return valueobject.AttachmentRef{}, errors.New("storage key is required")
	}

	input := &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
		Body:   content,
	}
	if contentType != "" {
		input.ContentType = aws.String(contentType)
	}

	if _, err := s.client.PutObject(ctx, input); err != nil {
		return valueobject.AttachmentRef{}, fmt.Errorf("failed to upload object: %w", err)
	}

	s.logger.Debug("invoice object stored",
		zap.String("bucket", s.bucket),
		zap.String("key", key))

	return valueobject.NewAttachmentRef(s.bucket, key)
}

// Delete removes the object the reference points at
func (s *S3InvoiceStore) Delete(ctx context.Context, ref valueobject.AttachmentRef) error {
	if ref.IsZero() {
		return errors.New("attachment reference is required")
	}

	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(ref.Bucket),
		Key:    aws.String(ref.Key),
	})
	if err != nil {
		return fmt.Errorf("failed to delete object: %w", err)
	}

	return nil
}

// GetBucket returns the bucket name
func (s *S3InvoiceStore) GetBucket() string {
	return s.bucket
}
