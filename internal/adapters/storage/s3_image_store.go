package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awscfg "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/openfleet/carrental/internal/domain/providers"
	"github.com/openfleet/carrental/pkg/config"
	apperrors "github.com/openfleet/carrental/pkg/errors"
)

const imagePrefix = "cars"

// S3ImageStore hosts car images on S3-compatible object storage.
// Works with AWS S3, MinIO, DigitalOcean Spaces, Cloudflare R2.
type S3ImageStore struct {
	client  *s3.Client
	bucket  string
	baseURL string
}

// NewS3ImageStore creates an image store backed by the configured bucket
func NewS3ImageStore(cfg *config.S3Config) (providers.ImageStore, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("storage/s3: bucket is not configured")
	}

	opts := []func(*awscfg.LoadOptions) error{
		awscfg.WithRegion(cfg.Region),
	}

	// Static credentials (required for MinIO / R2 / Spaces)
	if cfg.Key != "" && cfg.Secret != "" {
		opts = append(opts, awscfg.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.Key, cfg.Secret, ""),
		))
	}

	awsConfig, err := awscfg.LoadDefaultConfig(context.Background(), opts...)
	if err != nil {
		return nil, fmt.Errorf("storage/s3: load config: %w", err)
	}

	clientOpts := []func(*s3.Options){}
	if cfg.Endpoint != "" {
		clientOpts = append(clientOpts, func(o *s3.Options) {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true // required for MinIO
		})
	}

	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.Bucket, cfg.Region)
	}

	return &S3ImageStore{
		client:  s3.NewFromConfig(awsConfig, clientOpts...),
		bucket:  cfg.Bucket,
		baseURL: baseURL,
	}, nil
}

// Put uploads an image and returns its public URL. Object keys are
// generated so repeated uploads of the same filename never collide.
func (s *S3ImageStore) Put(ctx context.Context, filename string, contentType string, r io.Reader) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", apperrors.NewInternalError("failed to read image content", err)
	}

	key := fmt.Sprintf("%s/%d-%s%s", imagePrefix, time.Now().Unix(), uuid.New().String(), path.Ext(filename))

	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", apperrors.NewExternalError(fmt.Sprintf("failed to upload image %s", filename), err)
	}

	return s.baseURL + "/" + key, nil
}

// Delete removes a previously uploaded image by its public URL. URLs that
// do not belong to this store are ignored.
func (s *S3ImageStore) Delete(ctx context.Context, url string) error {
	if !strings.HasPrefix(url, s.baseURL+"/") {
		return nil
	}
	key := strings.TrimPrefix(url, s.baseURL+"/")

	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return apperrors.NewExternalError(fmt.Sprintf("failed to delete image %s", key), err)
	}
	return nil
}
