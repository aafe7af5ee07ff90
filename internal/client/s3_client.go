package client

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	appConfig "kanban-board-api/internal/config"
	"kanban-board-api/internal/metrics"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

// S3Client mirrors uploads into an S3 bucket or a MinIO endpoint.
type S3Client struct {
	client   *s3.Client
	bucket   string
	region   string
	endpoint string // set only for MinIO and other S3-compatible servers
	prefix   string
	metrics  *metrics.Metrics
	now      func() time.Time
}

// NewS3Client creates a new S3 client
func NewS3Client(ctx context.Context, cfg *appConfig.S3Config, m *metrics.Metrics) (*S3Client, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("S3 bucket is required")
	}
	if cfg.Region == "" {
		return nil, fmt.Errorf("S3 region is required")
	}

	opts := []func(*config.LoadOptions) error{config.WithRegion(cfg.Region)}
	if cfg.Endpoint != "" {
		// MinIO requires explicit credentials
		if cfg.AccessKey == "" || cfg.SecretKey == "" {
			return nil, fmt.Errorf("access key and secret key are required for a custom S3 endpoint")
		}
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}

	awsCfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	s3Client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	return &S3Client{
		client:   s3Client,
		bucket:   cfg.Bucket,
		region:   cfg.Region,
		endpoint: cfg.Endpoint,
		prefix:   strings.Trim(cfg.Prefix, "/"),
		metrics:  m,
		now:      time.Now,
	}, nil
}

func (c *S3Client) Name() string { return "s3" }

// GenerateFileKey returns {prefix}/{year}/{month}/{uuid}_{unix}{ext}.
func (c *S3Client) GenerateFileKey(fileName string) string {
	now := c.now()
	key := fmt.Sprintf("%s/%s/%s_%d%s",
		now.Format("2006"), now.Format("01"), uuid.New().String(), now.Unix(), filepath.Ext(fileName))
	if c.prefix == "" {
		return key
	}
	return c.prefix + "/" + key
}

// Upload puts the object and reports its key and URL.
func (c *S3Client) Upload(ctx context.Context, name, contentType string, r io.Reader) (*MirroredFile, error) {
	key := c.GenerateFileKey(name)

	start := time.Now()
	_, err := c.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(c.bucket),
		Key:         aws.String(key),
		Body:        r,
		ContentType: aws.String(contentType),
	})
	c.metrics.RecordExternalAPICall("s3:PutObject", "PUT", s3Status(err), time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("failed to upload file to S3: %w", err)
	}

	return &MirroredFile{ID: key, URL: c.GetFileURL(key)}, nil
}

// GetFileURL returns the public URL for a file
func (c *S3Client) GetFileURL(key string) string {
	if c.endpoint != "" {
		return fmt.Sprintf("%s/%s/%s", strings.TrimSuffix(c.endpoint, "/"), c.bucket, key)
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", c.bucket, c.region, key)
}

func s3Status(err error) int {
	if err == nil {
		return 200
	}
	var withStatus interface{ HTTPStatusCode() int }
	if errors.As(err, &withStatus) {
		return withStatus.HTTPStatusCode()
	}
	return 0
}

var _ Mirror = (*S3Client)(nil)
