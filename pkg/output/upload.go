package output

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"

	"github.com/df07/go-whitted-raytracer/pkg/config"
	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// UploadTimeout bounds a single object upload
const UploadTimeout = 30 * time.Second

// ErrS3NotConfigured is returned when an upload is requested without a bucket
var ErrS3NotConfigured = errors.New("s3 upload not configured")

// S3Uploader publishes finished renders to an S3-compatible bucket
type S3Uploader struct {
	client s3iface.S3API
	bucket string
	logger core.Logger
}

// NewS3Uploader creates an uploader using static credentials and path-style addressing
func NewS3Uploader(cfg config.S3Config, logger core.Logger) (*S3Uploader, error) {
	if cfg.Bucket == "" {
		return nil, ErrS3NotConfigured
	}

	s3Config := &aws.Config{
		Credentials:      credentials.NewStaticCredentials(cfg.AccessKey, cfg.SecretKey, ""),
		Region:           aws.String(cfg.Region),
		S3ForcePathStyle: aws.Bool(true),
	}
	if cfg.Endpoint != "" {
		s3Config.Endpoint = aws.String(cfg.Endpoint)
	}

	sess, err := session.NewSession(s3Config)
	if err != nil {
		return nil, fmt.Errorf("failed to create S3 session: %w", err)
	}
	return NewS3UploaderWithClient(s3.New(sess), cfg.Bucket, logger), nil
}

// NewS3UploaderWithClient creates an uploader around an existing client
func NewS3UploaderWithClient(client s3iface.S3API, bucket string, logger core.Logger) *S3Uploader {
	return &S3Uploader{client: client, bucket: bucket, logger: logger}
}

// Upload stores data under key
func (u *S3Uploader) Upload(ctx context.Context, key string, data []byte, contentType string) error {
	ctx, cancel := context.WithTimeout(ctx, UploadTimeout)
	defer cancel()

	size := int64(len(data))
	_, err := u.client.PutObjectWithContext(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(u.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(size),
		ContentType:   aws.String(contentType),
	})
	if err != nil {
		return fmt.Errorf("failed to upload %s: %w", key, err)
	}

	if u.logger != nil {
		u.logger.Printf("Uploaded %s to s3://%s (%d bytes)\n", key, u.bucket, size)
	}
	return nil
}

// UploadFile uploads a file from disk under key
func (u *S3Uploader) UploadFile(ctx context.Context, filename, key string) error {
	data, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", filename, err)
	}
	return u.Upload(ctx, key, data, ContentType(filename))
}

// ContentType returns the MIME type of an output file based on its extension
func ContentType(filename string) string {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".png":
		return "image/png"
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".ppm":
		return "image/x-portable-pixmap"
	default:
		return "application/octet-stream"
	}
}
