package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"mime"
	"path"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/rs/zerolog/log"
	"github.com/tanq16/bingwall/internal/utils"
)

// S3API is the slice of the S3 client the store needs.
type S3API interface {
	HeadObject(ctx context.Context, params *s3.HeadObjectInput, optFns ...func(*s3.Options)) (*s3.HeadObjectOutput, error)
	manager.UploadAPIClient
}

type S3 struct {
	Bucket   string
	Prefix   string
	client   S3API
	uploader *manager.Uploader
}

func NewS3(client S3API, bucket, prefix string) *S3 {
	return &S3{
		Bucket:   bucket,
		Prefix:   strings.Trim(prefix, "/"),
		client:   client,
		uploader: manager.NewUploader(client),
	}
}

// NewS3FromProfile loads AWS credentials from the shared config profile.
func NewS3FromProfile(ctx context.Context, profile, bucket, prefix string) (*S3, error) {
	if profile == "" {
		profile = utils.DefaultS3Profile
	}
	cfg, err := config.LoadDefaultConfig(ctx,
		config.WithSharedConfigProfile(profile),
		config.WithRetryMode(aws.RetryModeAdaptive),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: error loading AWS config: %v", utils.ErrStorage, err)
	}
	return NewS3(s3.NewFromConfig(cfg), bucket, prefix), nil
}

// ParseS3URI splits "s3://bucket/some/prefix" into bucket and prefix.
func ParseS3URI(uri string) (string, string, error) {
	if !strings.HasPrefix(uri, "s3://") {
		return "", "", fmt.Errorf("invalid S3 URI %q: missing s3:// scheme", uri)
	}
	parts := strings.SplitN(strings.TrimPrefix(uri, "s3://"), "/", 2)
	if parts[0] == "" {
		return "", "", fmt.Errorf("invalid S3 URI %q: missing bucket", uri)
	}
	prefix := ""
	if len(parts) > 1 {
		prefix = strings.Trim(parts[1], "/")
	}
	return parts[0], prefix, nil
}

func (s *S3) key(name string) string {
	if s.Prefix == "" {
		return name
	}
	return path.Join(s.Prefix, name)
}

func (s *S3) Location(name string) string {
	return fmt.Sprintf("s3://%s/%s", s.Bucket, s.key(name))
}

func (s *S3) Exists(ctx context.Context, name string) (bool, error) {
	_, err := s.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(s.Bucket),
		Key:    aws.String(s.key(name)),
	})
	if err == nil {
		return true, nil
	}
	var notFound *types.NotFound
	if errors.As(err, &notFound) {
		return false, nil
	}
	return false, fmt.Errorf("%w: error checking %s: %w", utils.ErrStorage, s.Location(name), err)
}

func (s *S3) Write(ctx context.Context, name string, data []byte) error {
	input := &s3.PutObjectInput{
		Bucket: aws.String(s.Bucket),
		Key:    aws.String(s.key(name)),
		Body:   bytes.NewReader(data),
	}
	if contentType := mime.TypeByExtension(filepath.Ext(name)); contentType != "" {
		input.ContentType = aws.String(contentType)
	}
	if _, err := s.uploader.Upload(ctx, input); err != nil {
		return fmt.Errorf("%w: error uploading %s: %w", utils.ErrStorage, s.Location(name), err)
	}
	log.Debug().Str("op", "storage/s3").Str("object", s.Location(name)).Int("bytes", len(data)).Msg("Object uploaded")
	return nil
}
