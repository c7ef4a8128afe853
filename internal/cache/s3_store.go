package cache

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/joseph-ayodele/claims-triage/internal/common"
)

// S3Store keeps entries as objects under <prefix>/<bucket>/<key><ext>.
type S3Store struct {
	client *s3.Client
	bucket string
	prefix string
}

// NewS3Store loads AWS configuration, using static credentials when both
// keys are set and the default chain otherwise.
func NewS3Store(ctx context.Context, cfg common.S3Config) (*S3Store, error) {
	opts := []func(*config.LoadOptions) error{config.WithRegion(cfg.Region)}
	if cfg.AccessKey != "" && cfg.SecretKey != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}
	awsCfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})
	return &S3Store{client: client, bucket: cfg.Bucket, prefix: cfg.Prefix}, nil
}

func (s *S3Store) objectKey(bucket Bucket, key string) string {
	return path.Join(s.prefix, string(bucket), key+bucket.Ext())
}

func (s *S3Store) Get(ctx context.Context, bucket Bucket, key string) ([]byte, bool, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.objectKey(bucket, key)),
	})
	var noKey *types.NoSuchKey
	if errors.As(err, &noKey) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to download from S3: %w", err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, false, fmt.Errorf("reading S3 object: %w", err)
	}
	return data, true, nil
}

func (s *S3Store) Put(ctx context.Context, bucket Bucket, key string, data []byte) error {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(s.objectKey(bucket, key)),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType(bucket)),
	})
	if err != nil {
		return fmt.Errorf("failed to upload to S3: %w", err)
	}
	return nil
}

func (s *S3Store) Close() error { return nil }

func contentType(bucket Bucket) string {
	switch bucket {
	case BucketText:
		return "text/plain; charset=utf-8"
	case BucketLabels:
		return "text/csv"
	default:
		return "application/json"
	}
}
