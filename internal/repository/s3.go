package repository

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"fleet-scheduler/internal/config"
	"fleet-scheduler/internal/scheduler"
)

type objectClient interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, opts ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	GetObject(ctx context.Context, in *s3.GetObjectInput, opts ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// S3Store writes each snapshot as an immutable object and maintains a
// latest.json copy for cheap loads.
type S3Store struct {
	client objectClient
	bucket string
	prefix string
}

// NewS3Client builds an S3 client from settings. Static credentials are used
// when both keys are set, otherwise the default AWS chain applies. A custom
// endpoint switches to path-style addressing (MinIO and friends).
func NewS3Client(ctx context.Context, cfg config.S3) (*s3.Client, error) {
	opts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(cfg.Region)}
	if cfg.AccessKey != "" && cfg.SecretKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, "")))
	}
	sdkConfig, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load AWS config: %w", err)
	}
	return s3.NewFromConfig(sdkConfig, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	}), nil
}

// NewS3Store creates a store writing under prefix in bucket.
func NewS3Store(client objectClient, bucket, prefix string) *S3Store {
	return &S3Store{client: client, bucket: bucket, prefix: prefix}
}

func (s *S3Store) versionKey(v int64) string {
	return path.Join(s.prefix, "snapshots", fmt.Sprintf("%020d.json", v))
}

func (s *S3Store) latestKey() string {
	return path.Join(s.prefix, "latest.json")
}

// Save uploads the versioned object first and then replaces latest.json, so
// latest.json never points at a snapshot that is missing.
func (s *S3Store) Save(ctx context.Context, snap scheduler.Snapshot) error {
	payload, err := scheduler.EncodeSnapshot(snap)
	if err != nil {
		return err
	}
	for _, key := range []string{s.versionKey(snap.Version), s.latestKey()} {
		_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
			Bucket:      aws.String(s.bucket),
			Key:         aws.String(key),
			Body:        bytes.NewReader(payload),
			ContentType: aws.String("application/json"),
		})
		if err != nil {
			return fmt.Errorf("put %s: %w", key, err)
		}
	}
	return nil
}

// LoadLatest reads latest.json. A missing object means nothing was saved.
func (s *S3Store) LoadLatest(ctx context.Context) (scheduler.Snapshot, bool, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.latestKey()),
	})
	if err != nil {
		var missing *types.NoSuchKey
		if errors.As(err, &missing) {
			return scheduler.Snapshot{}, false, nil
		}
		return scheduler.Snapshot{}, false, fmt.Errorf("get %s: %w", s.latestKey(), err)
	}
	defer out.Body.Close()

	payload, err := io.ReadAll(out.Body)
	if err != nil {
		return scheduler.Snapshot{}, false, fmt.Errorf("read %s: %w", s.latestKey(), err)
	}
	snap, err := scheduler.DecodeSnapshot(payload)
	if err != nil {
		return scheduler.Snapshot{}, false, err
	}
	return snap, true, nil
}
