// Package storage uploads finished migration packs to object storage.
package storage

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog/log"

	"github.com/yasinhessnawi1/migrationpack/internal/config"
	"github.com/yasinhessnawi1/migrationpack/internal/constants"
)

// Replaced in tests.
var (
	loadDefaultAWSConfig  = awsconfig.LoadDefaultConfig
	newS3ClientFromConfig = s3.NewFromConfig
	putObject             = func(c *s3.Client, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
		return c.PutObject(ctx, in, optFns...)
	}
)

// S3Publisher uploads archives to an S3-compatible bucket.
type S3Publisher struct {
	client *s3.Client
	bucket string
	prefix string
}

// NewS3Publisher creates a publisher for the bucket described by settings.
// Static credentials are used when an access key is configured; otherwise the
// default AWS credential chain applies. A custom endpoint switches to
// path-style addressing so MinIO and similar servers work.
func NewS3Publisher(ctx context.Context, settings config.S3Settings) (*S3Publisher, error) {
	region := settings.Region
	if region == "" {
		region = constants.DefaultS3Region
	}

	opts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(region)}
	if settings.AccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(settings.AccessKey, settings.SecretKey, ""),
		))
	}

	cfg, err := loadDefaultAWSConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS configuration: %w", err)
	}

	client := newS3ClientFromConfig(cfg, func(o *s3.Options) {
		if settings.Endpoint != "" {
			o.BaseEndpoint = aws.String(settings.Endpoint)
			o.UsePathStyle = true
		}
	})

	return &S3Publisher{
		client: client,
		bucket: settings.Bucket,
		prefix: settings.Prefix,
	}, nil
}

// ObjectKey returns the key an archive named name is stored under.
func (p *S3Publisher) ObjectKey(name string) string {
	if p.prefix == "" {
		return name
	}
	return path.Join(p.prefix, name)
}

// Publish uploads the archive at archivePath and returns its s3:// location.
func (p *S3Publisher) Publish(ctx context.Context, archivePath string) (string, error) {
	f, err := os.Open(archivePath)
	if err != nil {
		return "", fmt.Errorf("failed to open archive: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return "", fmt.Errorf("failed to stat archive: %w", err)
	}

	key := p.ObjectKey(filepath.Base(archivePath))
	_, err = putObject(p.client, ctx, &s3.PutObjectInput{
		Bucket:        aws.String(p.bucket),
		Key:           aws.String(key),
		Body:          f,
		ContentLength: aws.Int64(info.Size()),
		ContentType:   aws.String(constants.ContentTypeZip),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload archive to %s: %w", p.bucket, err)
	}

	location := fmt.Sprintf("s3://%s/%s", p.bucket, key)
	log.Debug().Str("location", location).Int64("size", info.Size()).Msg("Uploaded archive")
	return location, nil
}
