package storage

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yasinhessnawi1/migrationpack/internal/config"
)

// stubAWS replaces the AWS constructors for the duration of the test and
// returns the options the s3 client was built with.
func stubAWS(t *testing.T, loadErr error) *s3.Options {
	t.Helper()
	origLoad, origNew, origPut := loadDefaultAWSConfig, newS3ClientFromConfig, putObject
	t.Cleanup(func() {
		loadDefaultAWSConfig = origLoad
		newS3ClientFromConfig = origNew
		putObject = origPut
	})

	var opts s3.Options
	loadDefaultAWSConfig = func(ctx context.Context, optFns ...func(*awsconfig.LoadOptions) error) (aws.Config, error) {
		var lo awsconfig.LoadOptions
		for _, fn := range optFns {
			require.NoError(t, fn(&lo))
		}
		return aws.Config{Region: lo.Region, Credentials: lo.Credentials}, loadErr
	}
	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		opts.Region = cfg.Region
		opts.Credentials = cfg.Credentials
		for _, fn := range optFns {
			fn(&opts)
		}
		return &s3.Client{}
	}
	return &opts
}

func writeArchive(t *testing.T) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "migration_data_2024_01_02_030405.zip")
	require.NoError(t, os.WriteFile(p, []byte("PK\x03\x04archive"), 0o644))
	return p
}

func TestNewS3Publisher_Options(t *testing.T) {
	opts := stubAWS(t, nil)

	_, err := NewS3Publisher(context.Background(), config.S3Settings{
		Bucket:    "packs",
		Endpoint:  "http://127.0.0.1:9000",
		AccessKey: "minioadmin",
		SecretKey: "minioadmin",
	})
	require.NoError(t, err)

	assert.Equal(t, "us-east-1", opts.Region, "region falls back to the default")
	assert.Equal(t, "http://127.0.0.1:9000", aws.ToString(opts.BaseEndpoint))
	assert.True(t, opts.UsePathStyle)
	require.NotNil(t, opts.Credentials)
	creds, err := opts.Credentials.Retrieve(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "minioadmin", creds.AccessKeyID)
}

func TestNewS3Publisher_LoadError(t *testing.T) {
	stubAWS(t, errors.New("no config"))

	_, err := NewS3Publisher(context.Background(), config.S3Settings{Bucket: "packs"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load AWS configuration")
}

func TestS3Publisher_Publish(t *testing.T) {
	stubAWS(t, nil)
	var got *s3.PutObjectInput
	var body []byte
	putObject = func(c *s3.Client, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
		got = in
		var err error
		body, err = io.ReadAll(in.Body)
		return &s3.PutObjectOutput{}, err
	}

	p, err := NewS3Publisher(context.Background(), config.S3Settings{Bucket: "packs", Prefix: "migration-packs", Region: "eu-west-1"})
	require.NoError(t, err)

	location, err := p.Publish(context.Background(), writeArchive(t))
	require.NoError(t, err)

	assert.Equal(t, "s3://packs/migration-packs/migration_data_2024_01_02_030405.zip", location)
	require.NotNil(t, got)
	assert.Equal(t, "packs", aws.ToString(got.Bucket))
	assert.Equal(t, "migration-packs/migration_data_2024_01_02_030405.zip", aws.ToString(got.Key))
	assert.Equal(t, int64(len("PK\x03\x04archive")), aws.ToInt64(got.ContentLength))
	assert.Equal(t, "application/x-zip-compressed", aws.ToString(got.ContentType))
	assert.Equal(t, "PK\x03\x04archive", string(body))
}

func TestS3Publisher_PublishErrors(t *testing.T) {
	stubAWS(t, nil)
	putObject = func(c *s3.Client, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
		return nil, errors.New("access denied")
	}

	p, err := NewS3Publisher(context.Background(), config.S3Settings{Bucket: "packs"})
	require.NoError(t, err)

	_, err = p.Publish(context.Background(), writeArchive(t))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to upload archive to packs")

	_, err = p.Publish(context.Background(), filepath.Join(t.TempDir(), "missing.zip"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to open archive")
}

func TestS3Publisher_ObjectKey(t *testing.T) {
	assert.Equal(t, "a.zip", (&S3Publisher{}).ObjectKey("a.zip"))
	assert.Equal(t, "x/y/a.zip", (&S3Publisher{prefix: "x/y/"}).ObjectKey("a.zip"))
}
