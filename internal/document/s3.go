package document

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

const s3Scheme = "s3://"

// S3Config configures access to an S3 compatible bucket (AWS, R2, MinIO).
type S3Config struct {
	Region    string `mapstructure:"region"`
	Bucket    string `mapstructure:"bucket"`
	Endpoint  string `mapstructure:"endpoint"`
	AccessKey string `mapstructure:"access-key"`
	SecretKey string `mapstructure:"secret-key"`
}

type objectGetter interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// S3Fetcher downloads documents referenced by s3://bucket/key URIs.
type S3Fetcher struct {
	client        objectGetter
	defaultBucket string
}

func NewS3Fetcher(ctx context.Context, cfg S3Config) (*S3Fetcher, error) {
	region := strings.TrimSpace(cfg.Region)
	if region == "" {
		region = "auto"
	}

	opts := []func(*config.LoadOptions) error{config.WithRegion(region)}
	if cfg.AccessKey != "" && cfg.SecretKey != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}

	awsConfig, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsConfig, func(o *s3.Options) {
		if endpoint := strings.TrimSpace(cfg.Endpoint); endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
			o.UsePathStyle = true
		}
	})

	return &S3Fetcher{client: client, defaultBucket: strings.TrimSpace(cfg.Bucket)}, nil
}

// IsS3URI reports whether source points to an object store.
func IsS3URI(source string) bool {
	return strings.HasPrefix(strings.TrimSpace(source), s3Scheme)
}

// ParseS3URI splits s3://bucket/key. An empty bucket (s3:///key) falls back to defaultBucket.
func ParseS3URI(uri, defaultBucket string) (bucket, key string, err error) {
	rest, ok := strings.CutPrefix(strings.TrimSpace(uri), s3Scheme)
	if !ok {
		return "", "", fmt.Errorf("not an s3 uri: %q", uri)
	}

	bucket, key, _ = strings.Cut(rest, "/")
	if bucket == "" {
		bucket = defaultBucket
	}
	if bucket == "" || key == "" {
		return "", "", fmt.Errorf("s3 uri %q must name a bucket and a key", uri)
	}
	return bucket, key, nil
}

// Fetch downloads the object and returns its text.
func (f *S3Fetcher) Fetch(ctx context.Context, uri string) (string, error) {
	bucket, key, err := ParseS3URI(uri, f.defaultBucket)
	if err != nil {
		return "", err
	}

	out, err := f.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return "", fmt.Errorf("failed to get object: %w", err)
	}
	defer out.Body.Close()

	data, err := readLimited(out.Body)
	if err != nil {
		return "", fmt.Errorf("%s: %w", uri, err)
	}

	return ExtractText(path.Base(key), data)
}

// Load reads a local path or, when fetcher is set, an s3:// URI.
func Load(ctx context.Context, source string, fetcher *S3Fetcher) (string, error) {
	if IsS3URI(source) {
		if fetcher == nil {
			return "", errors.New("s3 source given but s3 is not configured")
		}
		return fetcher.Fetch(ctx, source)
	}
	return ReadFile(source)
}
