package source

import (
	"context"
	"fmt"
	"net/url"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3Config points at an S3 bucket or an S3 compatible store such as R2.
type S3Config struct {
	Region    string `mapstructure:"region"`
	Endpoint  string `mapstructure:"endpoint"`
	AccessKey string `mapstructure:"access-key"`
	SecretKey string `mapstructure:"-"`
}

// ObjectGetter is the part of the S3 client the fetcher needs.
type ObjectGetter interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// S3 downloads documents addressed as s3://bucket/key.
type S3 struct {
	Client   ObjectGetter
	MaxBytes int64
}

// NewS3 builds a client from the default AWS configuration chain. Static
// credentials and a custom endpoint are used when set.
func NewS3(ctx context.Context, cfg S3Config) (*S3, error) {
	opts := make([]func(*config.LoadOptions) error, 0, 2)
	if cfg.Region != "" {
		opts = append(opts, config.WithRegion(cfg.Region))
	}
	if cfg.AccessKey != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}

	awsConfig, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsConfig, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	return &S3{Client: client, MaxBytes: DefaultMaxBytes}, nil
}

func (s *S3) Fetch(ctx context.Context, location string) (*Blob, error) {
	bucket, key, err := parseS3Location(location)
	if err != nil {
		return nil, err
	}

	out, err := s.Client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get object: %w", err)
	}
	defer out.Body.Close()

	data, err := readLimited(out.Body, s.MaxBytes)
	if err != nil {
		return nil, fmt.Errorf("failed to read object body: %w", err)
	}

	return &Blob{
		Name:        path.Base(key),
		ContentType: aws.ToString(out.ContentType),
		Data:        data,
	}, nil
}

func parseS3Location(location string) (bucket, key string, err error) {
	u, err := url.Parse(location)
	if err != nil {
		return "", "", fmt.Errorf("parse %q: %w", location, err)
	}

	bucket = u.Host
	key = strings.TrimPrefix(u.Path, "/")
	if u.Scheme != "s3" || bucket == "" || key == "" {
		return "", "", fmt.Errorf("invalid s3 location %q: expected s3://bucket/key", location)
	}

	return bucket, key, nil
}
