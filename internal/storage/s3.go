package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"
)

// S3Options configures the S3 gateway.
type S3Options struct {
	Region string
	// Endpoint overrides the service endpoint (MinIO, LocalStack).
	Endpoint     string
	UsePathStyle bool
}

// s3API is the part of the S3 client the gateway uses.
type s3API interface {
	s3.ListObjectsV2APIClient
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Gateway talks to Amazon S3 or an S3-compatible store.
type S3Gateway struct {
	client s3API
}

// NewS3Gateway builds a gateway from the default AWS credential chain.
func NewS3Gateway(ctx context.Context, opts S3Options) (*S3Gateway, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(opts.Region))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if opts.Endpoint != "" {
			o.BaseEndpoint = aws.String(opts.Endpoint)
		}

		o.UsePathStyle = opts.UsePathStyle
	})

	return NewS3GatewayWithClient(client), nil
}

// NewS3GatewayWithClient creates a gateway with a custom client (useful for testing).
func NewS3GatewayWithClient(client s3API) *S3Gateway {
	return &S3Gateway{client: client}
}

// List returns every key under prefix, following pagination. Folder
// placeholder keys are skipped.
func (g *S3Gateway) List(ctx context.Context, bucket, prefix string) ([]string, error) {
	paginator := s3.NewListObjectsV2Paginator(g.client, &s3.ListObjectsV2Input{
		Bucket: aws.String(bucket),
		Prefix: aws.String(prefix),
	})

	var keys []string

	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, listError(bucket, prefix, classify(err))
		}

		for _, obj := range page.Contents {
			key := aws.ToString(obj.Key)
			if isDirMarker(key) {
				continue
			}

			keys = append(keys, key)
		}
	}

	return keys, nil
}

// Download fetches the object into localPath.
func (g *S3Gateway) Download(ctx context.Context, bucket, key, localPath string) error {
	out, err := g.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return downloadError(bucket, key, classify(err))
	}
	defer out.Body.Close()

	if err := writeAtomic(localPath, out.Body); err != nil {
		return downloadError(bucket, key, err)
	}

	return nil
}

// Upload stores localPath under key.
func (g *S3Gateway) Upload(ctx context.Context, localPath, bucket, key string) error {
	f, err := os.Open(localPath)
	if err != nil {
		return uploadError(bucket, key, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return uploadError(bucket, key, err)
	}

	_, err = g.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(bucket),
		Key:           aws.String(key),
		Body:          f,
		ContentLength: aws.Int64(info.Size()),
		ContentType:   aws.String(contentType(localPath)),
	})
	if err != nil {
		return uploadError(bucket, key, classify(err))
	}

	return nil
}

// classify maps missing-object API errors onto ErrNotFound.
func classify(err error) error {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "NoSuchKey", "NotFound", "NoSuchBucket":
			return fmt.Errorf("%w: %w", ErrNotFound, err)
		}
	}

	return err
}

func contentType(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return "text/csv"
	case ".xlsx":
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	default:
		return "application/octet-stream"
	}
}
