// Package storage provides optional S3 connectivity: fetching source
// documents referenced by s3:// URLs and archiving rendered design images.
package storage

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awscfg "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog/log"
)

// Client wraps the AWS S3 SDK. A Client is only constructed when a bucket is
// configured; call sites treat it as optional.
type Client struct {
	client     *s3.Client
	uploader   *manager.Uploader
	downloader *manager.Downloader
	bucket     string
}

// NewClient creates a new S3 client against the default credential chain.
func NewClient(ctx context.Context, bucket string) (*Client, error) {
	cfg, err := awscfg.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	cli := s3.NewFromConfig(cfg)

	return &Client{
		client:     cli,
		uploader:   manager.NewUploader(cli),
		downloader: manager.NewDownloader(cli),
		bucket:     bucket,
	}, nil
}

// Bucket returns the configured archive bucket.
func (c *Client) Bucket() string { return c.bucket }

// ParseURI splits an s3://bucket/key URL. ok is false for any other scheme.
func ParseURI(uri string) (bucket, key string, ok bool) {
	if !strings.HasPrefix(uri, "s3://") {
		return "", "", false
	}
	parts := strings.SplitN(strings.TrimPrefix(uri, "s3://"), "/", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", false
	}
	return parts[0], parts[1], true
}

// FetchToFile downloads an object into dst.
func (c *Client) FetchToFile(ctx context.Context, bucket, key, dst string) error {
	f, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("create download target: %w", err)
	}
	defer f.Close()

	n, err := c.downloader.Download(ctx, f, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		os.Remove(dst)
		return fmt.Errorf("download s3://%s/%s: %w", bucket, key, err)
	}

	log.Debug().Str("bucket", bucket).Str("key", key).Int64("bytes", n).Msg("fetched object from S3")
	return nil
}

// Archive uploads data under the configured bucket and returns its s3:// URL.
func (c *Client) Archive(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	_, err := c.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(c.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("upload s3://%s/%s: %w", c.bucket, key, err)
	}

	log.Debug().Str("bucket", c.bucket).Str("key", key).Int("bytes", len(data)).Msg("archived object to S3")
	return fmt.Sprintf("s3://%s/%s", c.bucket, key), nil
}
