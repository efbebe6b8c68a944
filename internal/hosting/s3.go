// Package hosting uploads rendered HTML reports to S3-compatible storage and
// hands back a shareable URL for the email CTA.
package hosting

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/tokamak-network/reportgen/internal/config"
)

type Uploader struct {
	client   *minio.Client
	bucket   string
	region   string
	prefix   string
	useSSL   bool
	endpoint string

	initOnce sync.Once
	initErr  error
}

func New(cfg config.HostingConfig) (*Uploader, error) {
	endpoint := strings.TrimSpace(cfg.Endpoint)
	if endpoint == "" {
		return nil, fmt.Errorf("s3 endpoint is required")
	}
	access := strings.TrimSpace(cfg.AccessKey)
	secret := strings.TrimSpace(cfg.SecretKey)
	if access == "" || secret == "" {
		return nil, fmt.Errorf("s3 access key and secret key are required")
	}
	bucket := strings.TrimSpace(cfg.Bucket)
	if bucket == "" {
		return nil, fmt.Errorf("s3 bucket is required")
	}

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(access, secret, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("init s3 client: %w", err)
	}

	return &Uploader{
		client:   client,
		bucket:   bucket,
		region:   cfg.Region,
		prefix:   strings.Trim(cfg.Prefix, "/"),
		useSSL:   cfg.UseSSL,
		endpoint: endpoint,
	}, nil
}

func (u *Uploader) ensureBucket(ctx context.Context) error {
	u.initOnce.Do(func() {
		exists, err := u.client.BucketExists(ctx, u.bucket)
		if err != nil {
			u.initErr = err
			return
		}
		if exists {
			return
		}
		u.initErr = u.client.MakeBucket(ctx, u.bucket, minio.MakeBucketOptions{Region: u.region})
	})
	return u.initErr
}

// UploadHTML stores a rendered report and returns its object key and public
// URL. An empty key gets a timestamped one under the configured prefix.
func (u *Uploader) UploadHTML(ctx context.Context, key, html string) (string, string, error) {
	if u == nil {
		return "", "", fmt.Errorf("uploader is nil")
	}
	if strings.TrimSpace(html) == "" {
		return "", "", fmt.Errorf("html content is required")
	}
	if err := u.ensureBucket(ctx); err != nil {
		return "", "", fmt.Errorf("ensure bucket: %w", err)
	}

	key = strings.TrimLeft(strings.TrimSpace(key), "/")
	if key == "" {
		key = fmt.Sprintf("%s-%s.html", u.prefix, time.Now().UTC().Format("20060102-150405"))
	}

	content := []byte(html)
	_, err := u.client.PutObject(ctx, u.bucket, key, bytes.NewReader(content), int64(len(content)), minio.PutObjectOptions{
		ContentType:  "text/html; charset=utf-8",
		CacheControl: "no-cache",
	})
	if err != nil {
		return "", "", fmt.Errorf("put report object: %w", err)
	}
	return key, u.publicURL(key), nil
}

// PresignedURL returns a time-limited link for buckets without public read.
func (u *Uploader) PresignedURL(ctx context.Context, key string, expiry time.Duration) (string, error) {
	if expiry <= 0 {
		expiry = time.Hour
	}
	signed, err := u.client.PresignedGetObject(ctx, u.bucket, key, expiry, nil)
	if err != nil {
		return "", fmt.Errorf("presign report object: %w", err)
	}
	return signed.String(), nil
}

func (u *Uploader) publicURL(key string) string {
	scheme := "http"
	if u.useSSL {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s/%s/%s", scheme, u.endpoint, u.bucket, key)
}
