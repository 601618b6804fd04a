package storage

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"
	"sync"
	"time"

	appconfig "recruiting-portal/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

const (
	UploadExpiry   = 15 * time.Minute
	DownloadExpiry = 300 * time.Second
)

var ErrBucketMissing = errors.New("S3_BUCKET is not configured")

// Bucket signs URLs for the résumé bucket. Browsers upload and download
// directly; the backend never proxies file content.
type Bucket struct {
	client  *s3.Client
	presign *s3.PresignClient
	name    string
	prefix  string
}

// PresignedUpload describes the PUT a browser performs.
type PresignedUpload struct {
	SignedURL string            `json:"signedUrl"`
	Path      string            `json:"path"`
	Method    string            `json:"method"`
	Headers   map[string]string `json:"headers"`
	ExpiresAt time.Time         `json:"expiresAt"`
}

var (
	mu      sync.Mutex
	current *Bucket
)

// Get returns the configured bucket, building it on first use. A missing
// bucket setting surfaces here rather than at startup.
func Get(ctx context.Context) (*Bucket, error) {
	mu.Lock()
	defer mu.Unlock()
	if current != nil {
		return current, nil
	}
	b, err := New(ctx, appconfig.Get().S3)
	if err != nil {
		return nil, err
	}
	current = b
	return current, nil
}

// Set replaces the bucket returned by Get.
func Set(b *Bucket) {
	mu.Lock()
	defer mu.Unlock()
	current = b
}

func New(ctx context.Context, cfg appconfig.S3) (*Bucket, error) {
	if cfg.Bucket == "" {
		return nil, ErrBucketMissing
	}

	opts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(cfg.Region)}
	if cfg.AccessKey != "" && cfg.SecretAccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretAccessKey, ""),
		))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
		o.UsePathStyle = cfg.UsePathStyle
	})

	prefix := strings.Trim(cfg.Prefix, "/")
	if prefix == "" {
		prefix = "resumes"
	}
	return &Bucket{
		client:  client,
		presign: s3.NewPresignClient(client),
		name:    cfg.Bucket,
		prefix:  prefix,
	}, nil
}

// ResumeKey is the object key for a new upload by owner:
// {prefix}/{owner}-{unixMillis}.{ext}. The extension is taken from filename.
func (b *Bucket) ResumeKey(owner, filename string, now time.Time) string {
	ext := strings.TrimPrefix(strings.ToLower(path.Ext(filename)), ".")
	if ext == "" {
		ext = "bin"
	}
	return fmt.Sprintf("%s/%s-%d.%s", b.prefix, owner, now.UnixMilli(), ext)
}

// OwnedBy reports whether key has the shape ResumeKey issues to owner.
func (b *Bucket) OwnedBy(key, owner string) bool {
	head := b.prefix + "/" + owner + "-"
	if owner == "" || !strings.HasPrefix(key, head) {
		return false
	}
	rest := key[len(head):]
	return rest != "" && !strings.ContainsAny(rest, `/\`)
}

func (b *Bucket) PresignUpload(ctx context.Context, key, contentType string) (*PresignedUpload, error) {
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	req, err := b.presign.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(b.name),
		Key:         aws.String(key),
		ContentType: aws.String(contentType),
	}, s3.WithPresignExpires(UploadExpiry))
	if err != nil {
		return nil, fmt.Errorf("presign upload %s: %w", key, err)
	}

	upload := &PresignedUpload{
		SignedURL: req.URL,
		Path:      key,
		Method:    req.Method,
		Headers:   map[string]string{"Content-Type": contentType},
		ExpiresAt: time.Now().Add(UploadExpiry),
	}
	for k, v := range req.SignedHeader {
		// browsers set Host themselves
		if len(v) > 0 && !strings.EqualFold(k, "Host") {
			upload.Headers[k] = v[0]
		}
	}
	return upload, nil
}

// PresignDownload returns a GET URL valid for DownloadExpiry.
func (b *Bucket) PresignDownload(ctx context.Context, key string) (string, error) {
	req, err := b.presign.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(b.name),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(DownloadExpiry))
	if err != nil {
		return "", fmt.Errorf("presign download %s: %w", key, err)
	}
	return req.URL, nil
}

func (b *Bucket) Delete(ctx context.Context, key string) error {
	_, err := b.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(b.name),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("delete %s: %w", key, err)
	}
	return nil
}
