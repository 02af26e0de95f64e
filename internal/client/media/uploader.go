// Package media uploads local image files to S3-compatible object storage
// and returns the URL that is stored in a memory post.
package media

import (
	"context"
	"errors"
	"fmt"
	"mime"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/dmitrijs2005/memomap/internal/netx"
)

const (
	putExpiry = 15 * time.Minute
	getExpiry = 7 * 24 * time.Hour
	maxUpload = 20 << 20
)

var ErrNotConfigured = errors.New("media storage is not configured")

var (
	loadDefaultAWSConfig = config.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}

	newS3PresignClient = func(c *s3.Client) *s3.PresignClient {
		return s3.NewPresignClient(c)
	}

	presignPutObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignPutObject(ctx, in, optFns...)
	}
	presignGetObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignGetObject(ctx, in, optFns...)
	}

	uploadToPresignedURL = netx.UploadToPresignedURL
)

// Uploader stores the file at path and returns a URL it can be fetched from.
type Uploader interface {
	Upload(ctx context.Context, path string) (string, error)
}

// Config locates the bucket. Endpoint is set for MinIO and other
// S3-compatible stores. With PublicBaseURL set the returned URL is
// PublicBaseURL/key, otherwise a presigned GET valid for seven days.
type Config struct {
	Bucket        string `json:"bucket"`
	Region        string `json:"region"`
	Endpoint      string `json:"endpoint"`
	AccessKey     string `json:"access_key"`
	SecretKey     string `json:"secret_key"`
	PublicBaseURL string `json:"public_base_url"`
}

// Enabled reports whether uploads can be attempted at all.
func (c Config) Enabled() bool {
	return c.Bucket != ""
}

type S3Uploader struct {
	cfg    Config
	client *http.Client
	now    func() time.Time

	mu      sync.Mutex
	presign *s3.PresignClient
}

func NewS3Uploader(cfg Config, client *http.Client) (*S3Uploader, error) {
	if !cfg.Enabled() {
		return nil, ErrNotConfigured
	}
	if cfg.Region == "" {
		cfg.Region = "us-east-1"
	}
	return &S3Uploader{cfg: cfg, client: client, now: time.Now}, nil
}

// ObjectKey lays objects out by upload day: memories/YYYY/M/D/<uuid><ext>.
func ObjectKey(t time.Time, ext string) string {
	return fmt.Sprintf("memories/%d/%d/%d/%v%s", t.Year(), int(t.Month()), t.Day(), uuid.New(), strings.ToLower(ext))
}

func (u *S3Uploader) Upload(ctx context.Context, path string) (string, error) {
	data, err := readImage(path)
	if err != nil {
		return "", err
	}

	pc, err := u.presignClient(ctx)
	if err != nil {
		return "", fmt.Errorf("s3 client: %w", err)
	}

	ext := filepath.Ext(path)
	key := ObjectKey(u.now(), ext)
	bucket := u.cfg.Bucket

	put, err := presignPutObject(pc, ctx, &s3.PutObjectInput{
		Bucket: &bucket,
		Key:    &key,
	}, s3.WithPresignExpires(putExpiry))
	if err != nil {
		return "", fmt.Errorf("presign put: %w", err)
	}

	if err := uploadToPresignedURL(ctx, u.client, put.URL, contentType(ext), data); err != nil {
		return "", fmt.Errorf("upload %s: %w", filepath.Base(path), err)
	}

	if u.cfg.PublicBaseURL != "" {
		return strings.TrimRight(u.cfg.PublicBaseURL, "/") + "/" + key, nil
	}

	get, err := presignGetObject(pc, ctx, &s3.GetObjectInput{
		Bucket: &bucket,
		Key:    &key,
	}, s3.WithPresignExpires(getExpiry))
	if err != nil {
		return "", fmt.Errorf("presign get: %w", err)
	}
	return get.URL, nil
}

// presignClient builds the presign client on first use. Only a successful
// client is kept; a failed load is retried on the next upload.
func (u *S3Uploader) presignClient(ctx context.Context) (*s3.PresignClient, error) {
	u.mu.Lock()
	defer u.mu.Unlock()

	if u.presign != nil {
		return u.presign, nil
	}

	opts := []func(*config.LoadOptions) error{config.WithRegion(u.cfg.Region)}
	if u.cfg.AccessKey != "" {
		opts = append(opts, config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			u.cfg.AccessKey, u.cfg.SecretKey, "",
		)))
	}

	cfg, err := loadDefaultAWSConfig(ctx, opts...)
	if err != nil {
		return nil, err
	}

	client := newS3ClientFromConfig(cfg, func(o *s3.Options) {
		if u.cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(u.cfg.Endpoint)
			o.UsePathStyle = true
		}
	})
	u.presign = newS3PresignClient(client)
	return u.presign, nil
}

func readImage(path string) ([]byte, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("image %s: %w", path, err)
	}
	if !info.Mode().IsRegular() {
		return nil, fmt.Errorf("image %s: not a regular file", path)
	}
	if info.Size() > maxUpload {
		return nil, fmt.Errorf("image %s: larger than %d bytes", path, maxUpload)
	}
	return os.ReadFile(path)
}

func contentType(ext string) string {
	if ct := mime.TypeByExtension(strings.ToLower(ext)); ct != "" {
		return ct
	}
	return "application/octet-stream"
}

// LocalPath reports whether image names a file on this machine, accepting
// plain paths and file:// URIs, and returns the path.
func LocalPath(image string) (string, bool) {
	image = strings.TrimSpace(image)
	if image == "" {
		return "", false
	}

	if u, err := url.Parse(image); err == nil && u.Scheme != "" {
		if u.Scheme != "file" {
			return "", false
		}
		image = u.Path
	}

	info, err := os.Stat(image)
	if err != nil || !info.Mode().IsRegular() {
		return "", false
	}
	return image, true
}
