package media

import (
	"context"
	"fmt"
	"log"
	"mime/multipart"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

type ObjectStorageConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
	// PublicURL prefixes object keys in returned URLs. Defaults to the
	// endpoint with the bucket as first path segment.
	PublicURL string
}

// ObjectStorage uploads to an S3-compatible bucket.
type ObjectStorage struct {
	client    *minio.Client
	bucket    string
	publicURL string
	now       func() time.Time
}

func NewObjectStorage(cfg ObjectStorageConfig) (*ObjectStorage, error) {
	// minio-go expects host:port
	endpoint := strings.TrimPrefix(strings.TrimPrefix(cfg.Endpoint, "http://"), "https://")

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}

	publicURL := strings.TrimRight(cfg.PublicURL, "/")
	if publicURL == "" {
		scheme := "http"
		if cfg.UseSSL {
			scheme = "https"
		}
		publicURL = fmt.Sprintf("%s://%s/%s", scheme, endpoint, cfg.Bucket)
	}

	return &ObjectStorage{client: client, bucket: cfg.Bucket, publicURL: publicURL, now: time.Now}, nil
}

// EnsureBucket creates the bucket if it doesn't exist.
func (s *ObjectStorage) EnsureBucket(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket existence: %w", err)
	}
	if !exists {
		if err := s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{}); err != nil {
			return fmt.Errorf("failed to create bucket %s: %w", s.bucket, err)
		}
	}
	return nil
}

func (s *ObjectStorage) Upload(ctx context.Context, fileHeader *multipart.FileHeader) (*Asset, error) {
	f, err := open(fileHeader, s.now())
	if err != nil {
		return nil, err
	}
	defer f.file.Close()

	_, err = s.client.PutObject(ctx, s.bucket, f.key, f.file, f.size, minio.PutObjectOptions{
		ContentType: f.mimeType,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to put object %s: %w", f.key, err)
	}

	log.Printf("media_upload backend=s3 bucket=%s key=%s size=%d mime=%s", s.bucket, f.key, f.size, f.mimeType)

	return &Asset{
		Key:      f.key,
		URL:      s.publicURL + "/" + f.key,
		MimeType: f.mimeType,
		Size:     f.size,
	}, nil
}
