package r2

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	miniogo "github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.uber.org/zap"
)

// Storage uploads highlight frames to a Cloudflare R2 bucket through the
// S3-compatible API and serves them from a public domain.
type Storage struct {
	client       *miniogo.Client
	bucket       string
	publicDomain string
	logger       *zap.Logger
}

type StorageConfig struct {
	AccountID    string
	AccessKey    string
	SecretKey    string
	Bucket       string
	PublicDomain string

	// Endpoint and UseSSL override the R2 endpoint derived from
	// AccountID, for tests against a local S3-compatible server.
	Endpoint string
	UseSSL   *bool
}

func NewStorage(cfg StorageConfig, logger *zap.Logger) (*Storage, error) {
	endpoint := cfg.Endpoint
	secure := true
	if endpoint == "" {
		endpoint = fmt.Sprintf("%s.r2.cloudflarestorage.com", cfg.AccountID)
	}
	if cfg.UseSSL != nil {
		secure = *cfg.UseSSL
	}

	client, err := miniogo.New(endpoint, &miniogo.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: secure,
		Region: "auto",
	})
	if err != nil {
		return nil, fmt.Errorf("create r2 client: %w", err)
	}

	return &Storage{
		client:       client,
		bucket:       cfg.Bucket,
		publicDomain: strings.TrimRight(cfg.PublicDomain, "/"),
		logger:       logger,
	}, nil
}

// EnsureBucket creates the bucket when it does not exist yet.
func (s *Storage) EnsureBucket(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("check bucket %s: %w", s.bucket, err)
	}
	if !exists {
		if err := s.client.MakeBucket(ctx, s.bucket, miniogo.MakeBucketOptions{}); err != nil {
			return fmt.Errorf("create bucket %s: %w", s.bucket, err)
		}
	}
	return nil
}

// Upload pushes a local file and returns its public URL.
func (s *Storage) Upload(ctx context.Context, localPath, objectKey string) (string, error) {
	_, err := s.client.FPutObject(ctx, s.bucket, objectKey, localPath, miniogo.PutObjectOptions{
		ContentType: contentTypeFor(localPath),
	})
	if err != nil {
		return "", fmt.Errorf("upload %s: %w", objectKey, err)
	}

	url := s.publicDomain + "/" + objectKey
	s.logger.Info("uploaded to r2", zap.String("key", objectKey), zap.String("url", url))
	return url, nil
}

// CleanupOlderThan deletes bucket objects past the retention window.
func (s *Storage) CleanupOlderThan(ctx context.Context, retention time.Duration) error {
	cutoff := time.Now().UTC().Add(-retention)

	expired := 0
	objectsCh := make(chan miniogo.ObjectInfo)
	go func() {
		defer close(objectsCh)
		for obj := range s.client.ListObjects(ctx, s.bucket, miniogo.ListObjectsOptions{Recursive: true}) {
			if obj.Err != nil {
				s.logger.Error("list objects", zap.Error(obj.Err))
				return
			}
			if obj.LastModified.Before(cutoff) {
				expired++
				objectsCh <- obj
			}
		}
	}()

	// The result channel only carries failures; drain it fully so the
	// lister goroutine is never left blocked on objectsCh.
	failed := 0
	var removeErr error
	for rErr := range s.client.RemoveObjects(ctx, s.bucket, objectsCh, miniogo.RemoveObjectsOptions{}) {
		failed++
		if removeErr == nil {
			removeErr = fmt.Errorf("remove object %s: %w", rErr.ObjectName, rErr.Err)
		}
	}
	if removeErr != nil {
		return removeErr
	}

	s.logger.Info("r2 retention cleanup finished",
		zap.Time("cutoff", cutoff),
		zap.Int("deleted", expired-failed),
	)
	return nil
}

func contentTypeFor(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	default:
		return "application/octet-stream"
	}
}
