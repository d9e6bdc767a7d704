package service

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"edu_portfolio_backend/internal/config"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// StorageProvider abstracts where uploaded files end up.
type StorageProvider interface {
	// Save stores the object and returns a URL the client can fetch it at.
	Save(ctx context.Context, objectName string, reader io.Reader, size int64, contentType string) (string, error)
	Remove(ctx context.Context, objectName string) error
}

// NewStorageProvider picks a provider from configuration. Unknown types fall
// back to local disk.
func NewStorageProvider(cfg *config.Config) (StorageProvider, error) {
	switch cfg.Storage.Type {
	case "minio":
		return newMinioStorage(cfg)
	default:
		return &localStorage{basePath: cfg.Storage.LocalPath}, nil
	}
}

type localStorage struct {
	basePath string
}

func (s *localStorage) Save(ctx context.Context, objectName string, reader io.Reader, size int64, contentType string) (string, error) {
	fullPath := filepath.Join(s.basePath, objectName)
	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return "", err
	}

	out, err := os.Create(fullPath)
	if err != nil {
		return "", err
	}
	defer out.Close()

	if _, err := io.Copy(out, reader); err != nil {
		os.Remove(fullPath)
		return "", err
	}
	return "/uploads/" + objectName, nil
}

func (s *localStorage) Remove(ctx context.Context, objectName string) error {
	return os.Remove(filepath.Join(s.basePath, objectName))
}

type minioStorage struct {
	client *minio.Client
	bucket string
}

func newMinioStorage(cfg *config.Config) (*minioStorage, error) {
	client, err := minio.New(cfg.Storage.MinioEndpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.Storage.MinioAccessID, cfg.Storage.MinioSecret, ""),
		Secure: false,
	})
	if err != nil {
		return nil, fmt.Errorf("init minio client: %v", err)
	}

	s := &minioStorage{client: client, bucket: cfg.Storage.MinioBucket}

	exists, err := client.BucketExists(context.Background(), s.bucket)
	if err != nil {
		return nil, fmt.Errorf("check minio bucket: %v", err)
	}
	if !exists {
		if err := client.MakeBucket(context.Background(), s.bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("create minio bucket: %v", err)
		}
	}
	return s, nil
}

func (s *minioStorage) Save(ctx context.Context, objectName string, reader io.Reader, size int64, contentType string) (string, error) {
	_, err := s.client.PutObject(ctx, s.bucket, objectName, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s/%s/%s", s.client.EndpointURL().String(), s.bucket, objectName), nil
}

func (s *minioStorage) Remove(ctx context.Context, objectName string) error {
	return s.client.RemoveObject(ctx, s.bucket, objectName, minio.RemoveObjectOptions{})
}
