package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"formsight/internal/config"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// LocalURLPrefix is the path LocalProvider archives are served under
const LocalURLPrefix = "/exports/"

// ErrNotFound is returned when deleting an archive that does not exist
var ErrNotFound = errors.New("archive not found")

// Provider stores export archives
type Provider interface {
	Upload(ctx context.Context, name string, reader io.Reader, size int64, contentType string) (string, error)
	Delete(ctx context.Context, name string) error
	GetURL(name string) string
}

// NewProvider builds the provider selected by cfg.Type
func NewProvider(ctx context.Context, cfg *config.ArchiveConfig) (Provider, error) {
	switch cfg.Type {
	case "minio":
		return NewMinioProvider(ctx, cfg)
	case "local", "":
		return NewLocalProvider(cfg.LocalPath)
	}
	return nil, fmt.Errorf("unknown archive type %q", cfg.Type)
}

// LocalProvider writes archives under a directory on disk
type LocalProvider struct {
	root string
}

func NewLocalProvider(root string) (*LocalProvider, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, err
	}
	return &LocalProvider{root: root}, nil
}

func (p *LocalProvider) path(name string) (string, error) {
	dst := filepath.Join(p.root, filepath.FromSlash(name))
	rel, err := filepath.Rel(p.root, dst)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("archive name %q escapes the storage root", name)
	}
	return dst, nil
}

func (p *LocalProvider) Upload(ctx context.Context, name string, reader io.Reader, size int64, contentType string) (string, error) {
	dst, err := p.path(name)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return "", err
	}

	out, err := os.Create(dst)
	if err != nil {
		return "", err
	}
	defer out.Close()

	if _, err := io.Copy(out, reader); err != nil {
		return "", err
	}
	return p.GetURL(name), nil
}

func (p *LocalProvider) Delete(ctx context.Context, name string) error {
	dst, err := p.path(name)
	if err != nil {
		return err
	}
	err = os.Remove(dst)
	if errors.Is(err, os.ErrNotExist) {
		return ErrNotFound
	}
	return err
}

func (p *LocalProvider) GetURL(name string) string {
	return LocalURLPrefix + name
}

// Handler serves stored archives at the URLs GetURL hands out
func (p *LocalProvider) Handler() http.Handler {
	return http.StripPrefix(LocalURLPrefix, http.FileServer(http.Dir(p.root)))
}

// MinioProvider writes archives to a MinIO (or any S3-compatible) bucket
type MinioProvider struct {
	client *minio.Client
	bucket string
}

func NewMinioProvider(ctx context.Context, cfg *config.ArchiveConfig) (*MinioProvider, error) {
	client, err := minio.New(cfg.MinioEndpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.MinioAccessKey, cfg.MinioSecretKey, ""),
		Secure: cfg.MinioSecure,
	})
	if err != nil {
		return nil, err
	}

	exists, err := client.BucketExists(ctx, cfg.MinioBucket)
	if err != nil {
		return nil, fmt.Errorf("check bucket %s: %w", cfg.MinioBucket, err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.MinioBucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("create bucket %s: %w", cfg.MinioBucket, err)
		}
	}
	return &MinioProvider{client: client, bucket: cfg.MinioBucket}, nil
}

func (p *MinioProvider) Upload(ctx context.Context, name string, reader io.Reader, size int64, contentType string) (string, error) {
	_, err := p.client.PutObject(ctx, p.bucket, name, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", err
	}
	return p.GetURL(name), nil
}

func (p *MinioProvider) Delete(ctx context.Context, name string) error {
	// RemoveObject succeeds for missing keys
	if _, err := p.client.StatObject(ctx, p.bucket, name, minio.StatObjectOptions{}); err != nil {
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			return ErrNotFound
		}
		return err
	}
	return p.client.RemoveObject(ctx, p.bucket, name, minio.RemoveObjectOptions{})
}

func (p *MinioProvider) GetURL(name string) string {
	return "/" + p.bucket + "/" + name
}
