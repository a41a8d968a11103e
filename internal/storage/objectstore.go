package storage

import (
	"context"
	"fmt"
	"io"

	gcs "cloud.google.com/go/storage"
	"google.golang.org/api/option"
)

// ObjectStore 是錄音成品的物件儲存介面
type ObjectStore interface {
	// Upload 上傳物件並回傳可公開存取的 URL
	Upload(ctx context.Context, key string, body []byte, contentType string) (string, error)
	// Download 取回物件內容與其 content type
	Download(ctx context.Context, key string) ([]byte, string, error)
}

// GCSStore 將物件存入 Google Cloud Storage bucket
type GCSStore struct {
	client *gcs.Client
	bucket string
}

func NewGCSStore(ctx context.Context, bucket, credentialsFile string) (*GCSStore, error) {
	if bucket == "" {
		return nil, fmt.Errorf("gcs: bucket is required")
	}

	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}

	client, err := gcs.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("gcs: failed to create client: %w", err)
	}

	return &GCSStore{client: client, bucket: bucket}, nil
}

func (s *GCSStore) Upload(ctx context.Context, key string, body []byte, contentType string) (string, error) {
	w := s.client.Bucket(s.bucket).Object(key).NewWriter(ctx)
	w.ContentType = contentType

	if _, err := w.Write(body); err != nil {
		_ = w.Close()
		return "", fmt.Errorf("gcs: failed to write object %s: %w", key, err)
	}
	// Close 才會真正送出；在 Close 成功之前物件尚未存在
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("gcs: failed to finalize object %s: %w", key, err)
	}

	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", s.bucket, key), nil
}

func (s *GCSStore) Download(ctx context.Context, key string) ([]byte, string, error) {
	r, err := s.client.Bucket(s.bucket).Object(key).NewReader(ctx)
	if err != nil {
		return nil, "", fmt.Errorf("gcs: failed to open object %s: %w", key, err)
	}
	defer r.Close()

	body, err := io.ReadAll(r)
	if err != nil {
		return nil, "", fmt.Errorf("gcs: failed to read object %s: %w", key, err)
	}
	return body, r.Attrs.ContentType, nil
}

func (s *GCSStore) Close() error {
	return s.client.Close()
}
