package storage

import (
	"context"
	"errors"
	"fmt"
	"io"

	gcs "cloud.google.com/go/storage"
	"github.com/petiverse/petiversebackend/config"
	"google.golang.org/api/option"
)

// GCSStore keeps blobs in a Google Cloud Storage bucket. Handles are object
// names.
type GCSStore struct {
	client *gcs.Client
	bucket string
}

func NewGCSStore(ctx context.Context, cfg config.GCSConfig) (*GCSStore, error) {
	var opts []option.ClientOption
	if cfg.CredentialsFile != "" {
		opts = append(opts, option.WithAuthCredentialsFile(option.ServiceAccount, cfg.CredentialsFile))
	}
	client, err := gcs.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("storage.NewClient: %w", err)
	}
	return &GCSStore{client: client, bucket: cfg.Bucket}, nil
}

func (g *GCSStore) Put(ctx context.Context, filename, contentType string, data []byte) (string, error) {
	name := objectKey(filename)

	w := g.client.Bucket(g.bucket).Object(name).If(gcs.Conditions{DoesNotExist: true}).NewWriter(ctx)
	if contentType != "" {
		w.ContentType = contentType
	}
	if _, err := w.Write(data); err != nil {
		_ = w.Close()
		return "", fmt.Errorf("upload %s: %w", filename, err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("upload close %s: %w", filename, err)
	}
	return name, nil
}

func (g *GCSStore) Get(ctx context.Context, handle string) ([]byte, error) {
	if !validKey(handle) {
		return nil, ErrInvalidHandle
	}
	r, err := g.client.Bucket(g.bucket).Object(handle).NewReader(ctx)
	if err != nil {
		if errors.Is(err, gcs.ErrObjectNotExist) {
			return nil, ErrBlobNotFound
		}
		return nil, fmt.Errorf("download %s: %w", handle, err)
	}
	defer r.Close()

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", handle, err)
	}
	return data, nil
}

func (g *GCSStore) Delete(ctx context.Context, handle string) error {
	if !validKey(handle) {
		return ErrInvalidHandle
	}
	if err := g.client.Bucket(g.bucket).Object(handle).Delete(ctx); err != nil {
		if errors.Is(err, gcs.ErrObjectNotExist) {
			return ErrBlobNotFound
		}
		return fmt.Errorf("delete %s: %w", handle, err)
	}
	return nil
}

func (g *GCSStore) Close() error {
	return g.client.Close()
}
