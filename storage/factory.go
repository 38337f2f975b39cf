package storage

import (
	"context"
	"fmt"

	"github.com/petiverse/petiversebackend/config"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

// New opens the backend cfg.BlobBackend selects. db is only used by gridfs.
func New(ctx context.Context, cfg *config.Config, db *mongo.Database) (BlobStore, error) {
	switch cfg.BlobBackend {
	case config.BlobBackendGridFS:
		return NewGridFSStore(db), nil
	case config.BlobBackendS3:
		s, err := NewS3Store(ctx, cfg.S3)
		if err != nil {
			return nil, err
		}
		return s, nil
	case config.BlobBackendGCS:
		g, err := NewGCSStore(ctx, cfg.GCS)
		if err != nil {
			return nil, err
		}
		return g, nil
	}
	return nil, fmt.Errorf("unknown blob backend %q", cfg.BlobBackend)
}
