package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

// GridFSStore keeps blobs in the default GridFS bucket of the service
// database. Handles are the hex file ids.
type GridFSStore struct {
	bucket *mongo.GridFSBucket
}

func NewGridFSStore(db *mongo.Database) *GridFSStore {
	return &GridFSStore{bucket: db.GridFSBucket()}
}

func (g *GridFSStore) Put(ctx context.Context, filename, _ string, data []byte) (string, error) {
	id, err := g.bucket.UploadFromStream(ctx, filename, bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("gridfs upload %s: %w", filename, err)
	}
	return id.Hex(), nil
}

func (g *GridFSStore) Get(ctx context.Context, handle string) ([]byte, error) {
	id, err := bson.ObjectIDFromHex(handle)
	if err != nil {
		return nil, ErrInvalidHandle
	}

	var buf bytes.Buffer
	if _, err := g.bucket.DownloadToStream(ctx, id, &buf); err != nil {
		if errors.Is(err, mongo.ErrFileNotFound) {
			return nil, ErrBlobNotFound
		}
		return nil, fmt.Errorf("gridfs download %s: %w", handle, err)
	}
	return buf.Bytes(), nil
}

func (g *GridFSStore) Delete(ctx context.Context, handle string) error {
	id, err := bson.ObjectIDFromHex(handle)
	if err != nil {
		return ErrInvalidHandle
	}
	if err := g.bucket.Delete(ctx, id); err != nil {
		if errors.Is(err, mongo.ErrFileNotFound) {
			return ErrBlobNotFound
		}
		return fmt.Errorf("gridfs delete %s: %w", handle, err)
	}
	return nil
}
