// Package storage persists binary image payloads behind a generated handle.
package storage

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
	"unicode"

	"github.com/google/uuid"
	"golang.org/x/text/unicode/norm"
)

var (
	// ErrBlobNotFound means the handle names nothing in the store.
	ErrBlobNotFound = errors.New("blob not found")
	// ErrInvalidHandle means the handle cannot belong to this store.
	ErrInvalidHandle = errors.New("invalid blob handle")
)

// BlobStore is the gateway for image payloads. Put returns the handle that
// Get and Delete accept.
type BlobStore interface {
	Put(ctx context.Context, filename, contentType string, data []byte) (string, error)
	Get(ctx context.Context, handle string) ([]byte, error)
	Delete(ctx context.Context, handle string) error
}

// DeleteAll removes every handle and returns the first failure.
func DeleteAll(ctx context.Context, store BlobStore, handles []string) error {
	var firstErr error
	for _, h := range handles {
		if h == "" {
			continue
		}
		if err := store.Delete(ctx, h); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("delete %s: %w", h, err)
		}
	}
	return firstErr
}

var nonAlnum = regexp.MustCompile(`[^a-z0-9]+`)

const maxStemLen = 48

// keyStem turns an uploaded filename into the readable part of its object
// key: directory and extension dropped, accents folded, runs of anything
// else collapsed to "-". Client filenames can be arbitrarily long, so the
// stem is cut at maxStemLen.
func keyStem(filename string) string {
	base := filepath.Base(strings.ReplaceAll(filename, "\\", "/"))
	base = strings.TrimSuffix(base, filepath.Ext(base))

	var b strings.Builder
	for _, r := range norm.NFD.String(strings.ToLower(base)) {
		if !unicode.Is(unicode.Mn, r) {
			b.WriteRune(r)
		}
	}

	stem := strings.Trim(nonAlnum.ReplaceAllString(b.String(), "-"), "-")
	if len(stem) > maxStemLen {
		stem = strings.TrimRight(stem[:maxStemLen], "-")
	}
	if stem == "" {
		return "image"
	}
	return stem
}

// objectKey names a bucket object for an uploaded file:
// products/<stem>/<uuid><ext>.
func objectKey(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	if ext == "" || nonAlnum.MatchString(ext[1:]) {
		ext = ".bin"
	}
	return fmt.Sprintf("products/%s/%s%s", keyStem(filename), uuid.New().String(), ext)
}

// validKey rejects handles that could not have come from objectKey.
func validKey(handle string) bool {
	return strings.HasPrefix(handle, "products/") && !strings.Contains(handle, "..")
}
