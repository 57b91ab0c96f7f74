package service

import (
	"context"

	"github.com/pkg/errors"
)

// ErrArtifactNotFound is returned when no object exists under the key.
var ErrArtifactNotFound = errors.New("artifact not found")

// Artifact is a stored object read back from storage.
type Artifact struct {
	Data        []byte
	ContentType string
}

// ArtifactStorage stores generated files and uploaded logos under keys.
type ArtifactStorage interface {
	// Put writes the object and returns its public URL.
	Put(ctx context.Context, key string, data []byte, contentType string) (string, error)

	Get(ctx context.Context, key string) (*Artifact, error)

	Delete(ctx context.Context, key string) error

	// KeyFromURL recovers the key from a URL returned by Put, false for foreign URLs.
	KeyFromURL(url string) (string, bool)
}
