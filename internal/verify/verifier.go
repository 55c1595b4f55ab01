package verify

import (
	"context"
	"errors"
)

// ErrNoFace reports that the matcher could not find a usable face in the
// candidate image. This is a verdict about the image, not a transport
// failure, so the headshot is marked suspicious rather than retried.
var ErrNoFace = errors.New("no face detected in image")

// ObjectStore fetches captured media by URL or by key in the configured
// bucket.
type ObjectStore interface {
	FetchURL(ctx context.Context, rawURL string) ([]byte, error)
	FetchKey(ctx context.Context, key string) ([]byte, error)
}

// FaceVerifier decides whether a candidate headshot shows the same person as
// the reference image. Errors other than ErrNoFace are treated as transient.
type FaceVerifier interface {
	Verify(ctx context.Context, reference, candidate []byte) (bool, error)
}
