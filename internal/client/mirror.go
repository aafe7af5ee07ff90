package client

import (
	"context"
	"io"
)

// Mirror copies an uploaded file to a remote storage backend.
type Mirror interface {
	Upload(ctx context.Context, name, contentType string, r io.Reader) (*MirroredFile, error)
	// Name identifies the backend in logs and upload records ("gdrive", "s3").
	Name() string
}

// MirroredFile is the remote identity of a mirrored file.
type MirroredFile struct {
	ID  string
	URL string
}
