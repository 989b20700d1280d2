// Package storage holds the receipt image collaborator: something that takes
// an uploaded file and hands back a retrievable URL.
package storage

import (
	"context"
	"io"
)

// Uploader stores a receipt image under the given path and returns the
// public URL it can be retrieved from.
type Uploader interface {
	Upload(ctx context.Context, path string, contentType string, r io.Reader) (string, error)
}
