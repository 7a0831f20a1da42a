package ports

import (
	"context"
	"io"
)

// ObjectStorage stores uploaded venue photos and returns the object key.
type ObjectStorage interface {
	Upload(ctx context.Context, bucket, objectName, contentType string, reader io.Reader, size int64) (string, error)
}
