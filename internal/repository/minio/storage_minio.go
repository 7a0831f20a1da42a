package minio

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/nuitmaroc/nightlife-api/internal/repository/ports"
)

func NewClient(endpoint, key, secret string, useSSL bool) (*minio.Client, error) {
	return minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(key, secret, ""),
		Secure: useSSL,
	})
}

// Storage uploads venue photos and resolves their public URLs. PublicBaseURL
// points at the CDN or reverse proxy fronting the bucket.
type Storage struct {
	client        *minio.Client
	publicBaseURL string
}

func NewStorage(client *minio.Client, publicBaseURL string) *Storage {
	return &Storage{client: client, publicBaseURL: strings.TrimRight(publicBaseURL, "/")}
}

func (s *Storage) Upload(ctx context.Context, bucket, objectName, contentType string, reader io.Reader, size int64) (string, error) {
	_, err := s.client.PutObject(ctx, bucket, objectName, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("upload %s/%s: %w", bucket, objectName, err)
	}
	return s.publicURL(bucket, objectName), nil
}

func (s *Storage) publicURL(bucket, objectName string) string {
	escaped := url.PathEscape(objectName)
	// PathEscape encodes the separators too; keep the object key readable.
	escaped = strings.ReplaceAll(escaped, "%2F", "/")
	if s.publicBaseURL != "" {
		return s.publicBaseURL + "/" + bucket + "/" + escaped
	}
	return s.client.EndpointURL().String() + "/" + bucket + "/" + escaped
}

var _ ports.ObjectStorage = (*Storage)(nil)
