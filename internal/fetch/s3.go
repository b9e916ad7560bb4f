package fetch

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"os"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// S3Fetcher reads snapshots from S3-compatible object storage for image
// records whose URL uses the s3://bucket/key form. It only ever reads;
// image retention stays with the camera feed.
type S3Fetcher struct {
	client *minio.Client
}

// NewS3Fetcher connects to the MinIO endpoint configured through the
// MINIO_ENDPOINT, MINIO_ACCESS_KEY, MINIO_SECRET_KEY and MINIO_USE_SSL
// environment variables.
func NewS3Fetcher() (*S3Fetcher, error) {
	endpoint := os.Getenv("MINIO_ENDPOINT")
	accessKey := os.Getenv("MINIO_ACCESS_KEY")
	secretKey := os.Getenv("MINIO_SECRET_KEY")
	useSSL := os.Getenv("MINIO_USE_SSL") == "true"

	if endpoint == "" || accessKey == "" || secretKey == "" {
		return nil, fmt.Errorf("missing one or more required environment variables: MINIO_ENDPOINT, MINIO_ACCESS_KEY, MINIO_SECRET_KEY")
	}

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create MinIO client: %v", err)
	}
	return &S3Fetcher{client: client}, nil
}

// NewS3FetcherWithClient wraps an existing MinIO client. Used in tests.
func NewS3FetcherWithClient(client *minio.Client) *S3Fetcher {
	return &S3Fetcher{client: client}
}

// Fetch resolves an s3://bucket/key URL to the object's bytes.
func (f *S3Fetcher) Fetch(ctx context.Context, rawURL string) ([]byte, error) {
	bucket, key, err := splitS3URL(rawURL)
	if err != nil {
		return nil, err
	}

	object, err := f.client.GetObject(ctx, bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to get object %s: %v", rawURL, err)
	}
	defer object.Close()

	data, err := io.ReadAll(io.LimitReader(object, maxImageBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read object %s: %v", rawURL, err)
	}
	return data, nil
}

func splitS3URL(rawURL string) (bucket, key string, err error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", "", fmt.Errorf("invalid s3 URL %q: %v", rawURL, err)
	}
	if u.Scheme != "s3" || u.Host == "" {
		return "", "", fmt.Errorf("invalid s3 URL %q: want s3://bucket/key", rawURL)
	}
	key = strings.TrimPrefix(u.Path, "/")
	if key == "" {
		return "", "", fmt.Errorf("invalid s3 URL %q: missing object key", rawURL)
	}
	return u.Host, key, nil
}
