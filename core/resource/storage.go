package resource

import (
	"context"
	"fmt"

	"asset-loader/core/storage"

	"github.com/minio/minio-go/v7"
)

// StorageFetcher fetches resources from an object storage bucket. It is the
// fetcher behind LoadTypeStorage; the resource URL is used as the object key.
type StorageFetcher struct {
	client storage.Client
	bucket string
}

// NewStorageFetcher creates a fetcher reading from the given bucket.
func NewStorageFetcher(client storage.Client, bucket string) *StorageFetcher {
	return &StorageFetcher{client: client, bucket: bucket}
}

// Fetch downloads the object named by r.URL and reports progress while
// streaming. Object size is resolved with a stat call up front so consumers
// get a meaningful total.
func (f *StorageFetcher) Fetch(ctx context.Context, r *Resource, report func(Progress)) ([]byte, error) {
	total := int64(-1)
	if info, err := f.client.StatObject(ctx, f.bucket, r.URL, minio.StatObjectOptions{}); err == nil {
		total = info.Size
	}

	obj, err := f.client.GetObject(ctx, f.bucket, r.URL, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to get object %q: %w", r.URL, err)
	}
	defer obj.Close()

	data, err := readAll(obj, total, report)
	if err != nil {
		return nil, fmt.Errorf("failed to read object %q: %w", r.URL, err)
	}
	return data, nil
}
