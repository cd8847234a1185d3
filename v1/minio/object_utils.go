package minio

import (
	"context"
	"fmt"
	"io"

	"github.com/minio/minio-go/v7"
)

// Put uploads an object to the configured bucket.
func (m *Minio) Put(ctx context.Context, objectKey string, reader io.Reader, size ...int64) (int64, error) {
	actualSize := unknownSize
	if len(size) > 0 && size[0] != 0 {
		actualSize = size[0]
	}

	info, err := m.client().PutObject(ctx, m.cfg.Connection.BucketName, objectKey, reader, actualSize, minio.PutObjectOptions{
		ContentType: "application/json",
	})
	if err != nil {
		return 0, err
	}
	return info.Size, nil
}

// Get returns the contents of an object. Small objects are read into an
// exactly sized slice; larger ones go through the buffer pool.
func (m *Minio) Get(ctx context.Context, objectKey string) ([]byte, error) {
	reader, err := m.client().GetObject(ctx, m.cfg.Connection.BucketName, objectKey, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to get object: %w", err)
	}
	defer func() {
		if err := reader.Close(); err != nil {
			m.logger.Error("failed to close object reader", err, map[string]interface{}{
				"object": objectKey,
			})
		}
	}()

	// GetObject is lazy; a missing key surfaces here.
	info, err := reader.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to get object stats: %w", err)
	}

	if info.Size < m.cfg.DownloadConfig.SmallFileThreshold {
		data := make([]byte, info.Size)
		if _, err := io.ReadFull(reader, data); err != nil {
			return nil, fmt.Errorf("failed to read object data: %w", err)
		}
		return data, nil
	}

	buffer := m.bufferPool.Get()
	defer m.bufferPool.Put(buffer)
	buffer.Reset()
	buffer.Grow(int(min(info.Size, int64(m.cfg.DownloadConfig.InitialBufferSize))))

	if _, err := io.Copy(buffer, reader); err != nil {
		return nil, fmt.Errorf("failed to read large object: %w", err)
	}

	result := make([]byte, buffer.Len())
	copy(result, buffer.Bytes())
	return result, nil
}

// Stat returns object metadata.
func (m *Minio) Stat(ctx context.Context, objectKey string) (minio.ObjectInfo, error) {
	return m.client().StatObject(ctx, m.cfg.Connection.BucketName, objectKey, minio.StatObjectOptions{})
}

// Delete removes an object from the bucket.
func (m *Minio) Delete(ctx context.Context, objectKey string) error {
	return m.client().RemoveObject(ctx, m.cfg.Connection.BucketName, objectKey, minio.RemoveObjectOptions{})
}

// ListPrefix returns the keys of all objects under prefix.
func (m *Minio) ListPrefix(ctx context.Context, prefix string) ([]string, error) {
	var keys []string
	for obj := range m.client().ListObjects(ctx, m.cfg.Connection.BucketName, minio.ListObjectsOptions{
		Prefix:    prefix,
		Recursive: true,
	}) {
		if obj.Err != nil {
			return nil, fmt.Errorf("failed to list objects: %w", obj.Err)
		}
		keys = append(keys, obj.Key)
	}
	return keys, nil
}
