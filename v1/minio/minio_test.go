package minio

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/Aleph-Alpha/jsondb/v1/collection"
)

func TestTranslateError(t *testing.T) {
	plain := errors.New("connection reset")

	tests := []struct {
		name string
		err  error
		want error
	}{
		{"nil", nil, nil},
		{"no such key", minio.ErrorResponse{Code: "NoSuchKey", StatusCode: http.StatusNotFound}, collection.ErrCollectionNotFound},
		{"wrapped no such key", fmt.Errorf("failed to get object stats: %w", minio.ErrorResponse{Code: "NoSuchKey"}), collection.ErrCollectionNotFound},
		{"plain 404", minio.ErrorResponse{StatusCode: http.StatusNotFound}, collection.ErrCollectionNotFound},
		{"access denied", minio.ErrorResponse{Code: "AccessDenied", StatusCode: http.StatusForbidden}, ErrAccessDenied},
		{"unrelated", plain, plain},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TranslateError(tt.err, "books")
			if tt.want == nil {
				assert.NoError(t, got)
				return
			}
			assert.ErrorIs(t, got, tt.want)
		})
	}
}

func TestTranslateError_MissingBucketIsNotACollectionError(t *testing.T) {
	err := minio.ErrorResponse{Code: "NoSuchBucket", StatusCode: http.StatusNotFound}
	got := TranslateError(err, "books")
	assert.False(t, errors.Is(got, collection.ErrCollectionNotFound))
}

func TestObjectKeys(t *testing.T) {
	m := &Minio{cfg: Config{Prefix: "jsondb/"}}

	assert.Equal(t, "jsondb/books.json", m.objectKey("books"))

	tests := map[string]struct {
		name string
		ok   bool
	}{
		"jsondb/books.json":    {"books", true},
		"jsondb/nested/x.json": {"", false},
		"jsondb/readme.txt":    {"", false},
		"other/books.json":     {"", false},
		"jsondb/.json":         {"", false},
	}
	for key, want := range tests {
		name, ok := m.collectionName(key)
		assert.Equal(t, want.ok, ok, key)
		if want.ok {
			assert.Equal(t, want.name, name, key)
		}
	}
}

func TestConfigDefaults(t *testing.T) {
	cfg := Config{}.withDefaults()
	assert.Equal(t, defaultSmallFileThreshold, cfg.DownloadConfig.SmallFileThreshold)
	assert.Equal(t, defaultInitialBufferSize, cfg.DownloadConfig.InitialBufferSize)

	custom := Config{DownloadConfig: DownloadConfig{SmallFileThreshold: 10, InitialBufferSize: 20}}.withDefaults()
	assert.Equal(t, int64(10), custom.DownloadConfig.SmallFileThreshold)
	assert.Equal(t, 20, custom.DownloadConfig.InitialBufferSize)
}

func TestNewClient_EmptyEndpoint(t *testing.T) {
	ctrl := gomock.NewController(t)
	log := NewMockLogger(ctrl)
	log.EXPECT().Error("failed to connect to minio", gomock.Any(), gomock.Any())

	client, err := NewClient(Config{}, log)
	require.Error(t, err)
	assert.Nil(t, client)
}

func TestBufferPool(t *testing.T) {
	pool := NewBufferPool()
	buf := pool.Get()
	buf.WriteString("data")
	pool.Put(buf)

	again := pool.Get()
	again.Reset()
	assert.Equal(t, 0, again.Len())
}
