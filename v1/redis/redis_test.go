package redis

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/Aleph-Alpha/jsondb/v1/collection"
)

func TestConfig_Defaults(t *testing.T) {
	cfg := Config{}.withDefaults()
	assert.Equal(t, DefaultHost, cfg.Host)
	assert.Equal(t, DefaultPort, cfg.Port)
	assert.Equal(t, DefaultKeyPrefix, cfg.KeyPrefix)
	assert.Equal(t, DefaultMaxRetries, cfg.MaxRetries)
	assert.Equal(t, DefaultDialTimeout, cfg.DialTimeout)

	custom := Config{Host: "cache", Port: 7000, KeyPrefix: "app:", MaxRetries: -1}.withDefaults()
	assert.Equal(t, "cache", custom.Host)
	assert.Equal(t, 7000, custom.Port)
	assert.Equal(t, "app:", custom.KeyPrefix)
	assert.Equal(t, -1, custom.MaxRetries)
}

func TestKeys(t *testing.T) {
	r := &RedisClient{cfg: Config{KeyPrefix: "jsondb:"}}
	assert.Equal(t, "jsondb:collection:books", r.collectionKey("books"))
	assert.Equal(t, "jsondb:collections", r.indexKey())
}

func TestTranslateError(t *testing.T) {
	assert.NoError(t, TranslateError(nil, "books"))
	assert.ErrorIs(t, TranslateError(redis.Nil, "books"), collection.ErrCollectionNotFound)
	assert.ErrorIs(t, TranslateError(redis.ErrClosed, "books"), ErrClosed)

	other := errors.New("READONLY")
	assert.Same(t, other, TranslateError(other, "books"))
}

func TestCreateTLSConfig(t *testing.T) {
	cfg, err := createTLSConfig(TLSConfig{Enabled: true}, "cache.internal")
	require.NoError(t, err)
	assert.Equal(t, "cache.internal", cfg.ServerName)

	cfg, err = createTLSConfig(TLSConfig{Enabled: true, ServerName: "override"}, "cache.internal")
	require.NoError(t, err)
	assert.Equal(t, "override", cfg.ServerName)

	_, err = createTLSConfig(TLSConfig{CACertPath: filepath.Join(t.TempDir(), "missing.pem")}, "")
	assert.ErrorContains(t, err, "failed to read CA cert")

	bad := filepath.Join(t.TempDir(), "bad.pem")
	require.NoError(t, os.WriteFile(bad, []byte("not a cert"), 0o600))
	_, err = createTLSConfig(TLSConfig{CACertPath: bad}, "")
	assert.ErrorContains(t, err, "failed to parse CA cert")
}

func TestNewClient_Unreachable(t *testing.T) {
	ctrl := gomock.NewController(t)
	log := NewMockLogger(ctrl)
	log.EXPECT().Error("failed to connect to redis", gomock.Any(), gomock.Any())

	client, err := NewClient(Config{
		Host:        "127.0.0.1",
		Port:        1,
		MaxRetries:  -1,
		DialTimeout: 200 * time.Millisecond,
	}, log)
	require.Error(t, err)
	assert.Nil(t, client)
}
