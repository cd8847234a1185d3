//go:build integration

package minio

import (
	"context"
	"fmt"
	"net"
	"testing"
	"time"

	"github.com/docker/docker/api/types/container"
	"github.com/docker/go-connections/nat"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/fx"
	"go.uber.org/fx/fxtest"
	"go.uber.org/zap/zaptest"

	"github.com/Aleph-Alpha/jsondb/v1/collection"
	"github.com/Aleph-Alpha/jsondb/v1/logger"
)

type track struct {
	ID    string `jsondb:"id" json:"id"`
	Title string `json:"title"`
	No    int    `json:"no"`
}

func createMinIOContainer(ctx context.Context, t *testing.T) string {
	t.Helper()

	port, err := getFreePort()
	require.NoError(t, err)
	portStr := fmt.Sprintf("%d", port)

	req := testcontainers.ContainerRequest{
		Image: "minio/minio:RELEASE.2024-01-16T16-07-38Z",
		Cmd:   []string{"server", "/data"},
		Env: map[string]string{
			"MINIO_ACCESS_KEY": "minio_admin",
			"MINIO_SECRET_KEY": "minio_admin",
		},
		ExposedPorts: []string{"9000/tcp"},
		HostConfigModifier: func(cfg *container.HostConfig) {
			cfg.PortBindings = nat.PortMap{
				"9000/tcp": []nat.PortBinding{{HostPort: portStr}},
			}
		},
		WaitingFor: wait.ForAll(
			wait.ForListeningPort("9000/tcp").WithStartupTimeout(20*time.Second),
			wait.ForHTTP("/minio/health/ready").WithPort("9000/tcp").WithStartupTimeout(20*time.Second),
		),
	}

	c, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Terminate(context.Background()) })

	host, err := c.Host(ctx)
	require.NoError(t, err)
	return net.JoinHostPort(host, portStr)
}

func getFreePort() (int, error) {
	l, err := net.Listen("tcp", "localhost:0")
	if err != nil {
		return 0, err
	}
	defer l.Close()
	return l.Addr().(*net.TCPAddr).Port, nil
}

func testConfig(endpoint string) Config {
	return Config{
		Connection: ConnectionConfig{
			Endpoint:        endpoint,
			AccessKeyID:     "minio_admin",
			SecretAccessKey: "minio_admin",
			BucketName:      "jsondb-test",
		},
		Prefix: "collections/",
	}
}

func TestMinioBackend_Integration(t *testing.T) {
	ctx := context.Background()
	endpoint := createMinIOContainer(ctx, t)
	log := logger.NewFromZap(zaptest.NewLogger(t), false)

	client, err := NewClient(testConfig(endpoint), log)
	require.NoError(t, err)
	defer client.Close()

	_, err = client.Load(ctx, "tracks")
	assert.ErrorIs(t, err, collection.ErrCollectionNotFound)
	assert.ErrorIs(t, client.Drop(ctx, "tracks"), collection.ErrCollectionNotFound)

	store := collection.NewStore(collection.Config{AutoCreateCollections: true}, client, log)
	for i := 1; i <= 6; i++ {
		require.NoError(t, store.Insert(ctx, &track{Title: fmt.Sprintf("Track %d", i), No: i}))
	}

	names, err := client.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"tracks"}, names)

	reloaded := collection.NewStore(collection.Config{}, client, log)
	require.NoError(t, reloaded.Load(ctx))

	var tracks []track
	require.NoError(t, reloaded.Find(ctx, &tracks, collection.Query{Slice: "1::2"}))
	require.Len(t, tracks, 3)
	assert.Equal(t, []int{2, 4, 6}, []int{tracks[0].No, tracks[1].No, tracks[2].No})

	require.NoError(t, reloaded.DropCollection(ctx, "tracks"))
	names, err = client.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestMinioFXModule_Integration(t *testing.T) {
	ctx := context.Background()
	endpoint := createMinIOContainer(ctx, t)

	var backend collection.Backend
	app := fxtest.New(t,
		fx.Supply(testConfig(endpoint), logger.NewFromZap(zaptest.NewLogger(t), false)),
		FXModule,
		fx.Populate(&backend),
	)
	app.RequireStart()

	require.NoError(t, backend.Save(ctx, "fx", []collection.Document{{ID: "a", Body: []byte(`{"id":"a"}`)}}))
	docs, err := backend.Load(ctx, "fx")
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "a", docs[0].ID)

	app.RequireStop()
}
