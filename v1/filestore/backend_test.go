package filestore

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx"
	"go.uber.org/fx/fxtest"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap/zaptest"

	"github.com/Aleph-Alpha/jsondb/v1/collection"
	"github.com/Aleph-Alpha/jsondb/v1/logger"
)

type note struct {
	ID   string `jsondb:"id" json:"id"`
	Text string `json:"text"`
}

func newBackend(t *testing.T, dir string) *Backend {
	t.Helper()
	b, err := New(Config{Directory: dir}, logger.NewFromZap(zaptest.NewLogger(t), false))
	require.NoError(t, err)
	return b
}

func TestNew_RequiresDirectory(t *testing.T) {
	ctrl := gomock.NewController(t)
	_, err := New(Config{}, NewMockLogger(ctrl))
	assert.Error(t, err)
}

func TestNew_CreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "data")
	ctrl := gomock.NewController(t)
	log := NewMockLogger(ctrl)
	log.EXPECT().Info("file backend ready", nil, gomock.Any())

	_, err := New(Config{Directory: dir}, log)
	require.NoError(t, err)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestBackend_SaveAndLoad(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	b := newBackend(t, dir)

	docs := []collection.Document{
		{ID: "1", Body: []byte(`{"id":"1","text":"first"}`)},
		{ID: "2", Body: []byte(`{"id":"2","text":"second"}`)},
	}
	require.NoError(t, b.Save(ctx, "notes", docs))

	got, err := b.Load(ctx, "notes")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "1", got[0].ID)
	assert.Equal(t, "2", got[1].ID)
	assert.JSONEq(t, `{"id":"2","text":"second"}`, string(got[1].Body))

	info, err := os.Stat(filepath.Join(dir, "notes.json"))
	require.NoError(t, err)
	assert.Equal(t, DefaultFileMode, info.Mode().Perm())

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary files must not be left behind")
}

func TestBackend_SaveEmptyCollection(t *testing.T) {
	ctx := context.Background()
	b := newBackend(t, t.TempDir())

	require.NoError(t, b.Save(ctx, "empty", nil))
	got, err := b.Load(ctx, "empty")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestBackend_LoadMissing(t *testing.T) {
	b := newBackend(t, t.TempDir())
	_, err := b.Load(context.Background(), "missing")
	assert.ErrorIs(t, err, collection.ErrCollectionNotFound)
}

func TestBackend_LoadCorrupt(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.json"), []byte("{not json"), 0o644))

	b := newBackend(t, dir)
	_, err := b.Load(context.Background(), "bad")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to decode collection bad")
}

func TestBackend_InvalidName(t *testing.T) {
	ctx := context.Background()
	b := newBackend(t, t.TempDir())

	assert.ErrorIs(t, b.Save(ctx, "../escape", nil), collection.ErrInvalidName)
	_, err := b.Load(ctx, "")
	assert.ErrorIs(t, err, collection.ErrInvalidName)
}

func TestBackend_ListAndDrop(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	b := newBackend(t, dir)

	require.NoError(t, b.Save(ctx, "b", nil))
	require.NoError(t, b.Save(ctx, "a", nil))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "README.txt"), []byte("x"), 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub.json"), 0o755))

	names, err := b.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, names)

	require.NoError(t, b.Drop(ctx, "a"))
	assert.ErrorIs(t, b.Drop(ctx, "a"), collection.ErrCollectionNotFound)

	names, err = b.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"b"}, names)
}

func TestBackend_StoreSurvivesRestart(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	log := logger.NewFromZap(zaptest.NewLogger(t), false)

	first := collection.NewStore(collection.Config{AutoCreateCollections: true}, newBackend(t, dir), log)
	for _, text := range []string{"a", "b", "c", "d"} {
		require.NoError(t, first.Insert(ctx, &note{ID: text, Text: text}))
	}

	second := collection.NewStore(collection.Config{}, newBackend(t, dir), log)
	require.NoError(t, second.Load(ctx))

	var got []note
	require.NoError(t, second.Find(ctx, &got, collection.Query{Slice: "::-2"}))
	require.Len(t, got, 2)
	assert.Equal(t, "d", got[0].ID)
	assert.Equal(t, "b", got[1].ID)
}

func TestFXModule(t *testing.T) {
	dir := t.TempDir()

	var backend collection.Backend
	app := fxtest.New(t,
		fx.Supply(Config{Directory: dir}, logger.NewFromZap(zaptest.NewLogger(t), false)),
		FXModule,
		fx.Populate(&backend),
	)
	app.RequireStart()
	defer app.RequireStop()

	require.NoError(t, backend.Save(context.Background(), "x", nil))
	_, err := os.Stat(filepath.Join(dir, "x.json"))
	assert.NoError(t, err)
}
