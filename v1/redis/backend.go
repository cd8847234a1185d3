package redis

import (
	"context"
	"fmt"
	"slices"

	"github.com/redis/go-redis/v9"

	"github.com/Aleph-Alpha/jsondb/v1/codec"
	"github.com/Aleph-Alpha/jsondb/v1/collection"
)

var _ collection.Backend = (*RedisClient)(nil)

func (r *RedisClient) collectionKey(name string) string {
	return r.cfg.KeyPrefix + "collection:" + name
}

func (r *RedisClient) indexKey() string {
	return r.cfg.KeyPrefix + "collections"
}

func (r *RedisClient) Load(ctx context.Context, name string) ([]collection.Document, error) {
	data, err := r.client.Get(ctx, r.collectionKey(name)).Bytes()
	if err != nil {
		return nil, TranslateError(err, name)
	}

	var docs []collection.Document
	if err := codec.Default().Unmarshal(data, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode collection %s: %w", name, err)
	}
	return docs, nil
}

// Save writes the collection and registers its name in one MULTI/EXEC.
func (r *RedisClient) Save(ctx context.Context, name string, docs []collection.Document) error {
	if err := collection.ValidateName(name); err != nil {
		return err
	}
	if docs == nil {
		docs = []collection.Document{}
	}

	data, err := codec.Default().Marshal(docs)
	if err != nil {
		return fmt.Errorf("failed to encode collection %s: %w", name, err)
	}

	_, err = r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, r.collectionKey(name), data, 0)
		pipe.SAdd(ctx, r.indexKey(), name)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to save collection %s: %w", name, TranslateError(err, name))
	}
	return nil
}

func (r *RedisClient) Drop(ctx context.Context, name string) error {
	var removed *redis.IntCmd
	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		removed = pipe.Del(ctx, r.collectionKey(name))
		pipe.SRem(ctx, r.indexKey(), name)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to drop collection %s: %w", name, TranslateError(err, name))
	}
	if removed.Val() == 0 {
		return fmt.Errorf("%w: %s", collection.ErrCollectionNotFound, name)
	}
	return nil
}

func (r *RedisClient) List(ctx context.Context) ([]string, error) {
	names, err := r.client.SMembers(ctx, r.indexKey()).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list collections: %w", TranslateError(err, ""))
	}
	slices.Sort(names)
	return names, nil
}
