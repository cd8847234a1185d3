package redis

import (
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/Aleph-Alpha/jsondb/v1/collection"
)

// ErrClosed is returned when the client has been closed.
var ErrClosed = errors.New("redis: client is closed")

// TranslateError maps go-redis errors onto store sentinels. A missing key
// becomes collection.ErrCollectionNotFound for the named collection.
func TranslateError(err error, name string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, redis.Nil):
		return fmt.Errorf("%w: %s", collection.ErrCollectionNotFound, name)
	case errors.Is(err, redis.ErrClosed):
		return ErrClosed
	default:
		return err
	}
}
