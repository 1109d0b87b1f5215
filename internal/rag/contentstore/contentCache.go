package contentstore

import (
	"context"
	"crypto/md5"
	"encoding/hex"

	"github.com/yatharthchopra2424/Bajaj-Policy-MVP-Rag/internal/config"
	"github.com/yatharthchopra2424/Bajaj-Policy-MVP-Rag/internal/data/redisStore"
	"github.com/yatharthchopra2424/Bajaj-Policy-MVP-Rag/pkg/logger_i"
)

// ContentCache keeps extracted document text in redis so that slide decks and
// spreadsheets, whose extraction walks whole zip archives, are only parsed
// once per url. It is nil-safe throughout: with redis offline every method
// degrades to a miss.
type ContentCache struct {
	store  *redisStore.Store
	logger *logger_i.Logger
}

func NewContentCache(ctx context.Context) *ContentCache {
	return &ContentCache{
		store:  redisStore.GetRedisStore(ctx, config.RedisContentCache),
		logger: logger_i.NewLogger("contentCache"),
	}
}

// NewContentCacheWithStore exists for tests that bring their own redis.
func NewContentCacheWithStore(store *redisStore.Store) *ContentCache {
	return &ContentCache{
		store:  store,
		logger: logger_i.NewLogger("contentCache"),
	}
}

func (c *ContentCache) Available() bool {
	return c != nil && c.store != nil
}

func contentKey(url string) string {
	sum := md5.Sum([]byte(url))
	return "md:" + hex.EncodeToString(sum[:])
}

func (c *ContentCache) Get(ctx context.Context, url string) (string, bool) {
	if c == nil || c.store == nil {
		return "", false
	}
	text, err := c.store.Get(ctx, contentKey(url))
	if err != nil {
		if !c.store.IsNil(err) {
			c.logger.Warn("content cache read failed", "error", err)
		}
		return "", false
	}
	return text, true
}

func (c *ContentCache) Put(ctx context.Context, url string, text string) {
	if c == nil || c.store == nil || text == "" {
		return
	}
	if err := c.store.Set(ctx, contentKey(url), text, config.RedisContentCacheTTL); err != nil {
		c.logger.Warn("content cache write failed", "error", err)
	}
}
