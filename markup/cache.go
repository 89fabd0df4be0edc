package markup

import (
	"context"
	"log/slog"
	"strconv"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/zeebo/xxh3"
)

// CacheSize is the number of parsed documents [ParseCached] keeps. The
// least recently used document is evicted first.
const CacheSize = 256

// cache stores parsed documents keyed by source hash and options.
var cache = newCache()

func newCache() *lru.Cache[cacheKey, *entry] {
	// lru.New only fails for a non-positive size.
	c, _ := lru.New[cacheKey, *entry](CacheSize)

	return c
}

type cacheKey struct {
	hash       uint64
	size       int
	permissive bool
}

// entry holds the result of parsing its source once. done is closed when
// the result is ready.
type entry struct {
	done chan struct{}
	doc  *Document
	err  error
}

// ParseCached is like [Parse] but returns a shared Document for text that
// was parsed recently with the same options. Failed parses are cached too.
func ParseCached(ctx context.Context, text string, opts ...Option) (*Document, error) {
	o := applyOptions(opts...)

	key := cacheKey{
		hash:       xxh3.HashString(text),
		size:       len(text),
		permissive: o.permissive,
	}

	e, hit := cache.Get(key)
	if !hit {
		fresh := &entry{done: make(chan struct{})}
		if prev, ok, _ := cache.PeekOrAdd(key, fresh); ok {
			e, hit = prev, true
		} else {
			e = fresh
			e.doc, e.err = parse(ctx, text, o)
			close(e.done)
		}
	}

	o.logger.TraceContext(ctx, "cache lookup",
		slog.String("source_hash", strconv.FormatUint(key.hash, 16)),
		slog.Bool("cache_hit", hit),
	)

	<-e.done

	return e.doc, e.err
}

// CacheLen returns the number of cached documents.
func CacheLen() int { return cache.Len() }

// ClearCache removes all cached documents.
func ClearCache() {
	cache.Purge()
}
