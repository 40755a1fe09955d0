package recommendvendors

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"eventhub-workers/internal/common/database"
	"eventhub-workers/internal/recommender"
)

const cacheKeyPrefix = "recommendations:v1:"

// Versioner fingerprints the vendor set a cached result was computed from.
type Versioner interface {
	VendorSetVersion(ctx context.Context) (string, error)
}

// Cache stores finished results keyed by the request and the vendor set
// version, so any vendor change invalidates old entries.
type Cache struct {
	rdb       redis.Cmdable
	versioner Versioner
	ttl       time.Duration
}

func NewCache(rdb redis.Cmdable, versioner Versioner, ttl time.Duration) *Cache {
	return &Cache{rdb: rdb, versioner: versioner, ttl: ttl}
}

// Key derives the cache key for a request. Event ids are order-insensitive.
func (c *Cache) Key(ctx context.Context, input *Input) (string, error) {
	version, err := c.versioner.VendorSetVersion(ctx)
	if err != nil {
		return "", fmt.Errorf("vendor set version: %w", err)
	}

	ids := recommender.DistinctIDs(input.EventIDs)
	sort.Strings(ids)

	h := sha256.New()
	h.Write([]byte(strings.Join(ids, "\x00")))
	h.Write([]byte{0})
	h.Write([]byte(strconv.Itoa(input.Limit)))
	h.Write([]byte{0})
	h.Write([]byte(strconv.FormatFloat(input.MinScore, 'g', -1, 64)))
	h.Write([]byte{0})
	h.Write([]byte(version))
	return cacheKeyPrefix + hex.EncodeToString(h.Sum(nil)), nil
}

// Get returns database.ErrCacheMiss when nothing is stored under key.
func (c *Cache) Get(ctx context.Context, key string) (*recommender.Result, error) {
	var result recommender.Result
	if err := database.GetJSON(ctx, c.rdb, key, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Cache) Set(ctx context.Context, key string, result *recommender.Result) error {
	return database.SetJSON(ctx, c.rdb, key, result, c.ttl)
}
