package cache

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/NailSitePro/salon-platform/internal/models"
)

const (
	slugKeyPrefix  = "salon:slug:"
	visitKeyPrefix = "visit:seen:"

	slugTTL  = 5 * time.Minute
	visitTTL = 30 * time.Minute
)

// Cache wraps redis for the two hot read paths: public sample-site lookups
// and visit-session dedup. Redis being unavailable degrades to passthrough;
// it never fails a request.
type Cache struct {
	rdb *redis.Client
}

func New(redisURL string) *Cache {
	if redisURL == "" {
		return &Cache{}
	}

	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		log.Printf("cache: invalid REDIS_URL, caching disabled: %v", err)
		return &Cache{}
	}

	return &Cache{rdb: redis.NewClient(opts)}
}

func (c *Cache) enabled() bool {
	return c != nil && c.rdb != nil
}

// --------------------------------------------------
// Sample-site lookup cache
// --------------------------------------------------

func (c *Cache) GetSalonBySlug(ctx context.Context, slug string) (*models.Salon, bool) {
	if !c.enabled() {
		return nil, false
	}

	raw, err := c.rdb.Get(ctx, slugKeyPrefix+slug).Bytes()
	if err != nil {
		return nil, false
	}

	var s models.Salon
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, false
	}
	return &s, true
}

func (c *Cache) SetSalonBySlug(ctx context.Context, s *models.Salon) {
	if !c.enabled() || s == nil || s.SampleURL == "" {
		return
	}

	raw, err := json.Marshal(s)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, slugKeyPrefix+s.SampleURL, raw, slugTTL).Err(); err != nil {
		log.Printf("cache: set slug %q failed: %v", s.SampleURL, err)
	}
}

func (c *Cache) InvalidateSlug(ctx context.Context, slug string) {
	if !c.enabled() || slug == "" {
		return
	}
	if err := c.rdb.Del(ctx, slugKeyPrefix+slug).Err(); err != nil {
		log.Printf("cache: invalidate slug %q failed: %v", slug, err)
	}
}

// --------------------------------------------------
// Visit dedup
// --------------------------------------------------

// SeenVisit reports whether this session already hit this path inside the
// dedup window, marking it as seen otherwise. Without redis every visit
// counts.
func (c *Cache) SeenVisit(ctx context.Context, sessionID, path string) bool {
	if !c.enabled() {
		return false
	}

	ok, err := c.rdb.SetNX(ctx, visitKeyPrefix+sessionID+":"+path, 1, visitTTL).Result()
	if err != nil {
		return false
	}
	return !ok
}
