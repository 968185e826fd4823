package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/go-redis/redis/v8"
)

// AvailabilityCache keeps the per-month available-days lists in Redis.
// Keys embed a per-salon-month version counter; invalidation bumps the
// counter instead of scanning for every service/employee combination.
// With no Redis configured every call is a pass-through.
type AvailabilityCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func New(redisURL string) *AvailabilityCache {
	c := &AvailabilityCache{ttl: 5 * time.Minute}

	if redisURL == "" {
		return c
	}

	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		log.Printf("cache disabled, bad REDIS_URL: %v", err)
		return c
	}

	c.rdb = redis.NewClient(opts)
	return c
}

func (c *AvailabilityCache) version(ctx context.Context, salonID uint, year int, month time.Month) int64 {
	v, err := c.rdb.Get(ctx, fmt.Sprintf("avdays:ver:%d:%d-%02d", salonID, year, month)).Int64()
	if err != nil {
		return 0
	}
	return v
}

func (c *AvailabilityCache) daysKey(
	ctx context.Context,
	salonID, serviceID, employeeID uint,
	year int,
	month time.Month,
) string {
	ver := c.version(ctx, salonID, year, month)
	return fmt.Sprintf("avdays:%d:%d:%d:%d:%d-%02d", ver, salonID, serviceID, employeeID, year, month)
}

func (c *AvailabilityCache) GetDays(
	ctx context.Context,
	salonID, serviceID, employeeID uint,
	year int,
	month time.Month,
) ([]string, bool) {

	if c.rdb == nil {
		return nil, false
	}

	raw, err := c.rdb.Get(ctx, c.daysKey(ctx, salonID, serviceID, employeeID, year, month)).Bytes()
	if err != nil {
		return nil, false
	}

	var days []string
	if err := json.Unmarshal(raw, &days); err != nil {
		return nil, false
	}
	return days, true
}

func (c *AvailabilityCache) SetDays(
	ctx context.Context,
	salonID, serviceID, employeeID uint,
	year int,
	month time.Month,
	days []string,
) {

	if c.rdb == nil {
		return
	}

	raw, err := json.Marshal(days)
	if err != nil {
		return
	}

	if err := c.rdb.Set(ctx, c.daysKey(ctx, salonID, serviceID, employeeID, year, month), raw, c.ttl).Err(); err != nil {
		log.Printf("cache set failed: %v", err)
	}
}

// InvalidateMonth drops every cached day list for the salon's month by
// bumping the version counter. Called after every booking write.
func (c *AvailabilityCache) InvalidateMonth(
	ctx context.Context,
	salonID uint,
	year int,
	month time.Month,
) {

	if c.rdb == nil {
		return
	}

	key := fmt.Sprintf("avdays:ver:%d:%d-%02d", salonID, year, month)
	if err := c.rdb.Incr(ctx, key).Err(); err != nil {
		log.Printf("cache invalidate failed: %v", err)
		return
	}
	c.rdb.Expire(ctx, key, 24*time.Hour)
}
