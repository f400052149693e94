// Package cache keeps rebate projections in Redis so the rebate endpoint
// does not hit the record store on every read. Evaluations invalidate the
// society's entry after each upsert.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"greentax/internal/compliance/models"
	"greentax/pkg/domain"
	"greentax/pkg/period"
)

const rebateKeyPrefix = "greentax:rebate:"

// DefaultTTL bounds staleness if an invalidation is ever missed.
const DefaultTTL = 5 * time.Minute

// RedisRebateCache stores rebate projections as JSON strings with a TTL.
type RedisRebateCache struct {
	client *redis.Client
	ttl    time.Duration
}

type Option func(*RedisRebateCache)

func WithTTL(ttl time.Duration) Option {
	return func(c *RedisRebateCache) {
		if ttl > 0 {
			c.ttl = ttl
		}
	}
}

func NewRedis(client *redis.Client, opts ...Option) *RedisRebateCache {
	c := &RedisRebateCache{client: client, ttl: DefaultTTL}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c
}

type rebateEntry struct {
	SocietyID          domain.SocietyID `json:"society_id"`
	SocietyName        string           `json:"society_name"`
	Ward               string           `json:"ward"`
	Tier               models.Tier      `json:"tier"`
	RebatePercent      int              `json:"rebate_percent"`
	Score              int              `json:"score"`
	ProofCount         int              `json:"proof_count"`
	LastProofAt        *time.Time       `json:"last_proof_at,omitempty"`
	DaysSinceLastProof int              `json:"days_since_last_proof"`
	Period             *period.Key      `json:"period,omitempty"`
	Message            string           `json:"message,omitempty"`
}

func rebateKey(id domain.SocietyID) string {
	return rebateKeyPrefix + id.String()
}

// Get returns the cached rebate, or ok=false on a miss.
func (c *RedisRebateCache) Get(ctx context.Context, id domain.SocietyID) (*models.Rebate, bool, error) {
	raw, err := c.client.Get(ctx, rebateKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get cached rebate: %w", err)
	}
	var entry rebateEntry
	if err := json.Unmarshal(raw, &entry); err != nil {
		return nil, false, fmt.Errorf("decode cached rebate: %w", err)
	}
	rebate := models.Rebate(entry)
	return &rebate, true, nil
}

func (c *RedisRebateCache) Set(ctx context.Context, rebate *models.Rebate) error {
	raw, err := json.Marshal(rebateEntry(*rebate))
	if err != nil {
		return fmt.Errorf("encode rebate: %w", err)
	}
	return c.client.Set(ctx, rebateKey(rebate.SocietyID), raw, c.ttl).Err()
}

func (c *RedisRebateCache) Invalidate(ctx context.Context, id domain.SocietyID) error {
	return c.client.Del(ctx, rebateKey(id)).Err()
}
