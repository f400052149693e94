//go:build integration

package cache_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"greentax/internal/compliance/cache"
	"greentax/internal/compliance/models"
	"greentax/pkg/domain"
	"greentax/pkg/period"
	"greentax/pkg/testutil/containers"
)

type RedisRebateCacheSuite struct {
	suite.Suite
	redis *containers.RedisContainer
	cache *cache.RedisRebateCache
}

func TestRedisRebateCacheSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(RedisRebateCacheSuite))
}

func (s *RedisRebateCacheSuite) SetupSuite() {
	s.redis = containers.GetManager().GetRedis(s.T())
	s.cache = cache.NewRedis(s.redis.Raw(), cache.WithTTL(time.Minute))
}

func (s *RedisRebateCacheSuite) SetupTest() {
	s.Require().NoError(s.redis.FlushAll(context.Background()))
}

func (s *RedisRebateCacheSuite) TestRoundTripAndInvalidate() {
	ctx := context.Background()
	id := domain.NewSocietyID()
	last := time.Date(2026, time.March, 18, 9, 0, 0, 0, time.UTC)
	key := period.KeyFor(last)
	rebate := &models.Rebate{
		SocietyID:     id,
		SocietyName:   "Harmony CHS",
		Ward:          "K-West",
		Tier:          models.TierYellow,
		RebatePercent: 5,
		Score:         60,
		LastProofAt:   &last,
		Period:        &key,
	}

	_, ok, err := s.cache.Get(ctx, id)
	s.Require().NoError(err)
	s.False(ok)

	s.Require().NoError(s.cache.Set(ctx, rebate))
	cached, ok, err := s.cache.Get(ctx, id)
	s.Require().NoError(err)
	s.Require().True(ok)
	s.Equal(rebate.Tier, cached.Tier)
	s.Equal(rebate.Period, cached.Period)
	s.True(cached.LastProofAt.Equal(last))

	ttl, err := s.redis.Raw().TTL(ctx, "greentax:rebate:"+id.String()).Result()
	s.Require().NoError(err)
	s.Greater(ttl, time.Duration(0))

	s.Require().NoError(s.cache.Invalidate(ctx, id))
	_, ok, err = s.cache.Get(ctx, id)
	s.Require().NoError(err)
	s.False(ok)
}
