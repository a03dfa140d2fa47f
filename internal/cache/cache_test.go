package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/suite"

	"league-activity/internal/config"
	"league-activity/internal/dependencies/mocks"
)

type CacheSuite struct {
	suite.Suite
	mini  *miniredis.Miniredis
	clock *mocks.MockClock
	cache *Cache
	ctx   context.Context
}

func TestCacheSuite(t *testing.T) {
	suite.Run(t, new(CacheSuite))
}

func (s *CacheSuite) SetupTest() {
	s.mini = miniredis.RunT(s.T())
	s.clock = mocks.NewMockClock(time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC))

	client := redis.NewClient(&redis.Options{Addr: s.mini.Addr()})
	s.cache = NewWithClient(client, s.clock, zerolog.Nop())
	s.ctx = context.Background()
}

func (s *CacheSuite) TearDownTest() {
	if s.cache != nil {
		_ = s.cache.Close()
	}
}

func (s *CacheSuite) TestSetGetRoundTrip() {
	s.cache.Set(s.ctx, "k", []byte("v"), time.Hour)

	value, ok := s.cache.Get(s.ctx, "k")
	s.True(ok)
	s.Equal([]byte("v"), value)
}

func (s *CacheSuite) TestMissingKeyAbsent() {
	_, ok := s.cache.Get(s.ctx, "nope")
	s.False(ok)
}

func (s *CacheSuite) TestPreferredEntryExpires() {
	s.cache.Set(s.ctx, "k", []byte("v"), time.Minute)

	s.mini.FastForward(2 * time.Minute)

	_, ok := s.cache.Get(s.ctx, "k")
	s.False(ok)
}

func (s *CacheSuite) TestDelete() {
	s.cache.Set(s.ctx, "k", []byte("v"), time.Hour)
	s.cache.Delete(s.ctx, "k")

	_, ok := s.cache.Get(s.ctx, "k")
	s.False(ok)
}

func (s *CacheSuite) TestUnreachablePreferredDegradesSilently() {
	s.mini.Close()

	// Neither call may surface the backend failure.
	s.cache.Set(s.ctx, "k", []byte("v"), time.Hour)

	value, ok := s.cache.Get(s.ctx, "k")
	s.True(ok, "fallback tier should serve the written value")
	s.Equal([]byte("v"), value)
}

func (s *CacheSuite) TestFallbackEntryExpires() {
	s.mini.Close()

	s.cache.Set(s.ctx, "k", []byte("v"), time.Hour)

	_, ok := s.cache.Get(s.ctx, "k")
	s.True(ok)

	s.clock.Advance(2 * time.Hour)

	_, ok = s.cache.Get(s.ctx, "k")
	s.False(ok)
}

func (s *CacheSuite) TestFallbackOnlyMode() {
	cfg := &config.Config{}
	c := New(cfg, s.clock, zerolog.Nop())
	defer func() { _ = c.Close() }()

	c.Set(s.ctx, "k", []byte("v"), time.Hour)

	value, ok := c.Get(s.ctx, "k")
	s.True(ok)
	s.Equal([]byte("v"), value)

	s.clock.Advance(2 * time.Hour)
	_, ok = c.Get(s.ctx, "k")
	s.False(ok)
}

func (s *CacheSuite) TestInvalidRedisURLFallsBack() {
	cfg := &config.Config{RedisURL: "://not-a-url"}
	c := New(cfg, s.clock, zerolog.Nop())
	defer func() { _ = c.Close() }()

	c.Set(s.ctx, "k", []byte("v"), time.Hour)

	value, ok := c.Get(s.ctx, "k")
	s.True(ok)
	s.Equal([]byte("v"), value)
}
