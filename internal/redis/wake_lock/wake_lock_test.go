package wakelock

import (
	"context"
	"mealremind/internal/core/domain/logging"
	"mealremind/internal/redis/redistest"
	"testing"
	"time"

	"github.com/go-redis/redis/v9"
	"github.com/stretchr/testify/suite"
)

type testSuite struct {
	suite.Suite
	client *redis.Client
	lease  *Lease
}

func (suite *testSuite) SetupSuite() {
	suite.client = redistest.CreateTestClient()
	suite.lease = New(suite.client, logging.NewFakeLogger(), "test:wake", time.Minute)
}

func (suite *testSuite) TearDownSuite() {
	suite.client.Close()
}

func (suite *testSuite) TearDownTest() {
	redistest.Flush(suite.client)
}

func TestRedisWakeLock(t *testing.T) {
	redistest.SkipWithoutRedis(t)
	suite.Run(t, new(testSuite))
}

func (s *testSuite) TestAcquireIsExclusive() {
	ctx := context.Background()

	release, err := s.lease.Acquire(ctx, "r-1")
	s.Nil(err)
	_, err = s.lease.Acquire(ctx, "r-1")
	s.ErrorIs(err, ErrWakeLockHeld)
	_, err = s.lease.Acquire(ctx, "r-2")
	s.Nil(err)

	release(ctx)
	_, err = s.lease.Acquire(ctx, "r-1")
	s.Nil(err)
}

func (s *testSuite) TestKeyExpires() {
	ctx := context.Background()

	_, err := s.lease.Acquire(ctx, "r-1")
	s.Nil(err)

	ttl, err := s.client.PTTL(ctx, "test:wake:r-1").Result()
	s.Nil(err)
	s.True(ttl > 0 && ttl <= time.Minute)
}

func (s *testSuite) TestStaleReleaseKeepsNewHolder() {
	ctx := context.Background()
	release, err := s.lease.Acquire(ctx, "r-1")
	s.Nil(err)
	s.Require().Nil(s.client.Set(ctx, "test:wake:r-1", "someone-else", time.Minute).Err())

	release(ctx)

	value, err := s.client.Get(ctx, "test:wake:r-1").Result()
	s.Nil(err)
	s.Equal("someone-else", value)
}
