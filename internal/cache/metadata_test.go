//go:build integration

package cache_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"trove-backend/internal/cache"

	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"
)

type MetadataCacheTestSuite struct {
	suite.Suite
	pool     *dockertest.Pool
	resource *dockertest.Resource
	client   *redis.Client
	ctx      context.Context
}

func (suite *MetadataCacheTestSuite) SetupSuite() {
	pool, err := dockertest.NewPool("")
	suite.Require().NoError(err, "could not connect to docker")
	suite.pool = pool

	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: "redis",
		Tag:        "7-alpine",
	}, func(hc *docker.HostConfig) {
		hc.AutoRemove = true
		hc.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	suite.Require().NoError(err, "could not start redis")
	suite.resource = resource

	suite.ctx = context.Background()
	addr := fmt.Sprintf("127.0.0.1:%s", resource.GetPort("6379/tcp"))

	pool.MaxWait = time.Minute
	suite.Require().NoError(pool.Retry(func() error {
		client, err := cache.NewClient(suite.ctx, addr, "", 0)
		if err != nil {
			return err
		}
		suite.client = client
		return nil
	}))
}

func (suite *MetadataCacheTestSuite) TearDownSuite() {
	if suite.client != nil {
		_ = suite.client.Close()
	}
	if suite.pool != nil && suite.resource != nil {
		_ = suite.pool.Purge(suite.resource)
	}
}

func (suite *MetadataCacheTestSuite) SetupTest() {
	suite.Require().NoError(suite.client.FlushDB(suite.ctx).Err())
}

func (suite *MetadataCacheTestSuite) TestMissReturnsNil() {
	c := cache.NewMetadataCache(suite.client, time.Minute)

	data, err := c.Get(suite.ctx, "https://example.com")

	suite.NoError(err)
	suite.Nil(data)
}

func (suite *MetadataCacheTestSuite) TestSetThenGet() {
	c := cache.NewMetadataCache(suite.client, time.Minute)
	value := []byte(`{"title":"Example"}`)

	suite.Require().NoError(c.Set(suite.ctx, "https://example.com", value))

	data, err := c.Get(suite.ctx, "https://example.com")
	suite.NoError(err)
	suite.Equal(value, data)

	ttl, err := suite.client.TTL(suite.ctx, cache.MetadataKey("https://example.com")).Result()
	suite.NoError(err)
	suite.True(ttl > 0 && ttl <= time.Minute)
}

func (suite *MetadataCacheTestSuite) TestPing() {
	suite.NoError(cache.NewMetadataCache(suite.client, 0).Ping(suite.ctx))
}

func TestMetadataCacheTestSuite(t *testing.T) {
	suite.Run(t, new(MetadataCacheTestSuite))
}
