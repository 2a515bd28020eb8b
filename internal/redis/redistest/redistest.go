// Package redistest connects integration tests to the Redis instance in TEST_REDIS_URL.
package redistest

import (
	"context"
	"fmt"
	"os"
	"testing"

	"github.com/go-redis/redis/v9"
)

const TEST_REDIS_URL = "TEST_REDIS_URL"

func SkipWithoutRedis(t *testing.T) {
	t.Helper()
	if os.Getenv(TEST_REDIS_URL) == "" {
		t.Skipf("%s is not set.", TEST_REDIS_URL)
	}
}

func CreateTestClient() *redis.Client {
	opt, err := redis.ParseURL(os.Getenv(TEST_REDIS_URL))
	if err != nil {
		panic(fmt.Sprintf("Could not parse Redis URL: %v.", err))
	}
	client := redis.NewClient(opt)
	if err := client.Ping(context.Background()).Err(); err != nil {
		panic(fmt.Sprintf("Could not connect to Redis: %v.", err))
	}
	return client
}

// Flush removes every key of the test database.
func Flush(client *redis.Client) {
	if err := client.FlushDB(context.Background()).Err(); err != nil {
		panic("Could not flush Redis database.")
	}
}
