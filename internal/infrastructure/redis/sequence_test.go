package redis_test

import (
	"context"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/cafe-pos-api/internal/infrastructure/redis"
	"github.com/jhoicas/cafe-pos-api/pkg/config"
)

// Requiere un Redis real: REDIS_TEST_ADDR=localhost:6379 go test ./internal/infrastructure/redis/...
func TestSequenceRepo_Next(t *testing.T) {
	addr := os.Getenv("REDIS_TEST_ADDR")
	if addr == "" {
		t.Skip("REDIS_TEST_ADDR no definido")
	}
	ctx := context.Background()
	client, err := redis.NewClient(ctx, config.RedisConfig{Addr: addr})
	require.NoError(t, err)
	defer client.Close()

	repo := redis.NewSequenceRepository(client)
	key := "POS-TEST-" + uuid.NewString()

	for want := int64(1); want <= 3; want++ {
		n, err := repo.Next(ctx, key)
		require.NoError(t, err)
		assert.Equal(t, want, n)
	}
}
