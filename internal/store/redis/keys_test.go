package redis_test

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	redisstore "github.com/stocktrail/stocktrail/internal/store/redis"
)

func TestListingKey(t *testing.T) {
	t.Parallel()

	projectID := uuid.MustParse("11111111-2222-3333-4444-555555555555")

	t.Run("happy path", func(t *testing.T) {
		t.Parallel()

		got := redisstore.ListingKey(projectID)
		assert.Equal(t, "inventory:11111111-2222-3333-4444-555555555555", got)
	})

	t.Run("nil UUID", func(t *testing.T) {
		t.Parallel()

		got := redisstore.ListingKey(uuid.Nil)
		assert.Equal(t, "inventory:00000000-0000-0000-0000-000000000000", got)
	})

	t.Run("prefix", func(t *testing.T) {
		t.Parallel()

		got := redisstore.ListingKey(projectID)
		assert.True(t, strings.HasPrefix(got, "inventory:"), "expected prefix 'inventory:', got %q", got)
	})

	t.Run("deterministic", func(t *testing.T) {
		t.Parallel()

		a := redisstore.ListingKey(projectID)
		b := redisstore.ListingKey(projectID)
		assert.Equal(t, a, b)
	})

	t.Run("different projects produce different keys", func(t *testing.T) {
		t.Parallel()

		other := uuid.MustParse("99999999-8888-7777-6666-555544443333")
		assert.NotEqual(t, redisstore.ListingKey(projectID), redisstore.ListingKey(other))
	})
}

func TestListingTTL(t *testing.T) {
	t.Parallel()

	// The 60-second TTL is an interop contract with cache inspection tooling.
	assert.Equal(t, "1m0s", redisstore.ListingTTL.String())
}

func TestEventsChannel(t *testing.T) {
	t.Parallel()

	tenantID := uuid.MustParse("aaaaaaaa-bbbb-cccc-dddd-eeeeeeeeeeee")

	t.Run("happy path", func(t *testing.T) {
		t.Parallel()

		got := redisstore.EventsChannel(tenantID)
		assert.Equal(t, "events:aaaaaaaa-bbbb-cccc-dddd-eeeeeeeeeeee", got)
	})

	t.Run("distinct from listing keyspace", func(t *testing.T) {
		t.Parallel()

		got := redisstore.EventsChannel(tenantID)
		assert.False(t, strings.HasPrefix(got, "inventory:"))
	})
}
