package redis

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// Client wraps a single Redis connection shared by the listing cache and the
// pub/sub fan-out.
type Client struct {
	rdb      *redis.Client
	listings *ListingCache
	pubsub   *PubSub
}

func New(ctx context.Context, addr, password string, db int) (*Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis.New: ping: %w", err)
	}

	return &Client{
		rdb:      rdb,
		listings: NewListingCache(rdb),
		pubsub:   NewPubSub(rdb),
	}, nil
}

func (c *Client) Close() error {
	if err := c.rdb.Close(); err != nil {
		return fmt.Errorf("redis.Client.Close: %w", err)
	}
	return nil
}

func (c *Client) Listings() *ListingCache { return c.listings }
func (c *Client) PubSub() *PubSub         { return c.pubsub }
