package redis

import (
	"github.com/redis/go-redis/v9"
)

// Client wraps redis.UniversalClient so the slot repository can take any
// single, cluster or sentinel client
type Client interface {
	redis.UniversalClient
}
