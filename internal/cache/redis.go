package cache

import (
	"context"
	"log"
	"os"

	"github.com/redis/go-redis/v9"
)

var Client *redis.Client

// InitRedis connects the package-level client. A missing REDIS_URL leaves
// Client nil; callers treat a nil client as "no cache".
func InitRedis(ctx context.Context) {
	addr := os.Getenv("REDIS_URL")
	if addr == "" {
		log.Println("Redis disabled: REDIS_URL not set")
		return
	}
	Client = redis.NewClient(&redis.Options{
		Addr: addr,
	})
	if err := Client.Ping(ctx).Err(); err != nil {
		log.Printf("failed to connect to Redis at %s, continuing without cache: %v", addr, err)
		Client = nil
		return
	}
	log.Println("Connected to Redis")
}
