package redis

import (
	"context"
	"log"

	"github.com/redis/go-redis/v9"
)

// InitRedis connects and pings. An unreachable server is not an error: the
// caller gets enabled=false and runs with in-memory sessions only.
func InitRedis(ctx context.Context, addr, password string) (client *redis.Client, enabled bool) {
	client = redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		log.Printf("[REDIS] Warning: Could not connect to Redis at %s: %v. Sessions will live in memory only.", addr, err)
		client.Close()
		return nil, false
	}

	log.Println("[REDIS] Connected successfully")
	return client, true
}
