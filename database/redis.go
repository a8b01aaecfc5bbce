package database

import (
	"context"
	"estate_market/config"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

var Redis *redis.Client

// ConnectRedis leaves Redis nil when REDIS_ADDR is empty or unreachable;
// realtime fan-out then stays inside this process.
func ConnectRedis() {
	addr := config.Config("REDIS_ADDR")
	if addr == "" {
		log.Println("REDIS_ADDR not set, realtime updates are local only")
		return
	}
	client := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     config.Config("REDIS_PASSWORD"),
		DB:           config.ConfigInt("REDIS_DB", 0),
		DialTimeout:  5 * time.Second,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		MaxRetries:   3,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		log.Printf("Redis ping failed, realtime updates are local only: %v", err)
		client.Close()
		return
	}
	fmt.Println("Connection Opened to Redis")
	Redis = client
}
