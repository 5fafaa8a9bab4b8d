package db

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

func MustOpenRedis(addr string, dbNum int) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr:         addr,
		DB:           dbNum,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		panic(err)
	}
	return client
}
