package database

import (
	"context"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

var Redis *redis.Client

// ConnectRedis opens the Redis client used for short-lived verification codes.
func ConnectRedis(addr, password string, db int) *redis.Client {
	Redis = redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	if err := Redis.Ping(context.Background()).Err(); err != nil {
		log.Fatal().Err(err).Str("addr", addr).Msg("failed to connect to redis")
	}

	log.Info().Str("addr", addr).Msg("redis connected")
	return Redis
}

func CloseRedis() error {
	if Redis == nil {
		return nil
	}
	return Redis.Close()
}
