package database

import (
	"context"
	"sleepclinic-service/internal/app/config"
	"sleepclinic-service/internal/pkg/constvars"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

func NewRedisClient(driverConfig *config.DriverConfig) *redis.Client {
	rdb := redis.NewClient(newRedisOptions(driverConfig.Redis))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err := rdb.Ping(ctx).Err()
	if err != nil {
		logrus.Fatalf("Could not connect to Redis at %s: %v", driverConfig.Redis.Addr(), err)
	}
	logrus.Println("Successfully connected to redis")
	return rdb
}

func newRedisOptions(redisConfig config.Redis) *redis.Options {
	return &redis.Options{
		Addr:       redisConfig.Addr(),
		Password:   redisConfig.Password,
		DB:         redisConfig.DB,
		ClientName: constvars.ServiceName,
	}
}
