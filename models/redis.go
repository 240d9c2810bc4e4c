package models

import (
	"context"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"sneaker-shop/config"
)

var RedisClient *redis.Client

func InitRedis() {
	var opt *redis.Options
	if config.AppConfig.RedisURL != "" {
		parsedOpt, err := redis.ParseURL(config.AppConfig.RedisURL)
		if err != nil {
			config.Logger.Warn("Failed to parse Redis URL, running without cache", zap.Error(err))
			return
		}
		opt = parsedOpt
	} else {
		opt = &redis.Options{
			Addr:     config.AppConfig.RedisAddr,
			Password: config.AppConfig.RedisPassword,
			DB:       0,
		}
	}

	RedisClient = redis.NewClient(opt)

	if _, err := RedisClient.Ping(context.Background()).Result(); err != nil {
		config.Logger.Warn("Redis connection failed, running without cache", zap.Error(err))
		RedisClient = nil
		return
	}

	config.Logger.Info("Redis connected")
}

func CloseRedis() {
	if RedisClient != nil {
		RedisClient.Close()
	}
}
