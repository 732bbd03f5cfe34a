package redis

import (
	"context"
	"fmt"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"time"
)

type IRedis interface {
	PushCapped(ctx context.Context, key string, value string, max int64, ttl time.Duration) error
	Range(ctx context.Context, key string) ([]string, error)
	Delete(ctx context.Context, key string) error
	Ping(ctx context.Context) error
	Close() error
}

type Options struct {
	Address  string
	Password string
	DB       int
}

type redisClient struct {
	client *redis.Client
}

func New(opts Options) IRedis {
	logrus.Info(fmt.Sprintf("Connecting to Redis at %s...", opts.Address))

	client := redis.NewClient(&redis.Options{
		Addr:     opts.Address,
		Password: opts.Password,
		DB:       opts.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := client.Ping(ctx).Result(); err != nil {
		logrus.Error(fmt.Sprintf("Failed to connect to Redis: %v", err))
	} else {
		logrus.Info("Successfully connected to Redis")
	}

	return &redisClient{client: client}
}

// PushCapped appends value to the list at key, keeps only the newest max
// entries and refreshes the key's TTL, all in one transaction.
func (r *redisClient) PushCapped(ctx context.Context, key string, value string, max int64, ttl time.Duration) error {
	logrus.Debug(fmt.Sprintf("Pushing to list %s (max %d, ttl %v)", key, max, ttl))

	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.RPush(ctx, key, value)
		pipe.LTrim(ctx, key, -max, -1)
		if ttl > 0 {
			pipe.Expire(ctx, key, ttl)
		}
		return nil
	})
	if err != nil {
		logrus.Error(fmt.Sprintf("Error pushing to list %s: %v", key, err))
		return err
	}
	return nil
}

func (r *redisClient) Range(ctx context.Context, key string) ([]string, error) {
	logrus.Debug(fmt.Sprintf("Reading list %s", key))
	values, err := r.client.LRange(ctx, key, 0, -1).Result()
	if err != nil {
		logrus.Error(fmt.Sprintf("Error reading list %s: %v", key, err))
		return nil, err
	}
	return values, nil
}

func (r *redisClient) Delete(ctx context.Context, key string) error {
	logrus.Debug(fmt.Sprintf("Deleting key %s", key))
	result, err := r.client.Del(ctx, key).Result()
	if err != nil {
		logrus.Error(fmt.Sprintf("Error deleting key %s: %v", key, err))
		return err
	}

	if result == 0 {
		logrus.Debug(fmt.Sprintf("Key %s not found for deletion", key))
	}
	return nil
}

func (r *redisClient) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *redisClient) Close() error {
	return r.client.Close()
}
