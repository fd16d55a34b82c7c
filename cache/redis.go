package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-redis/redis/v8"

	"inspection-analytics/config"
	"inspection-analytics/models"
)

type RedisClient struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisClient(cfg config.RedisConfig) (*RedisClient, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     cfg.PoolSize,
		MinIdleConns: cfg.MinIdleConns,
		MaxRetries:   3,
	})

	if err := rdb.Ping(context.Background()).Err(); err != nil {
		return nil, err
	}

	return &RedisClient{
		client: rdb,
		ttl:    cfg.TTL,
	}, nil
}

func (rc *RedisClient) Close() error {
	return rc.client.Close()
}

func (rc *RedisClient) SaveAnalysis(ctx context.Context, analysis *models.TrendAnalysis) error {
	key := "analysis:" + analysis.ReadingID

	data, err := json.Marshal(analysis)
	if err != nil {
		return err
	}

	return rc.client.Set(ctx, key, data, rc.ttl).Err()
}

func (rc *RedisClient) GetAnalysis(ctx context.Context, readingID string) (*models.TrendAnalysis, error) {
	key := "analysis:" + readingID

	val, err := rc.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return nil, nil // no cached analysis yet
	}
	if err != nil {
		return nil, err
	}

	var analysis models.TrendAnalysis
	if err := json.Unmarshal([]byte(val), &analysis); err != nil {
		return nil, err
	}

	return &analysis, nil
}
