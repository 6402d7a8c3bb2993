package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Prakhar9001/Fake-news-detection-system/internal/domain/entity"
	"github.com/Prakhar9001/Fake-news-detection-system/internal/domain/repository"
	"github.com/Prakhar9001/Fake-news-detection-system/internal/infrastructure/config"
)

const keyPrefix = "prediction"

// NewRedisClient creates a redis client and verifies the connection
func NewRedisClient(cfg *config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to ping redis at %s: %w", cfg.Addr(), err)
	}

	return client, nil
}

type predictionCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewPredictionCache creates a redis-backed prediction cache. Entries expire
// after ttl; a zero ttl keeps them until evicted by redis.
func NewPredictionCache(client *redis.Client, ttl time.Duration) repository.PredictionCache {
	return &predictionCache{client: client, ttl: ttl}
}

// Key returns the cache key for a text under a model version. The text is
// hashed so raw user input never becomes part of a key.
func Key(modelVersion, text string) string {
	sum := sha256.Sum256([]byte(text))
	return fmt.Sprintf("%s:%s:%s", keyPrefix, modelVersion, hex.EncodeToString(sum[:]))
}

func (c *predictionCache) Get(ctx context.Context, modelVersion, text string) (*entity.Prediction, error) {
	data, err := c.client.Get(ctx, Key(modelVersion, text)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read cached prediction: %w", err)
	}

	var p entity.Prediction
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("failed to decode cached prediction: %w", err)
	}
	if !p.IsValid() {
		return nil, nil
	}
	return &p, nil
}

func (c *predictionCache) Set(ctx context.Context, modelVersion, text string, prediction *entity.Prediction) error {
	data, err := json.Marshal(prediction)
	if err != nil {
		return fmt.Errorf("failed to encode prediction: %w", err)
	}
	if err := c.client.Set(ctx, Key(modelVersion, text), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache prediction: %w", err)
	}
	return nil
}
