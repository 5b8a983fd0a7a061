package repositories

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/BradenHooton/gestaopro/internal/config"
	"github.com/BradenHooton/gestaopro/internal/models"
	"github.com/redis/go-redis/v9"
)

const sessionKeyPrefix = "session:"

// RedisSessionRepository keeps sessions in Redis; expiry is delegated to key TTLs
type RedisSessionRepository struct {
	client *redis.Client
}

// NewRedisClient connects and pings Redis
func NewRedisClient(ctx context.Context, cfg *config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("unable to ping redis: %w", err)
	}

	return client, nil
}

func NewRedisSessionRepository(client *redis.Client) *RedisSessionRepository {
	return &RedisSessionRepository{client: client}
}

func sessionKey(tokenHash []byte) string {
	return sessionKeyPrefix + hex.EncodeToString(tokenHash)
}

func (r *RedisSessionRepository) Create(ctx context.Context, tokenHash []byte, session *models.Session) error {
	ttl := time.Until(session.ExpiresAt)
	if ttl <= 0 {
		return fmt.Errorf("session already expired")
	}

	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}

	if err := r.client.Set(ctx, sessionKey(tokenHash), data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}

	return nil
}

func (r *RedisSessionRepository) Get(ctx context.Context, tokenHash []byte) (*models.Session, error) {
	data, err := r.client.Get(ctx, sessionKey(tokenHash)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read session: %w", err)
	}

	var session models.Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("failed to decode session: %w", err)
	}

	return &session, nil
}

func (r *RedisSessionRepository) Delete(ctx context.Context, tokenHash []byte) error {
	if err := r.client.Del(ctx, sessionKey(tokenHash)).Err(); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

// DeleteExpired is a no-op: Redis drops expired keys itself
func (r *RedisSessionRepository) DeleteExpired(ctx context.Context) (int64, error) {
	return 0, nil
}
