package repository

import (
	"context"
	"errors"
	"time"

	domainRepo "doctor-directory/internal/domain/repository"

	"github.com/redis/go-redis/v9"
)

type redisDoctorCache struct {
	client *redis.Client
}

func NewRedisDoctorCache(client *redis.Client) domainRepo.DoctorCache {
	return &redisDoctorCache{client: client}
}

func (c *redisDoctorCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	payload, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return payload, true, nil
}

func (c *redisDoctorCache) Set(ctx context.Context, key string, payload []byte, ttl time.Duration) error {
	return c.client.Set(ctx, key, payload, ttl).Err()
}
