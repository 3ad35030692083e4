package guardrails

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/gabrielchua/descriptive-theory/internal/models"
	"github.com/redis/go-redis/v9"
)

// VerdictCache stores verdicts keyed by input text.
type VerdictCache interface {
	Get(ctx context.Context, input string) (models.Verdict, bool, error)
	Set(ctx context.Context, input string, verdict models.Verdict) error
}

// RedisVerdictCache keeps only a hash of the input, never the text itself.
type RedisVerdictCache struct {
	client redis.Cmdable
	prefix string
	ttl    time.Duration
}

func NewRedisVerdictCache(client redis.Cmdable, prefix string, ttl time.Duration) *RedisVerdictCache {
	if prefix == "" {
		prefix = "guardrail:"
	}
	return &RedisVerdictCache{
		client: client,
		prefix: prefix,
		ttl:    ttl,
	}
}

func (c *RedisVerdictCache) Get(ctx context.Context, input string) (models.Verdict, bool, error) {
	value, err := c.client.Get(ctx, c.key(input)).Result()
	if errors.Is(err, redis.Nil) {
		return models.VerdictReject, false, nil
	}
	if err != nil {
		return models.VerdictReject, false, fmt.Errorf("verdict cache get: %w", err)
	}

	verdict, err := parseVerdict(value)
	if err != nil {
		return models.VerdictReject, false, err
	}
	return verdict, true, nil
}

func (c *RedisVerdictCache) Set(ctx context.Context, input string, verdict models.Verdict) error {
	if err := c.client.Set(ctx, c.key(input), strconv.Itoa(int(verdict)), c.ttl).Err(); err != nil {
		return fmt.Errorf("verdict cache set: %w", err)
	}
	return nil
}

func (c *RedisVerdictCache) key(input string) string {
	sum := sha256.Sum256([]byte(input))
	return c.prefix + hex.EncodeToString(sum[:])
}
