package repositories

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"messagely/internal/logger"
)

// revokedKeyPrefix namespaces revocation entries in Redis.
const revokedKeyPrefix = "revoked:"

// TokenRevocationRepository is a Redis-backed denylist of revoked token
// IDs. Entries expire together with the token they revoke, so the set
// never outgrows the number of live sessions.
type TokenRevocationRepository struct {
	rdb *redis.Client
}

func NewTokenRevocationRepository(rdb *redis.Client) *TokenRevocationRepository {
	return &TokenRevocationRepository{rdb: rdb}
}

// Revoke denylists the token ID for the given duration.
func (r *TokenRevocationRepository) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	if ttl <= 0 {
		// Token already expired, nothing to deny.
		return nil
	}

	err := r.rdb.Set(ctx, revokedKeyPrefix+tokenID, "1", ttl).Err()

	logger.Log.Infow(
		"revoke token",
		"token_id", tokenID,
		"ttl", ttl,
		"error", err,
	)

	return err
}

// IsRevoked reports whether the token ID has been denylisted.
func (r *TokenRevocationRepository) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	n, err := r.rdb.Exists(ctx, revokedKeyPrefix+tokenID).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
