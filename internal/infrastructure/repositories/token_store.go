package repositories

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Shaxzodbek16/clot/domain"
)

// TokenStoreImpl implements domain.TokenStore using Redis. Outstanding
// refresh token IDs live in a per-user hash mapping jti to expiry; revoked
// IDs get a blacklist key whose TTL equals the token's remaining lifetime,
// so the list cleans itself up.
type TokenStoreImpl struct {
	client          *redis.Client
	outstandingPref string
	blacklistPref   string
}

// NewTokenStore creates a new refresh token registry
func NewTokenStore(client *redis.Client) domain.TokenStore {
	return &TokenStoreImpl{
		client:          client,
		outstandingPref: "tokens:user:",
		blacklistPref:   "blacklist:",
	}
}

func (r *TokenStoreImpl) outstandingKey(userID uint) string {
	return fmt.Sprintf("%s%d", r.outstandingPref, userID)
}

// Register implements domain.TokenStore
func (r *TokenStoreImpl) Register(ctx context.Context, userID uint, tokenID string, expiresAt time.Time) error {
	key := r.outstandingKey(userID)
	if err := r.client.HSet(ctx, key, tokenID, expiresAt.Unix()).Err(); err != nil {
		return fmt.Errorf("failed to register token: %w", err)
	}
	// Newest token always has the farthest expiry; the hash dies with it.
	return r.client.ExpireAt(ctx, key, expiresAt).Err()
}

// Revoke implements domain.TokenStore
func (r *TokenStoreImpl) Revoke(ctx context.Context, userID uint, tokenID string, expiresAt time.Time) error {
	if remaining := time.Until(expiresAt); remaining > 0 {
		if err := r.client.Set(ctx, r.blacklistPref+tokenID, 1, remaining).Err(); err != nil {
			return fmt.Errorf("failed to blacklist token: %w", err)
		}
	}
	return r.client.HDel(ctx, r.outstandingKey(userID), tokenID).Err()
}

// RevokeAll implements domain.TokenStore. Enumeration-then-revoke is not
// atomic as a whole; tokens revoked before a failure stay revoked.
func (r *TokenStoreImpl) RevokeAll(ctx context.Context, userID uint) (int, error) {
	key := r.outstandingKey(userID)
	entries, err := r.client.HGetAll(ctx, key).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to list outstanding tokens: %w", err)
	}

	revoked := 0
	var lastErr error
	now := time.Now()
	for tokenID, expStr := range entries {
		exp, err := strconv.ParseInt(expStr, 10, 64)
		if err != nil {
			continue
		}
		expiresAt := time.Unix(exp, 0)
		if !expiresAt.After(now) {
			continue
		}
		if err := r.client.Set(ctx, r.blacklistPref+tokenID, 1, time.Until(expiresAt)).Err(); err != nil {
			lastErr = err
			continue
		}
		revoked++
	}

	if err := r.client.Del(ctx, key).Err(); err != nil && lastErr == nil {
		lastErr = err
	}
	return revoked, lastErr
}

// IsRevoked implements domain.TokenStore
func (r *TokenStoreImpl) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	n, err := r.client.Exists(ctx, r.blacklistPref+tokenID).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
