package auth

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/redis/go-redis/v9"
)

// TokenDenylist records revoked tokens until their natural expiry. Tokens
// are stored by digest so the list never holds raw credentials.
type TokenDenylist struct {
	client *redis.Client
	prefix string
}

// NewTokenDenylist constructs a denylist on the shared Redis client.
func NewTokenDenylist(client *redis.Client, prefix string) *TokenDenylist {
	if prefix == "" {
		prefix = "revoked_token:"
	}
	return &TokenDenylist{client: client, prefix: prefix}
}

// Revoke marks the token as unusable until expiresAt.
func (d *TokenDenylist) Revoke(ctx context.Context, token string, expiresAt time.Time) error {
	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		// Already expired; nothing to record.
		return nil
	}
	return d.client.Set(ctx, d.key(token), "1", ttl).Err()
}

// IsRevoked reports whether the token was revoked.
func (d *TokenDenylist) IsRevoked(ctx context.Context, token string) (bool, error) {
	count, err := d.client.Exists(ctx, d.key(token)).Result()
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (d *TokenDenylist) key(token string) string {
	digest := sha256.Sum256([]byte(token))
	return d.prefix + hex.EncodeToString(digest[:])
}
