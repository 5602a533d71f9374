package auth

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// TokenRevoker invalidates JWT tokens before their natural expiry. Logout
// revokes the single token by JTI; account suspension revokes every token a
// user holds by recording an invalidation timestamp.
type TokenRevoker interface {
	// Revoke marks one token's JTI as revoked until the token would have
	// expired anyway.
	Revoke(ctx context.Context, jti string, ttl time.Duration) error

	// IsRevoked reports whether the JTI has been revoked
	IsRevoked(ctx context.Context, jti string) (bool, error)

	// RevokeAllForUser invalidates every token the user holds. Tokens issued
	// before the recorded instant are rejected.
	RevokeAllForUser(ctx context.Context, userID string, ttl time.Duration) error

	// IsUserRevoked reports whether a token issued at the given time falls
	// before the user's invalidation instant.
	IsUserRevoked(ctx context.Context, userID string, issuedAt time.Time) (bool, error)
}

// RedisTokenRevoker implements TokenRevoker on Redis. Entries carry a TTL
// matching the token lifetime, so the set cleans itself up.
type RedisTokenRevoker struct {
	client *redis.Client
	prefix string
}

// NewRedisTokenRevoker creates a revoker over an existing Redis client
func NewRedisTokenRevoker(client *redis.Client) *RedisTokenRevoker {
	return &RedisTokenRevoker{
		client: client,
		prefix: "auth:revoked:",
	}
}

func (r *RedisTokenRevoker) jtiKey(jti string) string {
	return r.prefix + "jti:" + jti
}

func (r *RedisTokenRevoker) userKey(userID string) string {
	return r.prefix + "user:" + userID
}

// Revoke marks one token's JTI as revoked
func (r *RedisTokenRevoker) Revoke(ctx context.Context, jti string, ttl time.Duration) error {
	if err := r.client.Set(ctx, r.jtiKey(jti), "1", ttl).Err(); err != nil {
		return fmt.Errorf("revoking token: %w", err)
	}
	return nil
}

// IsRevoked reports whether the JTI has been revoked
func (r *RedisTokenRevoker) IsRevoked(ctx context.Context, jti string) (bool, error) {
	n, err := r.client.Exists(ctx, r.jtiKey(jti)).Result()
	if err != nil {
		return false, fmt.Errorf("checking token revocation: %w", err)
	}
	return n > 0, nil
}

// RevokeAllForUser records the current instant as the user's invalidation time
func (r *RedisTokenRevoker) RevokeAllForUser(ctx context.Context, userID string, ttl time.Duration) error {
	if err := r.client.Set(ctx, r.userKey(userID), time.Now().Unix(), ttl).Err(); err != nil {
		return fmt.Errorf("revoking user tokens: %w", err)
	}
	return nil
}

// IsUserRevoked reports whether the token predates the user's invalidation time
func (r *RedisTokenRevoker) IsUserRevoked(ctx context.Context, userID string, issuedAt time.Time) (bool, error) {
	val, err := r.client.Get(ctx, r.userKey(userID)).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("checking user revocation: %w", err)
	}
	cutoff, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return false, fmt.Errorf("parsing revocation timestamp: %w", err)
	}
	return issuedAt.Unix() <= cutoff, nil
}

var _ TokenRevoker = (*RedisTokenRevoker)(nil)

// MemoryTokenRevoker is an in-process TokenRevoker for tests and single-node
// setups. Not safe across instances.
type MemoryTokenRevoker struct {
	mu      sync.RWMutex
	jtis    map[string]time.Time // JTI -> entry expiry
	cutoffs map[string]time.Time // userID -> invalidation instant
}

// NewMemoryTokenRevoker creates an empty in-process revoker
func NewMemoryTokenRevoker() *MemoryTokenRevoker {
	return &MemoryTokenRevoker{
		jtis:    make(map[string]time.Time),
		cutoffs: make(map[string]time.Time),
	}
}

// Revoke marks one token's JTI as revoked
func (r *MemoryTokenRevoker) Revoke(_ context.Context, jti string, ttl time.Duration) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.jtis[jti] = time.Now().Add(ttl)
	return nil
}

// IsRevoked reports whether the JTI has been revoked, dropping expired entries
func (r *MemoryTokenRevoker) IsRevoked(_ context.Context, jti string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	expiry, ok := r.jtis[jti]
	if !ok {
		return false, nil
	}
	if time.Now().After(expiry) {
		delete(r.jtis, jti)
		return false, nil
	}
	return true, nil
}

// RevokeAllForUser records the current instant as the user's invalidation time
func (r *MemoryTokenRevoker) RevokeAllForUser(_ context.Context, userID string, _ time.Duration) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cutoffs[userID] = time.Now()
	return nil
}

// IsUserRevoked reports whether the token predates the user's invalidation time
func (r *MemoryTokenRevoker) IsUserRevoked(_ context.Context, userID string, issuedAt time.Time) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	cutoff, ok := r.cutoffs[userID]
	if !ok {
		return false, nil
	}
	return issuedAt.UnixNano() <= cutoff.UnixNano(), nil
}

var _ TokenRevoker = (*MemoryTokenRevoker)(nil)
