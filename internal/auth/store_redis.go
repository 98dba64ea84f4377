// Copyright (c) 2026 Dentora. All rights reserved.
// Author: dev@dentora.app

package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/dentora/dentora/internal/platform/constants"
)

// # Token Revocation List

// RedisRevocationList implements TokenRevocationList using Redis.
//
// Revoked refresh tokens are stored under their jti with a TTL equal to the
// token's remaining lifetime, so the list cleans itself up and never outgrows
// the set of tokens that could still be replayed.
type RedisRevocationList struct {
	client *redis.Client
}

// NewRevocationList creates a new Redis-backed TokenRevocationList.
func NewRevocationList(client *redis.Client) *RedisRevocationList {
	return &RedisRevocationList{client: client}
}

/*
Revoke marks a refresh token id as invalid for its remaining lifetime.

Description: A non-positive TTL means the token has already expired naturally,
so there is nothing left to revoke.

Parameters:
  - ctx: context.Context
  - tokenID: string (the jti claim)
  - ttl: time.Duration

Returns:
  - error: Storage failures
*/
func (list *RedisRevocationList) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}

	key := constants.RedisPrefixRevokedToken + tokenID
	if err := list.client.Set(ctx, key, "1", ttl).Err(); err != nil {
		return fmt.Errorf("redis_revocation_list_set_failed: %w", err)
	}

	return nil
}

/*
IsRevoked reports whether a refresh token id has been revoked.

Parameters:
  - ctx: context.Context
  - tokenID: string (the jti claim)

Returns:
  - bool: true when the token has been revoked
  - error: Connectivity errors
*/
func (list *RedisRevocationList) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	key := constants.RedisPrefixRevokedToken + tokenID

	if err := list.client.Get(ctx, key).Err(); err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, fmt.Errorf("redis_revocation_list_get_failed: %w", err)
	}

	return true, nil
}
