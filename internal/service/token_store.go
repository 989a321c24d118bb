package service

import (
	"context"
	"fmt"
	"time"

	"hospital-directory/pkg/jwt"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// TokenStore is the allow-list of issued session tokens. A token that is not
// in the store has been revoked or has expired.
type TokenStore interface {
	Store(ctx context.Context, userID uuid.UUID, tokenType jwt.TokenType, tokenID string, ttl time.Duration) error
	Exists(ctx context.Context, userID uuid.UUID, tokenType jwt.TokenType, tokenID string) (bool, error)
	Revoke(ctx context.Context, userID uuid.UUID, tokenType jwt.TokenType, tokenID string) error
	// RevokeAll drops every access and refresh token issued to userID.
	RevokeAll(ctx context.Context, userID uuid.UUID) error
}

type redisTokenStore struct {
	client *redis.Client
}

func NewRedisTokenStore(client *redis.Client) TokenStore {
	return &redisTokenStore{client: client}
}

func tokenKey(userID uuid.UUID, tokenType jwt.TokenType, tokenID string) string {
	return fmt.Sprintf("%s_token:%s:%s", tokenType, userID.String(), tokenID)
}

// userTokenPattern matches every key tokenKey produces for userID.
func userTokenPattern(userID uuid.UUID) string {
	return fmt.Sprintf("*_token:%s:*", userID.String())
}

func (s *redisTokenStore) Store(ctx context.Context, userID uuid.UUID, tokenType jwt.TokenType, tokenID string, ttl time.Duration) error {
	return s.client.Set(ctx, tokenKey(userID, tokenType, tokenID), "valid", ttl).Err()
}

func (s *redisTokenStore) Exists(ctx context.Context, userID uuid.UUID, tokenType jwt.TokenType, tokenID string) (bool, error) {
	n, err := s.client.Exists(ctx, tokenKey(userID, tokenType, tokenID)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (s *redisTokenStore) Revoke(ctx context.Context, userID uuid.UUID, tokenType jwt.TokenType, tokenID string) error {
	return s.client.Del(ctx, tokenKey(userID, tokenType, tokenID)).Err()
}

func (s *redisTokenStore) RevokeAll(ctx context.Context, userID uuid.UUID) error {
	iter := s.client.Scan(ctx, 0, userTokenPattern(userID), 100).Iterator()

	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}
	return s.client.Del(ctx, keys...).Err()
}
