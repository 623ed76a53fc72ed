package server

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/pkg/errors"

	"github.com/sanctionwatch/screening-endpoint/screening"
	"github.com/sanctionwatch/screening-endpoint/types"
)

var RedisPrefix = "screening-endpoint:"

// Screen results are cached per list digest, so swapping in a new list
// version naturally orphans every cached verdict of the old one.
var RedisPrefixScreenResult = RedisPrefix + "screen-result:"
var RedisExpiryScreenResult = time.Duration(1 * time.Hour)

func RedisKeyScreenResult(listSha256, chain, canonicalAddress string) string {
	return fmt.Sprintf("%s%s:%s:%s", RedisPrefixScreenResult, listSha256, screening.ResolveChain(chain), canonicalAddress)
}

type RedisState struct {
	RedisClient *redis.Client
}

func NewRedisState(redisUrl string) (*RedisState, error) {
	// Setup redis client and check connection
	redisClient := redis.NewClient(&redis.Options{Addr: redisUrl})

	// Try to get a key to see if there's an error with the connection
	if err := redisClient.Get(context.Background(), "somekey").Err(); err != nil && err != redis.Nil {
		return nil, errors.Wrap(err, "redis init error")
	}

	return &RedisState{
		RedisClient: redisClient,
	}, nil
}

func (s *RedisState) SetScreenResult(listSha256, chain, canonicalAddress string, result *types.ScreenResult) error {
	key := RedisKeyScreenResult(listSha256, chain, canonicalAddress)
	data, err := json.Marshal(result)
	if err != nil {
		return err
	}
	return s.RedisClient.Set(context.Background(), key, data, RedisExpiryScreenResult).Err()
}

func (s *RedisState) GetScreenResult(listSha256, chain, canonicalAddress string) (result *types.ScreenResult, found bool, err error) {
	key := RedisKeyScreenResult(listSha256, chain, canonicalAddress)
	val, err := s.RedisClient.Get(context.Background(), key).Result()
	if err == redis.Nil {
		return nil, false, nil // just not found
	} else if err != nil {
		return nil, true, err // found but error
	}

	result = new(types.ScreenResult)
	if err := json.Unmarshal([]byte(val), result); err != nil {
		return nil, true, err
	}
	return result, true, nil
}
