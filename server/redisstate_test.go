package server

import (
	"fmt"
	"testing"

	"github.com/alicebob/miniredis"
	"github.com/stretchr/testify/require"

	"github.com/sanctionwatch/screening-endpoint/types"
)

var redisServer *miniredis.Miniredis
var redisState *RedisState

func resetRedis() {
	var err error
	if redisServer != nil {
		redisServer.Close()
	}

	redisServer, err = miniredis.Run()
	if err != nil {
		panic(err)
	}

	redisState, err = NewRedisState(redisServer.Addr())
	if err != nil {
		panic(err)
	}
}

func TestRedisStateSetup(t *testing.T) {
	var err error
	redisState, err = NewRedisState("localhost:18279")
	require.NotNil(t, err, err)
}

func TestScreenResultCache(t *testing.T) {
	var err error
	resetRedis()

	listSha256 := "abc123"
	chain := "ETH"
	canonical := "0x7f367cc41522ce07553e823bf3be79a889debe1b"

	// Ensure key is correct, including alias folding
	key := RedisKeyScreenResult(listSha256, "XBT", "bc1qtest")
	expectedKey := fmt.Sprintf("%s%s:%s:%s", RedisPrefixScreenResult, listSha256, "BTC", "bc1qtest")
	require.Equal(t, expectedKey, key)

	// Get before set: should return not found
	cached, found, err := redisState.GetScreenResult(listSha256, chain, canonical)
	require.Nil(t, err, err)
	require.False(t, found)
	require.Nil(t, cached)

	result := &types.ScreenResult{
		Address:   canonical,
		Chain:     chain,
		Match:     true,
		RiskScore: types.MaxRiskScore,
		Reason:    types.ReasonExactMatch,
		ListVersion: types.ListVersion{
			Source: "OFAC_SDN_ADVANCED",
			SHA256: listSha256,
		},
	}

	err = redisState.SetScreenResult(listSha256, chain, canonical, result)
	require.Nil(t, err, err)

	cached, found, err = redisState.GetScreenResult(listSha256, chain, canonical)
	require.Nil(t, err, err)
	require.True(t, found)
	require.Equal(t, result, cached)

	// Same address under a different list digest is a miss
	cached, found, err = redisState.GetScreenResult("otherdigest", chain, canonical)
	require.Nil(t, err, err)
	require.False(t, found)

	// After resetting redis, we shouldn't be able to find the key
	resetRedis()
	_, found, err = redisState.GetScreenResult(listSha256, chain, canonical)
	require.Nil(t, err, err)
	require.False(t, found)
}
