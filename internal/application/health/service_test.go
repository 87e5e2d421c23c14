package health

import (
	"context"
	"errors"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePinger struct{ err error }

func (f fakePinger) Ping() error { return f.err }

func setupRedis(t *testing.T) *redis.Client {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() {
		rdb.Close()
		mr.Close()
	})
	return rdb
}

func TestCollectHealth_WithNilRedis(t *testing.T) {
	result := CollectHealth(context.Background(), nil, nil)
	assert.Equal(t, "issue", result.Status)
	assert.Equal(t, "disconnected", result.Dependencies["database"].Status)
	assert.Equal(t, "disconnected", result.Dependencies["redis"].Status)
	assert.Equal(t, 0, result.Traffic.TotalRequests)
}

func TestCollectHealth_WithMiniredis(t *testing.T) {
	rdb := setupRedis(t)
	ctx := context.Background()

	result := CollectHealth(ctx, rdb, fakePinger{})
	assert.Equal(t, "ok", result.Status)
	assert.Equal(t, "connected", result.Dependencies["redis"].Status)
	assert.Equal(t, "connected", result.Dependencies["database"].Status)
	assert.Equal(t, "100", result.Traffic.SuccessRate)

	require.NoError(t, rdb.Set(ctx, KeyReqTotal, "10", 0).Err())
	require.NoError(t, rdb.Set(ctx, KeyReqErrors, "2", 0).Err())
	require.NoError(t, rdb.Set(ctx, KeyResTime, "150.5", 0).Err())
	require.NoError(t, rdb.Set(ctx, KeyResCount, "10", 0).Err())
	require.NoError(t, rdb.Set(ctx, KeyStartTime, "1000000", 0).Err())

	result2 := CollectHealth(ctx, rdb, nil)
	assert.Equal(t, "issue", result2.Status)
	assert.Equal(t, 10, result2.Traffic.TotalRequests)
	assert.Equal(t, 2, result2.Traffic.FailedCount)
	assert.Equal(t, 8, result2.Traffic.SuccessCount)
	assert.Equal(t, "80.0", result2.Traffic.SuccessRate)
	assert.Equal(t, "15.05", result2.Traffic.AvgResponseTime)
}

func TestCollectHealth_DBError(t *testing.T) {
	result := CollectHealth(context.Background(), nil, fakePinger{err: errors.New("down")})
	assert.Equal(t, "error", result.Dependencies["database"].Status)
}

func TestResetAndRecentErrors(t *testing.T) {
	rdb := setupRedis(t)
	ctx := context.Background()

	require.NoError(t, rdb.LPush(ctx, KeyErrorLog, `{"path":"/api","message":"boom"}`, "not json").Err())
	entries, err := RecentErrors(ctx, rdb)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "boom", entries[0]["message"])

	require.NoError(t, rdb.Set(ctx, KeyReqTotal, "5", 0).Err())
	require.NoError(t, Reset(ctx, rdb))
	_, err = rdb.Get(ctx, KeyReqTotal).Result()
	assert.ErrorIs(t, err, redis.Nil)
	_, err = rdb.Get(ctx, KeyStartTime).Result()
	assert.NoError(t, err)
	n, err := rdb.LLen(ctx, KeyErrorLog).Result()
	require.NoError(t, err)
	assert.Zero(t, n)
}
