package adapter

import (
	"context"
	"testing"
	"time"

	"github.com/Nickzanarak/Edu/internal/domain"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisCacheAdapterGet(t *testing.T) {
	db, mock := redismock.NewClientMock()
	cache := NewRedisCacheAdapter(db)

	mock.ExpectGet("edugen:summary:abc").SetVal(`{"overview":"x"}`)
	val, err := cache.Get(context.Background(), "edugen:summary:abc")
	require.NoError(t, err)
	assert.Equal(t, `{"overview":"x"}`, val)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisCacheAdapterGetMiss(t *testing.T) {
	db, mock := redismock.NewClientMock()
	cache := NewRedisCacheAdapter(db)

	mock.ExpectGet("missing").RedisNil()
	_, err := cache.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrCacheMiss)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisCacheAdapterSetDelete(t *testing.T) {
	db, mock := redismock.NewClientMock()
	cache := NewRedisCacheAdapter(db)

	mock.ExpectSet("k", "v", time.Minute).SetVal("OK")
	require.NoError(t, cache.Set(context.Background(), "k", "v", time.Minute))

	mock.ExpectDel("k").SetVal(1)
	require.NoError(t, cache.Delete(context.Background(), "k"))

	assert.NoError(t, mock.ExpectationsWereMet())
}
