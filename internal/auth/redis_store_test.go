package auth

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/go-redis/redismock/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisStore_SetAndGet(t *testing.T) {
	db, mock := redismock.NewClientMock()
	defer db.Close()

	store := NewRedisStore(db, "test-session-secret")
	ctx := context.Background()

	token := "test_token"
	issuedAt := time.Now()
	sessionKey := store.keyPrefix + token

	mock.ExpectSet(sessionKey, issuedAt.UnixNano(), 0).SetVal("OK")
	mock.ExpectSAdd(store.setKey, token).SetVal(1)
	require.NoError(t, store.Set(ctx, token, SessionRecord{IssuedOrRefreshedAt: issuedAt}))

	mock.ExpectGet(sessionKey).SetVal(fmt.Sprintf("%d", issuedAt.UnixNano()))
	record, found, err := store.Get(ctx, token)
	require.NoError(t, err)
	require.True(t, found)
	assert.True(t, record.IssuedOrRefreshedAt.Equal(issuedAt))

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisStore_GetMissing(t *testing.T) {
	db, mock := redismock.NewClientMock()
	defer db.Close()

	store := NewRedisStore(db, "test-session-secret")

	mock.ExpectGet(store.keyPrefix + "nope").RedisNil()
	_, found, err := store.Get(context.Background(), "nope")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestRedisStore_Delete(t *testing.T) {
	db, mock := redismock.NewClientMock()
	defer db.Close()

	store := NewRedisStore(db, "test-session-secret")

	token := "test_token"
	mock.ExpectDel(store.keyPrefix + token).SetVal(1)
	mock.ExpectSRem(store.setKey, token).SetVal(1)
	require.NoError(t, store.Delete(context.Background(), token))

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisStore_Tokens(t *testing.T) {
	db, mock := redismock.NewClientMock()
	defer db.Close()

	store := NewRedisStore(db, "test-session-secret")

	mock.ExpectSMembers(store.setKey).SetVal([]string{"token1", "token2"})
	tokens, err := store.Tokens(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"token1", "token2"}, tokens)
}

// different secrets namespace the keys differently, so rotating the
// secret orphans previously issued sessions
func TestRedisStore_SecretNamespacesKeys(t *testing.T) {
	db, _ := redismock.NewClientMock()
	defer db.Close()

	store1 := NewRedisStore(db, "secret-one")
	store2 := NewRedisStore(db, "secret-two")
	assert.NotEqual(t, store1.keyPrefix, store2.keyPrefix)
	assert.NotEqual(t, store1.setKey, store2.setKey)
}
