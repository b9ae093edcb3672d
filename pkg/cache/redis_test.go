package cache

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/sefazor/travelmarket-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeys(t *testing.T) {
	assert.Equal(t, "checkout:42", checkoutKey(42))
	assert.Equal(t, "revoked:abc", revokedKey("abc"))
}

func TestRevoke_ExpiredTokenIsNoop(t *testing.T) {
	// A nil client would panic if Revoke reached redis.
	s := &RedisStore{}
	assert.NoError(t, s.Revoke(context.Background(), "jti", time.Now().Add(-time.Minute)))
}

func TestCheckoutStaging(t *testing.T) {
	ctx := context.Background()
	db, mock := redismock.NewClientMock()
	store := NewRedisStore(db, 30*time.Minute)

	staged := models.StagedCheckout{PackageID: 7, NumberOfTravelers: 2, SessionID: "cs_test_1"}
	raw, err := json.Marshal(staged)
	require.NoError(t, err)

	mock.ExpectSet("checkout:42", raw, 30*time.Minute).SetVal("OK")
	mock.ExpectGet("checkout:42").SetVal(string(raw))
	mock.ExpectGetDel("checkout:42").SetVal(string(raw))
	mock.ExpectGetDel("checkout:42").RedisNil()
	mock.ExpectGet("checkout:42").RedisNil()

	require.NoError(t, store.StageCheckout(ctx, 42, staged))

	peeked, err := store.PeekCheckout(ctx, 42)
	require.NoError(t, err)
	require.NotNil(t, peeked)
	assert.Equal(t, staged, *peeked)

	taken, err := store.TakeCheckout(ctx, 42)
	require.NoError(t, err)
	require.NotNil(t, taken)
	assert.Equal(t, staged, *taken)

	// A repeated callback finds nothing.
	again, err := store.TakeCheckout(ctx, 42)
	require.NoError(t, err)
	assert.Nil(t, again)

	gone, err := store.PeekCheckout(ctx, 42)
	require.NoError(t, err)
	assert.Nil(t, gone)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTakeCheckout_Errors(t *testing.T) {
	ctx := context.Background()
	db, mock := redismock.NewClientMock()
	store := NewRedisStore(db, time.Minute)

	mock.ExpectGetDel("checkout:1").SetErr(errors.New("connection refused"))
	mock.ExpectGetDel("checkout:1").SetVal("{not json")

	_, err := store.TakeCheckout(ctx, 1)
	assert.ErrorContains(t, err, "connection refused")

	_, err = store.TakeCheckout(ctx, 1)
	assert.ErrorContains(t, err, "decode staged checkout")

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDiscardCheckout(t *testing.T) {
	db, mock := redismock.NewClientMock()
	store := NewRedisStore(db, time.Minute)

	mock.ExpectDel("checkout:9").SetVal(1)
	require.NoError(t, store.DiscardCheckout(context.Background(), 9))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIsRevoked(t *testing.T) {
	ctx := context.Background()
	db, mock := redismock.NewClientMock()
	store := NewRedisStore(db, time.Minute)

	mock.ExpectExists("revoked:gone").SetVal(1)
	mock.ExpectExists("revoked:live").SetVal(0)
	mock.ExpectExists("revoked:oops").SetErr(errors.New("timeout"))

	revoked, err := store.IsRevoked(ctx, "gone")
	require.NoError(t, err)
	assert.True(t, revoked)

	revoked, err = store.IsRevoked(ctx, "live")
	require.NoError(t, err)
	assert.False(t, revoked)

	_, err = store.IsRevoked(ctx, "oops")
	assert.Error(t, err)

	assert.NoError(t, mock.ExpectationsWereMet())
}
