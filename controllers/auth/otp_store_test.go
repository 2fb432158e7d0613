package authControllers

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateOTP(t *testing.T) {
	otp := GenerateOTP(6)
	require.Len(t, otp, 6)
	for _, r := range otp {
		assert.True(t, r >= '0' && r <= '9')
	}
}

func TestMemoryOTPStore(t *testing.T) {
	store := NewMemoryOTPStore()
	ctx := context.Background()

	_, ok, err := store.Get(ctx, "+251912345678")
	require.NoError(t, err)
	assert.False(t, ok)

	pending := PendingOTP{Code: "123456", Name: "Abebe", Action: OTPActionSignup, IssuedAt: time.Now()}
	require.NoError(t, store.Put(ctx, "+251912345678", pending))

	got, ok, err := store.Get(ctx, "+251912345678")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "123456", got.Code)
	assert.Equal(t, OTPActionSignup, got.Action)

	require.NoError(t, store.Delete(ctx, "+251912345678"))
	_, ok, err = store.Get(ctx, "+251912345678")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemoryOTPStoreExpiry(t *testing.T) {
	store := NewMemoryOTPStore()
	ctx := context.Background()

	// Issued beyond the validity window.
	expired := PendingOTP{Code: "123456", Action: OTPActionLogin, IssuedAt: time.Now().Add(-OTPValidity - time.Second)}
	require.NoError(t, store.Put(ctx, "+251912345678", expired))

	_, ok, err := store.Get(ctx, "+251912345678")
	require.NoError(t, err)
	assert.False(t, ok, "expired codes must not be returned")
}

func TestPendingOTPExpired(t *testing.T) {
	fresh := PendingOTP{IssuedAt: time.Now()}
	assert.False(t, fresh.Expired())

	old := PendingOTP{IssuedAt: time.Now().Add(-301 * time.Second)}
	assert.True(t, old.Expired())
}
