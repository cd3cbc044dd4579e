package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var alice = Identity{ID: "01HZX3K6Q8W2T9V7B5N4M3C2D1", IsAdmin: true, Name: "Alice Admin", Email: "alice@example.com", Phone: 5551234}

func TestTokenRoundTrip(t *testing.T) {
	tm := NewTokenManager("secret", 0)
	tok, err := tm.Issue(alice)
	require.NoError(t, err)

	got, err := tm.Verify(tok)
	require.NoError(t, err)
	assert.Equal(t, alice, got)
}

func TestTokenWithoutTTLHasNoExpiry(t *testing.T) {
	tm := NewTokenManager("secret", 0)
	tok, err := tm.Issue(alice)
	require.NoError(t, err)

	var claims Claims
	_, _, err = jwt.NewParser().ParseUnverified(tok, &claims)
	require.NoError(t, err)
	assert.Nil(t, claims.ExpiresAt)
	assert.Equal(t, alice.ID, claims.UserID)
}

func TestTokenExpires(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	tm := NewTokenManager("secret", time.Hour)
	tm.now = func() time.Time { return now }

	tok, err := tm.Issue(alice)
	require.NoError(t, err)
	_, err = tm.Verify(tok)
	require.NoError(t, err)

	tm.now = func() time.Time { return now.Add(2 * time.Hour) }
	_, err = tm.Verify(tok)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenRejectsForeignSignatures(t *testing.T) {
	tok, err := NewTokenManager("other", 0).Issue(alice)
	require.NoError(t, err)
	_, err = NewTokenManager("secret", 0).Verify(tok)
	assert.ErrorIs(t, err, ErrInvalidToken)

	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{UserID: alice.ID, IsAdmin: true}).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = NewTokenManager("secret", 0).Verify(none)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = NewTokenManager("secret", 0).Verify("garbage")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
