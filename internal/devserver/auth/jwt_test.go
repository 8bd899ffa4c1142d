package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMintAndValidate_RoundTrip(t *testing.T) {
	m := NewTokenManager("secret", time.Hour)

	token, err := m.Mint("user-1", "u@example.com")
	require.NoError(t, err)

	claims, err := m.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "u@example.com", claims.Email)
}

func TestValidate_WrongSecret(t *testing.T) {
	token, err := NewTokenManager("secret-a", time.Hour).Mint("user-1", "")
	require.NoError(t, err)

	_, err = NewTokenManager("secret-b", time.Hour).Validate(token)

	assert.Error(t, err)
}

func TestValidate_ExpiredToken(t *testing.T) {
	m := NewTokenManager("secret", -time.Minute)

	token, err := m.Mint("user-1", "")
	require.NoError(t, err)

	_, err = m.Validate(token)

	assert.Error(t, err)
}

func TestValidate_Garbage(t *testing.T) {
	m := NewTokenManager("secret", time.Hour)

	_, err := m.Validate("not-a-jwt")

	assert.Error(t, err)
}
