package auth_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kantor012/Product-Catalog/pkg/auth"
)

func TestTokenRoundTrip(t *testing.T) {
	token, err := auth.GenerateToken("64f1c0ffee0000000000abcd", true)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := auth.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "64f1c0ffee0000000000abcd", claims.UserID)
	assert.True(t, claims.IsAdmin)
	assert.NotNil(t, claims.ExpiresAt)
}

func TestValidateRejectsGarbage(t *testing.T) {
	_, err := auth.ValidateToken("not.a.token")
	assert.Error(t, err)

	_, err = auth.ValidateToken("")
	assert.Error(t, err)
}

func TestValidateRejectsTampering(t *testing.T) {
	token, err := auth.GenerateToken("64f1c0ffee0000000000abcd", false)
	require.NoError(t, err)

	// Flip a byte in the signature segment.
	tampered := token[:len(token)-2] + "xx"
	_, err = auth.ValidateToken(tampered)
	assert.Error(t, err)
}

func TestPasswordHashing(t *testing.T) {
	hash, err := auth.HashPassword("s3cret!")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret!", hash)

	assert.True(t, auth.CheckPassword(hash, "s3cret!"))
	assert.False(t, auth.CheckPassword(hash, "wrong"))
}

func TestNewVerificationToken(t *testing.T) {
	a := auth.NewVerificationToken()
	b := auth.NewVerificationToken()

	assert.Len(t, a, 64)
	assert.NotEqual(t, a, b)
}
