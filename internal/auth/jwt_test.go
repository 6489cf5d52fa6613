package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndVerify(t *testing.T) {
	m := NewJWTManager("secret", "ai-translate")

	token, err := m.GenerateAccessToken("u1", time.Minute)
	require.NoError(t, err)

	claims, err := m.VerifyAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.UserID)
	assert.Equal(t, "ai-translate", claims.Issuer)
	assert.Equal(t, "u1", claims.Subject)
}

func TestVerifyRejects(t *testing.T) {
	m := NewJWTManager("secret", "ai-translate")
	token, err := m.GenerateAccessToken("u1", time.Minute)
	require.NoError(t, err)

	_, err = NewJWTManager("other", "ai-translate").VerifyAccessToken(token)
	assert.Error(t, err, "wrong secret")

	_, err = NewJWTManager("secret", "someone-else").VerifyAccessToken(token)
	assert.Error(t, err, "wrong issuer")

	_, err = m.VerifyAccessToken("not-a-token")
	assert.Error(t, err)

	none := jwt.NewWithClaims(jwt.SigningMethodNone, &JWTClaims{UserID: "u1"})
	unsigned, err := none.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = m.VerifyAccessToken(unsigned)
	assert.Error(t, err, "alg none must be rejected")
}

func TestVerifyExpired(t *testing.T) {
	m := NewJWTManager("secret", "")
	claims := &JWTClaims{
		UserID: "u1",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
	require.NoError(t, err)

	_, err = m.VerifyAccessToken(token)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestGenerateRequiresUser(t *testing.T) {
	_, err := NewJWTManager("secret", "").GenerateAccessToken("", 0)
	assert.Error(t, err)
}

func TestExtractTokenFromHeader(t *testing.T) {
	token, err := ExtractTokenFromHeader("Bearer abc.def")
	require.NoError(t, err)
	assert.Equal(t, "abc.def", token)

	_, err = ExtractTokenFromHeader("Basic abc")
	assert.Error(t, err)
	_, err = ExtractTokenFromHeader("Bearer ")
	assert.Error(t, err)
	_, err = ExtractTokenFromHeader("")
	assert.Error(t, err)
}
