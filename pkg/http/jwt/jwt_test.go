package jwt

import (
	"strings"
	"testing"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "unit-test-secret"

func TestGenTokenRoundTrip(t *testing.T) {
	companyId := uint64(42)
	aToken, rToken, expiresIn, err := GenToken("alice", 7, &companyId,
		[]string{"ROLE_ops", "system:user:list", "admin"}, []byte(testSecret), 30, 60*24)
	require.NoError(t, err)
	require.NotEmpty(t, aToken)
	require.NotEmpty(t, rToken)
	assert.Greater(t, expiresIn, int64(0))
	assert.LessOrEqual(t, expiresIn, int64(30*time.Minute/time.Millisecond))

	claims, err := ParseToken(aToken, testSecret)
	require.NoError(t, err)
	assert.Equal(t, "alice", claims.Subject)
	assert.Equal(t, uint64(7), claims.UserId)
	require.NotNil(t, claims.CompanyId)
	assert.Equal(t, uint64(42), *claims.CompanyId)
	assert.Equal(t, []string{"ROLE_ops", "system:user:list", "admin"}, claims.AuthorityList())
}

func TestGenTokenNilCompany(t *testing.T) {
	aToken, _, _, err := GenToken("bob", 8, nil, nil, []byte(testSecret), 30, 60)
	require.NoError(t, err)

	claims, err := ParseToken(aToken, testSecret)
	require.NoError(t, err)
	assert.Nil(t, claims.CompanyId)
	assert.Empty(t, claims.AuthorityList())
}

func TestParseTokenExpired(t *testing.T) {
	now := time.Now()
	claims := &AuthClaims{
		UserId: 1,
		RegisteredClaims: jwtlib.RegisteredClaims{
			Subject:   "carol",
			IssuedAt:  jwtlib.NewNumericDate(now.Add(-2 * time.Hour)),
			ExpiresAt: jwtlib.NewNumericDate(now.Add(-time.Hour)),
		},
	}
	token, err := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)

	_, err = ParseToken(token, testSecret)
	assert.ErrorIs(t, err, jwtlib.ErrTokenExpired)
}

// 临近过期但还没过期的令牌必须能通过校验
func TestParseTokenJustBeforeExpiry(t *testing.T) {
	now := time.Now()
	claims := &AuthClaims{
		UserId: 2,
		RegisteredClaims: jwtlib.RegisteredClaims{
			Subject:   "carol",
			IssuedAt:  jwtlib.NewNumericDate(now.Add(-time.Hour)),
			ExpiresAt: jwtlib.NewNumericDate(now.Add(time.Second)),
		},
	}
	token, err := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)

	parsed, err := ParseToken(token, testSecret)
	require.NoError(t, err)
	assert.Equal(t, uint64(2), parsed.UserId)
}

func TestParseTokenTampered(t *testing.T) {
	aToken, _, _, err := GenToken("dave", 9, nil, []string{"ROLE_dev"}, []byte(testSecret), 30, 60)
	require.NoError(t, err)

	// 篡改签名段最后一个字节
	last := aToken[len(aToken)-1]
	replacement := byte('A')
	if last == 'A' {
		replacement = 'B'
	}
	tampered := aToken[:len(aToken)-1] + string(replacement)

	_, err = ParseToken(tampered, testSecret)
	require.Error(t, err)
	assert.NotErrorIs(t, err, jwtlib.ErrTokenExpired)
}

func TestParseTokenWrongSecret(t *testing.T) {
	aToken, _, _, err := GenToken("erin", 10, nil, nil, []byte(testSecret), 30, 60)
	require.NoError(t, err)

	_, err = ParseToken(aToken, "another-secret")
	require.Error(t, err)
}

func TestParseTokenRejectsNoneAlg(t *testing.T) {
	token, err := jwtlib.NewWithClaims(jwtlib.SigningMethodNone, &AuthClaims{
		RegisteredClaims: jwtlib.RegisteredClaims{
			Subject:   "mallory",
			ExpiresAt: jwtlib.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}).SignedString(jwtlib.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = ParseToken(token, testSecret)
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "invalid token"))
}

func TestRefreshToken(t *testing.T) {
	_, rToken, _, err := GenToken("frank", 11, nil, []string{"ROLE_dev"}, []byte(testSecret), 30, 60)
	require.NoError(t, err)

	newA, newR, expiresIn, err := RefreshToken(rToken, "frank", 11, nil, []string{"ROLE_dev"}, testSecret, 30, 60)
	require.NoError(t, err)
	assert.NotEmpty(t, newA)
	assert.NotEmpty(t, newR)
	assert.Greater(t, expiresIn, int64(0))

	_, _, _, err = RefreshToken("garbage.token.here", "frank", 11, nil, nil, testSecret, 30, 60)
	assert.Error(t, err)
}
