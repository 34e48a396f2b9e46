package auth

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/safetylog-backend/internal/domain"
)

const (
	testSecret = "test-secret-at-least-32-chars-long-for-security"
	testIssuer = "safetylog-test"
)

func TestJWTManager_GenerateAndValidate_Success(t *testing.T) {
	t.Parallel()

	manager := NewJWTManager(testSecret, testIssuer, 15*time.Minute)

	token, err := manager.GenerateAccessToken("user_2abcXYZ")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	owner, err := manager.ValidateToken(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, domain.OwnerID("user_2abcXYZ"), owner)
}

func TestJWTManager_GenerateAccessToken_EmptyOwner(t *testing.T) {
	t.Parallel()

	manager := NewJWTManager(testSecret, testIssuer, 15*time.Minute)

	_, err := manager.GenerateAccessToken("")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestJWTManager_ValidateToken_Failures(t *testing.T) {
	t.Parallel()

	manager := NewJWTManager(testSecret, testIssuer, 15*time.Minute)

	expired := NewJWTManager(testSecret, testIssuer, -time.Hour)
	expiredToken, err := expired.GenerateAccessToken("user_1")
	require.NoError(t, err)

	otherSecret := NewJWTManager("different-secret-32-chars-long-for-security!!", testIssuer, time.Hour)
	forgedToken, err := otherSecret.GenerateAccessToken("user_1")
	require.NoError(t, err)

	otherIssuer := NewJWTManager(testSecret, "wrong-issuer", time.Hour)
	wrongIssuerToken, err := otherIssuer.GenerateAccessToken("user_1")
	require.NoError(t, err)

	noSubject, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Issuer:    testIssuer,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}).SignedString([]byte(testSecret))
	require.NoError(t, err)

	noExpiry, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Issuer:  testIssuer,
		Subject: "user_1",
	}).SignedString([]byte(testSecret))
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{name: "empty", token: ""},
		{name: "not a jwt", token: "invalid-token"},
		{name: "missing signature", token: "header.payload"},
		{name: "expired", token: expiredToken},
		{name: "signed with another secret", token: forgedToken},
		{name: "wrong issuer", token: wrongIssuerToken},
		{name: "no subject", token: noSubject},
		{name: "no expiry", token: noExpiry},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			owner, err := manager.ValidateToken(context.Background(), tt.token)

			assert.ErrorIs(t, err, domain.ErrUnauthorized)
			assert.True(t, owner.IsZero())
		})
	}
}

func TestJWTManager_ValidateToken_RejectsNoneAlgorithm(t *testing.T) {
	t.Parallel()

	manager := NewJWTManager(testSecret, testIssuer, time.Hour)
	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{
		Issuer:    testIssuer,
		Subject:   "user_1",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = manager.ValidateToken(context.Background(), unsigned)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestJWTManager_ValidateToken_UsesClock(t *testing.T) {
	t.Parallel()

	manager := NewJWTManager(testSecret, testIssuer, time.Minute)
	issued := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)
	manager.now = func() time.Time { return issued }

	token, err := manager.GenerateAccessToken("user_1")
	require.NoError(t, err)

	_, err = manager.ValidateToken(context.Background(), token)
	require.NoError(t, err)

	manager.now = func() time.Time { return issued.Add(2 * time.Minute) }
	_, err = manager.ValidateToken(context.Background(), token)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}
