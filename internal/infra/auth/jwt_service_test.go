package auth

import (
	"testing"
	"time"

	"warranty/config"
	"warranty/internal/domain/entity"
	"warranty/internal/domain/service"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestJWTService(t *testing.T) service.TokenService {
	t.Helper()

	cfg := &config.Config{}
	cfg.SecretKey.Access = "test_access_secret_key_very_long_for_testing"

	svc, err := NewJWTService(cfg)
	require.NoError(t, err)

	return svc
}

func TestJWTService_RoundTripsBothSubjectKinds(t *testing.T) {
	svc := newTestJWTService(t)

	for _, kind := range []entity.AccountKind{entity.AccountKindOwner, entity.AccountKindMember} {
		t.Run(string(kind), func(t *testing.T) {
			subject := service.TokenSubject{Kind: kind, ID: uuid.New()}

			token, err := svc.GenerateToken(subject)
			require.NoError(t, err)

			claims, err := svc.ValidateToken(token)
			require.NoError(t, err)
			assert.Equal(t, subject, claims.Subject)
			assert.WithinDuration(t, time.Now().Add(defaultTokenTTL), claims.ExpiresAt, time.Minute)
		})
	}
}

func TestJWTService_InvalidToken(t *testing.T) {
	svc := newTestJWTService(t)

	claims, err := svc.ValidateToken("clearly-not-a-jwt-token-format")
	assert.Error(t, err)
	assert.Nil(t, claims)
	assert.Contains(t, err.Error(), "failed to parse token structure")
}

func TestJWTService_WrongSecret(t *testing.T) {
	svc := newTestJWTService(t)
	other := &jwtService{secret: "another-secret", ttl: time.Hour}

	token, err := other.GenerateToken(service.TokenSubject{Kind: entity.AccountKindOwner, ID: uuid.New()})
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	assert.Error(t, err)
}

func TestJWTService_ExpiredToken(t *testing.T) {
	expired := &jwtService{secret: "test_access_secret_key_very_long_for_testing", ttl: -time.Hour}

	token, err := expired.GenerateToken(service.TokenSubject{Kind: entity.AccountKindOwner, ID: uuid.New()})
	require.NoError(t, err)

	_, err = expired.ValidateToken(token)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestJWTService_MalformedSubject(t *testing.T) {
	svc := &jwtService{secret: "s", ttl: time.Hour}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "store_member_not-a-uuid",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}).SignedString([]byte("s"))
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	assert.ErrorIs(t, err, service.ErrMalformedSubject)
}

func TestJWTService_EmptySecret(t *testing.T) {
	svc, err := NewJWTService(&config.Config{})
	assert.Error(t, err)
	assert.Nil(t, svc)
	assert.Contains(t, err.Error(), "jwt secret must be provided")
}

func TestJWTService_ConfiguredTTL(t *testing.T) {
	cfg := &config.Config{Auth: &config.AuthConfig{TokenTTL: 2 * time.Hour}}
	cfg.SecretKey.Access = "secret"

	svc, err := NewJWTService(cfg)
	require.NoError(t, err)
	assert.Equal(t, 2*time.Hour, svc.TokenTTL())
}
