package service

import (
	"testing"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	apperrors "solicitation-system/pkg/errors"
	"solicitation-system/pkg/session"
)

func TestJWTService_RoundTrip(t *testing.T) {
	svc := NewJWTService("segredo", time.Hour, zap.NewNop())

	token, err := svc.GenerateToken(session.Claims{Name: "Ana", Filial: "Campinas", CostCenter: "CC-1", Nivel: 2})
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "Ana", claims.Name)
	assert.Equal(t, 2, claims.Nivel)

	// o cliente lê o mesmo token sem a chave
	sess, err := session.Decode(token)
	require.NoError(t, err)
	assert.Equal(t, session.RoleAdministrator, sess.Role)
	assert.Equal(t, time.Hour, svc.GetAccessTokenTTL())
}

func TestJWTService_Rejections(t *testing.T) {
	svc := NewJWTService("segredo", time.Hour, zap.NewNop())

	other := NewJWTService("outro-segredo", time.Hour, zap.NewNop())
	token, err := other.GenerateToken(session.Claims{Name: "Ana", Nivel: 1})
	require.NoError(t, err)
	_, err = svc.ValidateToken(token)
	assert.ErrorIs(t, err, apperrors.ErrAuthInvalid)

	expired := NewJWTService("segredo", -time.Minute, zap.NewNop())
	token, err = expired.GenerateToken(session.Claims{Name: "Ana", Nivel: 1})
	require.NoError(t, err)
	_, err = svc.ValidateToken(token)
	assert.ErrorIs(t, err, apperrors.ErrTokenExpired)

	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, session.Claims{Name: "Ana", Nivel: 2}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = svc.ValidateToken(none)
	assert.ErrorIs(t, err, apperrors.ErrAuthInvalid)
}
