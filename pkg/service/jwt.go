package service

import (
	"errors"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	apperrors "solicitation-system/pkg/errors"
	"solicitation-system/pkg/session"
)

// JWTService emite e confere os tokens do backend de desenvolvimento. Os
// claims são os mesmos que o cliente lê sem verificar.
type JWTService interface {
	GenerateToken(claims session.Claims) (string, error)
	ValidateToken(tokenString string) (*session.Claims, error)
	GetAccessTokenTTL() time.Duration
}

type jwtService struct {
	secretKey      string
	accessTokenExp time.Duration
	now            func() time.Time
	logger         *zap.Logger
}

func NewJWTService(secretKey string, accessTokenExp time.Duration, logger *zap.Logger) JWTService {
	return &jwtService{
		secretKey:      secretKey,
		accessTokenExp: accessTokenExp,
		now:            time.Now,
		logger:         logger.Named("jwt"),
	}
}

func (s *jwtService) GenerateToken(claims session.Claims) (string, error) {
	now := s.now()
	claims.IssuedAt = jwt.NewNumericDate(now)
	claims.ExpiresAt = jwt.NewNumericDate(now.Add(s.accessTokenExp))

	token := jwt.NewWithClaims(jwt.SigningMethodHS512, &claims)
	return token.SignedString([]byte(s.secretKey))
}

func (s *jwtService) GetAccessTokenTTL() time.Duration {
	return s.accessTokenExp
}

func (s *jwtService) ValidateToken(tokenString string) (*session.Claims, error) {
	claims := &session.Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, apperrors.ErrInvalidSigningMethod
		}
		return []byte(s.secretKey), nil
	}, jwt.WithTimeFunc(s.now))

	if err != nil {
		s.logger.Debug("token recusado", zap.Error(err))
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, apperrors.ErrTokenExpired
		}
		return nil, apperrors.ErrAuthInvalid
	}
	if !token.Valid || claims.Name == "" || claims.Nivel < int(session.RoleRequester) {
		return nil, apperrors.ErrAuthInvalid
	}
	return claims, nil
}
