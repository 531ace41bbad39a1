package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"solicitation-system/pkg/contextkeys"
	apperrors "solicitation-system/pkg/errors"
	"solicitation-system/pkg/service"
	"solicitation-system/pkg/session"
	"solicitation-system/pkg/utils"
)

type AuthMiddleware struct {
	jwtService service.JWTService
	logger     *zap.Logger
}

func NewAuthMiddleware(jwtSvc service.JWTService, logger *zap.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService: jwtSvc,
		logger:     logger.Named("auth_middleware"),
	}
}

// Auth exige "Authorization: Bearer <token>" válido e guarda os claims no
// contexto da requisição.
func (m *AuthMiddleware) Auth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
		if authHeader == "" {
			return utils.ErrorResponse(c, apperrors.ErrEmptyAuthHeader, m.logger)
		}

		parts := strings.Fields(authHeader)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return utils.ErrorResponse(c, apperrors.ErrInvalidAuthHeader, m.logger)
		}

		claims, err := m.jwtService.ValidateToken(parts[1])
		if err != nil {
			return utils.ErrorResponse(c, err, m.logger)
		}

		ctx := contextkeys.WithClaims(c.Request().Context(), claims)
		c.SetRequest(c.Request().WithContext(ctx))
		return next(c)
	}
}

// RequireRole recusa com 403 quem tem nivel abaixo de min. Deve vir
// depois de Auth.
func (m *AuthMiddleware) RequireRole(min session.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, ok := contextkeys.ClaimsFrom(c.Request().Context())
			if !ok {
				return utils.ErrorResponse(c, apperrors.ErrAuthMissing, m.logger)
			}
			if session.Role(claims.Nivel) < min {
				m.logger.Warn("acesso negado", zap.String("user", claims.Name), zap.Int("nivel", claims.Nivel))
				return utils.ErrorResponse(c, apperrors.ErrForbidden, m.logger)
			}
			return next(c)
		}
	}
}
