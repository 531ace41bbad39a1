package controllers

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"solicitation-system/internal/dto"
	"solicitation-system/internal/store"
	apperrors "solicitation-system/pkg/errors"
	"solicitation-system/pkg/service"
	"solicitation-system/pkg/session"
	"solicitation-system/pkg/utils"
)

type AuthController struct {
	users      *store.Collection[store.UserRecord]
	jwtService service.JWTService
	logger     *zap.Logger
}

func NewAuthController(users *store.Collection[store.UserRecord], jwtService service.JWTService, logger *zap.Logger) *AuthController {
	return &AuthController{users: users, jwtService: jwtService, logger: logger.Named("auth_controller")}
}

// Login responde {token, nivel}. Usuário inexistente, inativo ou senha
// errada recebem a mesma resposta.
func (c *AuthController) Login(ctx echo.Context) error {
	var payload dto.LoginDTO
	if err := bindAndValidate(ctx, &payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	all, err := c.users.All(ctx.Request().Context())
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	var user *store.UserRecord
	for i := range all {
		if strings.EqualFold(all[i].Email, strings.TrimSpace(payload.Email)) && !all[i].StatusDelete {
			user = &all[i]
			break
		}
	}
	if user == nil || bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(payload.Password)) != nil {
		c.logger.Info("login recusado", zap.String("email", payload.Email))
		return utils.ErrorResponse(ctx, apperrors.ErrInvalidCredentials, c.logger)
	}

	token, err := c.jwtService.GenerateToken(session.Claims{
		Name:       user.Name,
		Filial:     user.Filial,
		CostCenter: user.CostCenter,
		Nivel:      user.LevelUser,
	})
	if err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewHttpError(http.StatusInternalServerError, "Não foi possível gerar o token", err, nil), c.logger)
	}

	return ctx.JSON(http.StatusOK, dto.LoginResponseDTO{Token: token, Nivel: user.LevelUser})
}
