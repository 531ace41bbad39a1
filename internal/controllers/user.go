package controllers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"solicitation-system/internal/dto"
	"solicitation-system/internal/entities"
	"solicitation-system/internal/store"
	apperrors "solicitation-system/pkg/errors"
	"solicitation-system/pkg/utils"
)

type UserController struct {
	users  *store.Collection[store.UserRecord]
	logger *zap.Logger
}

func NewUserController(users *store.Collection[store.UserRecord], logger *zap.Logger) *UserController {
	return &UserController{users: users, logger: logger.Named("user_controller")}
}

func publicUsers(records []store.UserRecord) []entities.User {
	out := make([]entities.User, 0, len(records))
	for _, r := range records {
		out = append(out, r.User)
	}
	return out
}

func (c *UserController) List(ctx echo.Context) error {
	all, err := c.users.All(ctx.Request().Context())
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return ctx.JSON(http.StatusOK, filterDeleted(publicUsers(all), deletedFilter(ctx)))
}

func (c *UserController) emailTaken(ctx echo.Context, email, exceptID string) (bool, error) {
	all, err := c.users.All(ctx.Request().Context())
	if err != nil {
		return false, err
	}
	for _, u := range all {
		if u.ID != exceptID && strings.EqualFold(u.Email, strings.TrimSpace(email)) {
			return true, nil
		}
	}
	return false, nil
}

func (c *UserController) Create(ctx echo.Context) error {
	var payload dto.CreateUserDTO
	if err := bindAndValidate(ctx, &payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	taken, err := c.emailTaken(ctx, payload.Email, "")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	if taken {
		return utils.ErrorResponse(ctx, apperrors.NewHttpError(http.StatusConflict, "E-mail já cadastrado", nil, nil), c.logger)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(payload.Password), bcrypt.DefaultCost)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	record := store.UserRecord{
		User: entities.User{
			ID:         uuid.NewString(),
			Name:       payload.Name,
			Email:      strings.TrimSpace(payload.Email),
			LevelUser:  payload.LevelUser,
			Filial:     payload.Filial,
			CostCenter: payload.CostCenter,
		},
		PasswordHash: string(hash),
	}
	if err := c.users.Insert(ctx.Request().Context(), record.ID, record); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	c.logger.Info("usuário cadastrado", zap.String("id", record.ID), zap.Int("levelUser", record.LevelUser))
	return ctx.JSON(http.StatusCreated, record.User)
}

// Update troca a senha quando "password" vem no corpo; o hash nunca é
// aceito do cliente.
func (c *UserController) Update(ctx echo.Context) error {
	patch, err := bindPatch(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	delete(patch, "passwordHash")
	if err := validatePatch[dto.UpdateUserDTO](ctx, patch); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	if raw, ok := patch["email"]; ok {
		var email string
		if err := json.Unmarshal(raw, &email); err == nil {
			taken, err := c.emailTaken(ctx, email, ctx.Param("id"))
			if err != nil {
				return utils.ErrorResponse(ctx, err, c.logger)
			}
			if taken {
				return utils.ErrorResponse(ctx, apperrors.NewHttpError(http.StatusConflict, "E-mail já cadastrado", nil, nil), c.logger)
			}
		}
	}

	if raw, ok := patch["password"]; ok {
		delete(patch, "password")
		var password string
		if err := json.Unmarshal(raw, &password); err != nil {
			return utils.ErrorResponse(ctx, apperrors.NewHttpError(http.StatusBadRequest, "Senha inválida", err, nil), c.logger)
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return utils.ErrorResponse(ctx, err, c.logger)
		}
		encoded, _ := json.Marshal(string(hash))
		patch["passwordHash"] = encoded
	}

	updated, err := c.users.Patch(ctx.Request().Context(), ctx.Param("id"), patch)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return ctx.JSON(http.StatusOK, updated.User)
}

func (c *UserController) SetStatus(ctx echo.Context) error {
	var payload dto.StatusDeleteDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewHttpError(http.StatusBadRequest, "JSON inválido", err, nil), c.logger)
	}
	encoded, _ := json.Marshal(payload.StatusDelete)
	updated, err := c.users.Patch(ctx.Request().Context(), ctx.Param("id"), map[string]json.RawMessage{"statusDelete": encoded})
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	c.logger.Info("status do usuário alterado", zap.String("id", updated.ID), zap.Bool("statusDelete", updated.StatusDelete))
	return ctx.JSON(http.StatusOK, updated.User)
}
