package utils

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	apperrors "solicitation-system/pkg/errors"
)

// ErrorBody é o formato de erro que o cliente espera.
type ErrorBody struct {
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

var errorStatus = map[error]int{
	apperrors.ErrEmptyAuthHeader:      http.StatusUnauthorized,
	apperrors.ErrInvalidAuthHeader:    http.StatusUnauthorized,
	apperrors.ErrAuthMissing:          http.StatusUnauthorized,
	apperrors.ErrAuthInvalid:          http.StatusUnauthorized,
	apperrors.ErrTokenExpired:         http.StatusUnauthorized,
	apperrors.ErrInvalidSigningMethod: http.StatusUnauthorized,
	apperrors.ErrInvalidCredentials:   http.StatusUnauthorized,
	apperrors.ErrForbidden:            http.StatusForbidden,
	apperrors.ErrNotFound:             http.StatusNotFound,
	apperrors.ErrBadRequest:           http.StatusBadRequest,
}

func ErrorResponse(c echo.Context, err error, logger *zap.Logger) error {
	code := http.StatusInternalServerError
	body := ErrorBody{Message: "Erro interno do servidor"}

	var httpErr *apperrors.HttpError
	var validationErr *apperrors.ValidationError
	var echoErr *echo.HTTPError

	switch {
	case errors.As(err, &httpErr):
		code, body.Message = httpErr.Code, httpErr.Message
	case errors.As(err, &validationErr):
		code, body.Message, body.Fields = http.StatusBadRequest, "Dados inválidos", validationErr.Fields
	case errors.As(err, &echoErr):
		code = echoErr.Code
		if msg, ok := echoErr.Message.(string); ok {
			body.Message = msg
		} else {
			body.Message = http.StatusText(code)
		}
	default:
		for sentinel, status := range errorStatus {
			if errors.Is(err, sentinel) {
				code, body.Message = status, sentinel.Error()
				break
			}
		}
	}

	if code >= http.StatusInternalServerError {
		logger.Error("erro no processamento da requisição", zap.String("uri", c.Request().RequestURI), zap.Error(err))
	} else {
		logger.Debug("requisição recusada", zap.Int("status", code), zap.Error(err))
	}
	return c.JSON(code, body)
}
