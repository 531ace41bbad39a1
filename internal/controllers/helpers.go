package controllers

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	apperrors "solicitation-system/pkg/errors"
	"solicitation-system/pkg/utils"
)

// bindPatch lê o corpo como um conjunto de campos; só os presentes são
// aplicados ao documento.
func bindPatch(ctx echo.Context) (map[string]json.RawMessage, error) {
	raw, err := io.ReadAll(ctx.Request().Body)
	if err != nil {
		return nil, apperrors.NewHttpError(http.StatusBadRequest, "Não foi possível ler o corpo da requisição", err, nil)
	}
	var patch map[string]json.RawMessage
	if err := json.Unmarshal(raw, &patch); err != nil {
		return nil, apperrors.NewHttpError(http.StatusBadRequest, "JSON inválido", err, nil)
	}
	delete(patch, "id")
	if len(patch) == 0 {
		return nil, apperrors.NewHttpError(http.StatusBadRequest, apperrors.ErrEmptyPatch.Error(), apperrors.ErrEmptyPatch, nil)
	}
	return patch, nil
}

func bindAndValidate(ctx echo.Context, target interface{}) error {
	if err := ctx.Bind(target); err != nil {
		return apperrors.NewHttpError(http.StatusBadRequest, "JSON inválido", err, nil)
	}
	return ctx.Validate(target)
}

// deletedFilter interpreta ?deleted=: nil quando ausente.
func deletedFilter(ctx echo.Context) *bool {
	switch strings.ToLower(strings.TrimSpace(ctx.QueryParam("deleted"))) {
	case "true":
		v := true
		return &v
	case "false":
		v := false
		return &v
	}
	return nil
}

func matchesAny(value string, wanted []string) bool {
	if len(wanted) == 0 {
		return true
	}
	for _, w := range wanted {
		if utils.EqualFoldAccents(value, w) {
			return true
		}
	}
	return false
}

// queryValues ignora valores em branco.
func queryValues(ctx echo.Context, key string) []string {
	var out []string
	for _, v := range ctx.QueryParams()[key] {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
