package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"solicitation-system/internal/entities"
	"solicitation-system/internal/store"
	"solicitation-system/pkg/contextkeys"
	"solicitation-system/pkg/customvalidator"
	"solicitation-system/pkg/session"
)

func newSolicitationController(t *testing.T, items ...entities.Solicitation) *SolicitationController {
	t.Helper()
	st := store.NewMemoryStore()
	coll := store.NewCollection[entities.Solicitation](st, store.Solicitations)
	for _, item := range items {
		require.NoError(t, coll.Insert(context.Background(), item.ID, item))
	}
	return NewSolicitationController(coll, store.NewCollection[entities.Solicitation](st, store.Historic), zap.NewNop())
}

func serve(handler echo.HandlerFunc, method, target, body string, params ...string) *httptest.ResponseRecorder {
	e := echo.New()
	e.Validator = customvalidator.NewEchoValidator(customvalidator.New())
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	ctx := e.NewContext(req, rec)
	if len(params) == 2 {
		ctx.SetParamNames(params[0])
		ctx.SetParamValues(params[1])
	}
	_ = handler(ctx)
	return rec
}

// as injeta claims no contexto, como o middleware Auth faz.
func as(claims *session.Claims, handler echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		c.SetRequest(c.Request().WithContext(contextkeys.WithClaims(c.Request().Context(), claims)))
		return handler(c)
	}
}

var requesterClaims = &session.Claims{Name: "João", Filial: "Campinas", CostCenter: "CC-210", Nivel: 1}

func TestSolicitationController_LastWithoutRecords(t *testing.T) {
	c := newSolicitationController(t)
	rec := serve(c.Last, http.MethodGet, "/solicitation/last", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "0", strings.TrimSpace(rec.Body.String()))
}

func TestSolicitationController_ListFilters(t *testing.T) {
	created := time.Date(2024, 3, 10, 12, 0, 0, 0, time.Local)
	c := newSolicitationController(t,
		entities.Solicitation{ID: "a", NumSol: 1, UserName: "João", Filial: "Campinas", Urgency: "Alta", Status: "Pendente", CreatedAt: created},
		entities.Solicitation{ID: "b", NumSol: 2, UserName: "Ana", Filial: "Sorocaba", Urgency: "Baixa", Status: "Aberto", CreatedAt: created},
		entities.Solicitation{ID: "c", NumSol: 3, UserName: "João", Filial: "Campinas", Urgency: "Alta", Status: "Pendente", CreatedAt: created, StatusDelete: true},
		entities.Solicitation{ID: "d", NumSol: 4, UserName: "João", Filial: "Campinas", Urgency: "Alta", Status: "Pendente", CreatedAt: created.AddDate(0, 0, 5)},
	)

	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{"sem filtros", "", []string{"a", "b", "c", "d"}},
		{"somente ativas", "?deleted=false", []string{"a", "b", "d"}},
		{"chaves repetidas", "?deleted=false&status=Aberto&status=pendente", []string{"a", "b", "d"}},
		{"por solicitante sem acento", "?requester=joao&deleted=false", []string{"a", "d"}},
		{"intervalo de datas", "?startDate=2024-03-10T00:00:00&endDate=2024-03-10T23:59:59", []string{"a", "b", "c"}},
		{"filial e urgência", "?filial=Sorocaba&urgency=Baixa", []string{"b"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(c.List, http.MethodGet, "/solicitation"+tt.query, "")
			require.Equal(t, http.StatusOK, rec.Code)

			var got []entities.Solicitation
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
			ids := make([]string, 0, len(got))
			for _, s := range got {
				ids = append(ids, s.ID)
			}
			assert.Equal(t, tt.want, ids)
		})
	}

	t.Run("data inválida", func(t *testing.T) {
		rec := serve(c.List, http.MethodGet, "/solicitation?startDate=10/03/2024", "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestSolicitationController_Update(t *testing.T) {
	c := newSolicitationController(t, entities.Solicitation{ID: "a", NumSol: 7, UserName: "João", Filial: "Campinas", CostCenter: "CC-210", Status: "Pendente"})

	rec := serve(c.Update, http.MethodPut, "/solicitation/a",
		`{"status":"Finalizado","numSol":99,"id":"x","userName":"Outro","filial":"Sorocaba","costCenter":"CC-999"}`, "id", "a")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var got entities.Solicitation
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "a", got.ID)
	assert.Equal(t, 7, got.NumSol)
	assert.Equal(t, "João", got.UserName)
	assert.Equal(t, "Campinas", got.Filial)
	assert.Equal(t, "CC-210", got.CostCenter)
	assert.Equal(t, "Finalizado", got.Status)

	rec = serve(c.Update, http.MethodPut, "/solicitation/a", `{}`, "id", "a")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = serve(c.Update, http.MethodPut, "/solicitation/z", `{"status":"Aberto"}`, "id", "z")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSolicitationController_CreateAssignsIdentity(t *testing.T) {
	c := newSolicitationController(t)

	rec := serve(as(requesterClaims, c.Create), http.MethodPost, "/solicitation",
		`{"id":"forjado","numSol":1,"userName":"Ana","filial":"Sorocaba","costCenter":"CC-100","status":"Pendente"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var got entities.Solicitation
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.NotEqual(t, "forjado", got.ID)
	assert.False(t, got.CreatedAt.IsZero())
	assert.Equal(t, "João", got.UserName)
	assert.Equal(t, "Campinas", got.Filial)
	assert.Equal(t, "CC-210", got.CostCenter)

	rec = serve(as(requesterClaims, c.Create), http.MethodPost, "/solicitation", `{"userName":"João"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = serve(c.Create, http.MethodPost, "/solicitation", `{"numSol":2}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
