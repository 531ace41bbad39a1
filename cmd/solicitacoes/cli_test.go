package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"solicitation-system/internal/routes"
	"solicitation-system/internal/store"
	"solicitation-system/pkg/config"
	"solicitation-system/pkg/constants"
	"solicitation-system/pkg/customvalidator"
	apperrors "solicitation-system/pkg/errors"
	"solicitation-system/pkg/service"
	"solicitation-system/seeders"
)

func startBackend(t *testing.T) string {
	t.Helper()
	t.Setenv("SOLICITACOES_TOKEN", "")
	t.Setenv("LOG_LEVEL", "error")

	st := store.NewMemoryStore()
	require.NoError(t, seeders.Seed(context.Background(), st, zap.NewNop()))

	e := echo.New()
	e.Validator = customvalidator.NewEchoValidator(customvalidator.New())
	cfg := &config.Config{Server: config.ServerConfig{BasePath: "/api"}}
	routes.InitRouter(e, st, service.NewJWTService("segredo-cli", time.Hour, zap.NewNop()), zap.NewNop(), cfg)

	srv := httptest.NewServer(e)
	t.Cleanup(srv.Close)
	return srv.URL + "/api"
}

func run(t *testing.T, api, stdin string, args ...string) (string, error) {
	t.Helper()
	a := newApp()
	var out bytes.Buffer
	a.out = &out
	a.in = strings.NewReader(stdin)

	cmd := newRootCmd(a)
	cmd.SetArgs(append([]string{"--api", api}, args...))
	err := cmd.ExecuteContext(context.Background())
	a.teardown()
	return out.String(), err
}

func login(t *testing.T, api, email, password string) string {
	t.Helper()
	out, err := run(t, api, "", "login", "--json", "--email", email, "--senha", password)
	require.NoError(t, err)
	var resp struct {
		Token string `json:"token"`
		Nivel int    `json:"nivel"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

func TestCLI_SolicitationFlow(t *testing.T) {
	api := startBackend(t)
	admin := login(t, api, seeders.AdminEmail, seeders.AdminPassword)
	requester := login(t, api, seeders.RequesterEmail, seeders.RequesterPassword)

	out, err := run(t, api, "", "create", "--token", requester,
		"--urgency", "urgente", "--category", "Caminhão", "--tag", "CAM-002",
		"--service", "eletrico", "--description", "Farol queimado")
	require.NoError(t, err)
	assert.Contains(t, out, "nº 1")

	out, err = run(t, api, "", "list", "--json", "--token", admin, "--status", "pendente")
	require.NoError(t, err)
	var listed listOutput
	require.NoError(t, json.Unmarshal([]byte(out), &listed))
	require.Len(t, listed.Items, 1)
	assert.Equal(t, string(constants.UrgencyCritical), listed.Items[0].Urgency)
	assert.Equal(t, constants.ServiceElectrical, listed.Items[0].CategoryService)
	assert.Equal(t, "red", listed.Items[0].UrgencyBadge)
	assert.True(t, listed.Items[0].CanFinalize)

	_, err = run(t, api, "", "finalize", "1", "--token", requester)
	assert.ErrorIs(t, err, apperrors.ErrForbidden)
	assert.Equal(t, exitForbidden, exitCode(err))

	_, err = run(t, api, "n\n", "delete", "1", "--token", admin)
	assert.ErrorIs(t, err, apperrors.ErrNotConfirmed)
	assert.Equal(t, exitAborted, exitCode(err))

	out, err = run(t, api, "", "finalize", "1", "--token", admin)
	require.NoError(t, err)
	assert.Contains(t, out, "Finalizado")

	out, err = run(t, api, "", "show", "1", "--token", admin)
	require.NoError(t, err)
	assert.Contains(t, out, "Finalizado")
	assert.Contains(t, out, "Scania R450")

	_, err = run(t, api, "s\n", "delete", "1", "--token", admin)
	require.NoError(t, err)

	out, err = run(t, api, "", "list", "--token", admin)
	require.NoError(t, err)
	assert.Contains(t, out, "Nenhuma solicitação encontrada.")
}

func TestCLI_Refs(t *testing.T) {
	api := startBackend(t)
	admin := login(t, api, seeders.AdminEmail, seeders.AdminPassword)

	out, err := run(t, api, "", "refs", "create", "users", "--token", admin,
		"--set", "name=Paula Souza", "--set", "email=paula@frota.local", "--set", "password=paula123",
		"--set", "levelUser=1", "--set", "filial=Sorocaba", "--set", "costCenter=CC-400")
	require.NoError(t, err)
	assert.Contains(t, out, "Paula Souza")

	_, err = run(t, api, "", "refs", "create", "users", "--token", admin, "--set", "levelUser=dois")
	var validationErr *apperrors.ValidationError
	assert.ErrorAs(t, err, &validationErr)
	assert.Equal(t, exitValidation, exitCode(err))

	_, err = run(t, api, "", "refs", "edit", "filiais", "sorocaba", "--token", admin, "--set", "name=Sorocaba Norte")
	require.NoError(t, err)

	_, err = run(t, api, "", "refs", "deactivate", "users", "Paula Souza", "--yes", "--token", admin)
	require.NoError(t, err)

	out, err = run(t, api, "", "refs", "list", "filiais", "--json", "--token", admin)
	require.NoError(t, err)
	assert.Contains(t, out, "Sorocaba Norte")

	_, err = run(t, api, "", "login", "--email", "paula@frota.local", "--senha", "paula123")
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
	assert.Equal(t, exitAuth, exitCode(err))
}

func TestCLI_RequiresToken(t *testing.T) {
	api := startBackend(t)

	_, err := run(t, api, "", "list")
	assert.ErrorIs(t, err, apperrors.ErrAuthMissing)
	assert.Equal(t, exitAuth, exitCode(err))
	assert.Contains(t, userMessage(err), "Faça login novamente")
}

func TestUserMessage_PartialWrite(t *testing.T) {
	err := apperrors.NewMutationError("finalize", "abc", nil, apperrors.ErrNotFound)

	assert.Equal(t, exitPartial, exitCode(err))
	assert.Contains(t, userMessage(err), "histórico falhou")
}

func TestUserMessage_NumberingFailureIsNotPartial(t *testing.T) {
	err := &apperrors.FetchError{Op: "último número de solicitação", Err: errors.New("offline")}

	assert.Equal(t, exitBackend, exitCode(err))
	assert.NotContains(t, userMessage(err), "histórico")
}
