package backend

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	apperrors "solicitation-system/pkg/errors"
)

func TestClient_GetSendsBearerAndQuery(t *testing.T) {
	var gotAuth, gotQuery, gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotQuery = r.URL.RawQuery
		gotPath = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"id":"a","numSol":3}]`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL+"/api/", time.Second, zap.NewNop())

	var out []map[string]interface{}
	q := url.Values{}
	q.Set("deleted", "false")
	q.Add("urgency", "Alta")
	require.NoError(t, c.Get(context.Background(), "tok", "/solicitation", q, &out))

	assert.Equal(t, "Bearer tok", gotAuth)
	assert.Equal(t, "/api/solicitation", gotPath)
	assert.Equal(t, "deleted=false&urgency=Alta", gotQuery)
	require.Len(t, out, 1)
	assert.Equal(t, "a", out[0]["id"])
}

func TestClient_PostWithoutToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "x@y.com", body["email"])
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second, zap.NewNop())
	var out map[string]interface{}
	require.NoError(t, c.Post(context.Background(), "", "/users/login", map[string]string{"email": "x@y.com"}, &out))
	assert.Nil(t, out, "corpo vazio não é decodificado")
}

func TestClient_StatusErrors(t *testing.T) {
	cases := []struct {
		name     string
		status   int
		body     string
		sentinel error
		message  string
	}{
		{"401 vira ErrAuthInvalid", http.StatusUnauthorized, `{"message":"Token inválido"}`, apperrors.ErrAuthInvalid, "Token inválido"},
		{"403 vira ErrForbidden", http.StatusForbidden, `{"error":"sem permissão"}`, apperrors.ErrForbidden, "sem permissão"},
		{"404 vira ErrNotFound", http.StatusNotFound, `not found`, apperrors.ErrNotFound, "not found"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte(tc.body))
			}))
			defer srv.Close()

			err := NewClient(srv.URL, time.Second, zap.NewNop()).Put(context.Background(), "t", "/solicitation/1", map[string]string{}, nil)
			require.Error(t, err)
			assert.ErrorIs(t, err, tc.sentinel)

			var statusErr *apperrors.StatusError
			require.True(t, errors.As(err, &statusErr))
			assert.Equal(t, tc.status, statusErr.Code)
			assert.Equal(t, tc.message, statusErr.Message)
		})
	}
}

func TestClient_NetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	err := NewClient(srv.URL, time.Second, zap.NewNop()).Get(context.Background(), "t", "/filial", nil, nil)
	require.Error(t, err)
	var statusErr *apperrors.StatusError
	assert.False(t, errors.As(err, &statusErr))
}

func TestClient_InvalidJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{quebrado`))
	}))
	defer srv.Close()

	var out []int
	err := NewClient(srv.URL, time.Second, zap.NewNop()).Get(context.Background(), "t", "/x", nil, &out)
	assert.ErrorContains(t, err, "JSON")
}
