package services

import (
	"context"
	"sync"
	"testing"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"solicitation-system/internal/dto"
	"solicitation-system/internal/entities"
	"solicitation-system/pkg/session"
)

var day0 = time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)

type updateCall struct {
	ID    string
	Patch interface{}
}

type fakeSolicitationRepo struct {
	mu         sync.Mutex
	list       []entities.Solicitation
	listErr    error
	listFn     func(ctx context.Context, filter dto.SolicitationFilterDTO) ([]entities.Solicitation, error)
	listCalls  int
	lastFilter dto.SolicitationFilterDTO
	last       int
	lastErr    error
	created    []entities.Solicitation
	createErr  error
	updates    []updateCall
	updateErr  error
}

func (r *fakeSolicitationRepo) List(ctx context.Context, token string, filter dto.SolicitationFilterDTO) ([]entities.Solicitation, error) {
	r.mu.Lock()
	r.listCalls++
	r.lastFilter = filter
	fn := r.listFn
	r.mu.Unlock()
	if fn != nil {
		return fn(ctx, filter)
	}
	if r.listErr != nil {
		return nil, r.listErr
	}
	return append([]entities.Solicitation(nil), r.list...), nil
}

func (r *fakeSolicitationRepo) Last(ctx context.Context, token string) (int, error) {
	return r.last, r.lastErr
}

func (r *fakeSolicitationRepo) Create(ctx context.Context, token string, s entities.Solicitation) (*entities.Solicitation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.created = append(r.created, s)
	if r.createErr != nil {
		return nil, r.createErr
	}
	out := s
	out.ID = "new-id"
	out.CreatedAt = day0
	return &out, nil
}

func (r *fakeSolicitationRepo) Update(ctx context.Context, token, id string, patch interface{}) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.updates = append(r.updates, updateCall{ID: id, Patch: patch})
	return r.updateErr
}

type fakeHistoricRepo struct {
	mu       sync.Mutex
	appended []entities.Solicitation
	err      error
}

func (r *fakeHistoricRepo) Append(ctx context.Context, token string, snapshot entities.Solicitation) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.appended = append(r.appended, snapshot)
	return r.err
}

func (r *fakeHistoricRepo) List(ctx context.Context, token string) ([]entities.Solicitation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]entities.Solicitation(nil), r.appended...), r.err
}

type fakeReferenceRepo[T entities.Reference] struct {
	items       []T
	listErr     error
	listCalls   int
	created     []interface{}
	updated     map[string]interface{}
	deactivated []string
}

func (r *fakeReferenceRepo[T]) List(ctx context.Context, token string) ([]T, error) {
	r.listCalls++
	if r.listErr != nil {
		return nil, r.listErr
	}
	return append([]T(nil), r.items...), nil
}

func (r *fakeReferenceRepo[T]) Create(ctx context.Context, token string, payload interface{}) (*T, error) {
	r.created = append(r.created, payload)
	var zero T
	return &zero, nil
}

func (r *fakeReferenceRepo[T]) Update(ctx context.Context, token, id string, payload interface{}) error {
	if r.updated == nil {
		r.updated = map[string]interface{}{}
	}
	r.updated[id] = payload
	return nil
}

func (r *fakeReferenceRepo[T]) Deactivate(ctx context.Context, token, id string) error {
	r.deactivated = append(r.deactivated, id)
	return nil
}

type fakeAuthRepo struct {
	resp *dto.LoginResponseDTO
	err  error
}

func (r *fakeAuthRepo) Login(ctx context.Context, payload dto.LoginDTO) (*dto.LoginResponseDTO, error) {
	return r.resp, r.err
}

func adminSession() *session.Session {
	return &session.Session{Token: "admin-token", Name: "Ana Admin", Filial: "Campinas", CostCenter: "CC-1", Role: session.RoleAdministrator}
}

func requesterSession(name string) *session.Session {
	return &session.Session{Token: "req-token", Name: name, Filial: "Campinas", CostCenter: "CC-2", Role: session.RoleRequester}
}

func signedToken(t *testing.T, claims session.Claims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte("segredo"))
	require.NoError(t, err)
	return token
}

func confirmAnswer(answer bool) Confirmer {
	return ConfirmFunc(func(context.Context, string) (bool, error) { return answer, nil })
}
