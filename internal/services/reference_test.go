package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"solicitation-system/internal/dto"
	"solicitation-system/internal/entities"
	apperrors "solicitation-system/pkg/errors"
)

func TestReferenceService_List(t *testing.T) {
	repo := &fakeReferenceRepo[entities.Filial]{items: []entities.Filial{
		{ID: "1", Name: "Sorocaba"},
		{ID: "2", Name: "Águas Claras"},
		{ID: "3", Name: "Barueri", StatusDelete: true},
		{ID: "4", Name: "Campinas"},
	}}
	svc := NewFilialService(repo, nil, 0, zap.NewNop())

	active, err := svc.List(context.Background(), requesterSession("João"), false)
	require.NoError(t, err)
	assert.Equal(t, []string{"Águas Claras", "Campinas", "Sorocaba"}, []string{active[0].Name, active[1].Name, active[2].Name})

	all, err := svc.List(context.Background(), adminSession(), true)
	require.NoError(t, err)
	assert.Len(t, all, 4)

	page := svc.Page(all, 1)
	assert.Equal(t, 10, page.Pagination.Limit)
	assert.Equal(t, 1, page.Pagination.TotalPages)

	found, ok := svc.Find(all, "aguas claras")
	require.True(t, ok)
	assert.Equal(t, "2", found.ID)
}

func TestReferenceService_Mutations(t *testing.T) {
	repo := &fakeReferenceRepo[entities.User]{}
	svc := NewUserService(repo, nil, 10, zap.NewNop())
	ctx := context.Background()

	valid := dto.CreateUserDTO{Name: "Pedro", Email: "pedro@empresa.com", Password: "123456", LevelUser: 1, Filial: "Campinas", CostCenter: "CC-9"}

	_, err := svc.Create(ctx, requesterSession("João"), valid)
	assert.ErrorIs(t, err, apperrors.ErrForbidden)

	invalid := valid
	invalid.Password = "123"
	invalid.LevelUser = 3
	_, err = svc.Create(ctx, adminSession(), invalid)
	var verr *apperrors.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "password")
	assert.Contains(t, verr.Fields, "levelUser")

	_, err = svc.Create(ctx, adminSession(), valid)
	require.NoError(t, err)
	assert.Len(t, repo.created, 1)

	name := "Pedro Alves"
	require.NoError(t, svc.Update(ctx, adminSession(), "u1", dto.UpdateUserDTO{Name: &name}))
	assert.Contains(t, repo.updated, "u1")

	user := entities.User{ID: "u1", Name: "Pedro Alves"}
	assert.ErrorIs(t, svc.Deactivate(ctx, adminSession(), user, confirmAnswer(false)), apperrors.ErrNotConfirmed)
	assert.Empty(t, repo.deactivated)
	require.NoError(t, svc.Deactivate(ctx, adminSession(), user, AlwaysConfirm))
	assert.Equal(t, []string{"u1"}, repo.deactivated)
}
