package repositories

import (
	"context"

	"go.uber.org/zap"

	"solicitation-system/internal/dto"
	"solicitation-system/internal/integrations/backend"
)

type AuthRepositoryInterface interface {
	Login(ctx context.Context, payload dto.LoginDTO) (*dto.LoginResponseDTO, error)
}

type AuthRepository struct {
	client backend.ClientInterface
	logger *zap.Logger
}

func NewAuthRepository(client backend.ClientInterface, logger *zap.Logger) AuthRepositoryInterface {
	return &AuthRepository{client: client, logger: logger.Named("auth_repository")}
}

func (r *AuthRepository) Login(ctx context.Context, payload dto.LoginDTO) (*dto.LoginResponseDTO, error) {
	var resp dto.LoginResponseDTO
	if err := r.client.Post(ctx, "", UsersPath+"/login", payload, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
