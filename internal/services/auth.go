package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"solicitation-system/internal/dto"
	"solicitation-system/internal/repositories"
	"solicitation-system/pkg/customvalidator"
	apperrors "solicitation-system/pkg/errors"
	"solicitation-system/pkg/session"
)

type AuthService struct {
	repo     repositories.AuthRepositoryInterface
	validate *validator.Validate
	logger   *zap.Logger
}

func NewAuthService(repo repositories.AuthRepositoryInterface, validate *validator.Validate, logger *zap.Logger) *AuthService {
	if validate == nil {
		validate = customvalidator.New()
	}
	return &AuthService{repo: repo, validate: validate, logger: logger.Named("auth")}
}

// Login troca e-mail e senha por uma sessão. A sessão vem inteira dos
// claims do token; o "nivel" da resposta só é conferido.
func (s *AuthService) Login(ctx context.Context, payload dto.LoginDTO) (*session.Session, error) {
	if err := customvalidator.Struct(s.validate, payload); err != nil {
		return nil, err
	}

	resp, err := s.repo.Login(ctx, payload)
	if err != nil {
		if errors.Is(err, apperrors.ErrAuthInvalid) || errors.Is(err, apperrors.ErrBadRequest) || errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: %v", apperrors.ErrInvalidCredentials, err)
		}
		return nil, err
	}

	sess, err := session.Decode(resp.Token)
	if err != nil {
		s.logger.Warn("token recebido no login não pôde ser lido", zap.Error(err))
		return nil, err
	}
	if resp.Nivel != 0 && session.Role(resp.Nivel) != sess.Role {
		s.logger.Warn("nivel da resposta difere do token; vale o token",
			zap.Int("response_nivel", resp.Nivel),
			zap.Int("token_nivel", int(sess.Role)),
		)
	}
	s.logger.Info("login realizado", zap.String("user", sess.Name), zap.Stringer("role", sess.Role))
	return sess, nil
}
