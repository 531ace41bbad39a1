package services

import (
	"context"
	"fmt"
	"sort"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"solicitation-system/internal/dto"
	"solicitation-system/internal/entities"
	"solicitation-system/internal/repositories"
	"solicitation-system/pkg/customvalidator"
	apperrors "solicitation-system/pkg/errors"
	"solicitation-system/pkg/session"
	"solicitation-system/pkg/types"
	"solicitation-system/pkg/utils"
)

// ReferenceService gerencia um cadastro auxiliar. C e U são os DTOs de
// criação e edição.
type ReferenceService[T entities.Reference, C any, U any] struct {
	repo     repositories.ReferenceRepositoryInterface[T]
	label    string
	validate *validator.Validate
	pageSize int
	logger   *zap.Logger
}

type (
	FilialService            = ReferenceService[entities.Filial, dto.CreateFilialDTO, dto.UpdateFilialDTO]
	EquipmentService         = ReferenceService[entities.Equipment, dto.CreateEquipmentDTO, dto.UpdateEquipmentDTO]
	EquipmentCategoryService = ReferenceService[entities.EquipmentCategory, dto.CreateEquipmentCategoryDTO, dto.UpdateEquipmentCategoryDTO]
	UserService              = ReferenceService[entities.User, dto.CreateUserDTO, dto.UpdateUserDTO]
)

func NewReferenceService[T entities.Reference, C any, U any](
	repo repositories.ReferenceRepositoryInterface[T],
	label string,
	validate *validator.Validate,
	pageSize int,
	logger *zap.Logger,
) *ReferenceService[T, C, U] {
	if validate == nil {
		validate = customvalidator.New()
	}
	if pageSize <= 0 {
		pageSize = utils.DefaultReferencePageSize
	}
	return &ReferenceService[T, C, U]{
		repo:     repo,
		label:    label,
		validate: validate,
		pageSize: pageSize,
		logger:   logger.Named("reference").With(zap.String("collection", label)),
	}
}

func NewFilialService(repo repositories.ReferenceRepositoryInterface[entities.Filial], v *validator.Validate, pageSize int, logger *zap.Logger) *FilialService {
	return NewReferenceService[entities.Filial, dto.CreateFilialDTO, dto.UpdateFilialDTO](repo, "filiais", v, pageSize, logger)
}

func NewEquipmentService(repo repositories.ReferenceRepositoryInterface[entities.Equipment], v *validator.Validate, pageSize int, logger *zap.Logger) *EquipmentService {
	return NewReferenceService[entities.Equipment, dto.CreateEquipmentDTO, dto.UpdateEquipmentDTO](repo, "equipamentos", v, pageSize, logger)
}

func NewEquipmentCategoryService(repo repositories.ReferenceRepositoryInterface[entities.EquipmentCategory], v *validator.Validate, pageSize int, logger *zap.Logger) *EquipmentCategoryService {
	return NewReferenceService[entities.EquipmentCategory, dto.CreateEquipmentCategoryDTO, dto.UpdateEquipmentCategoryDTO](repo, "categorias", v, pageSize, logger)
}

func NewUserService(repo repositories.ReferenceRepositoryInterface[entities.User], v *validator.Validate, pageSize int, logger *zap.Logger) *UserService {
	return NewReferenceService[entities.User, dto.CreateUserDTO, dto.UpdateUserDTO](repo, "usuários", v, pageSize, logger)
}

// List devolve o cadastro ordenado por nome; inativos só com
// includeInactive.
func (s *ReferenceService[T, C, U]) List(ctx context.Context, sess *session.Session, includeInactive bool) ([]T, error) {
	if err := session.Require(sess); err != nil {
		return nil, err
	}
	list, err := s.repo.List(ctx, sess.Token)
	if err != nil {
		return nil, &apperrors.FetchError{Op: s.label, Err: err}
	}
	if !includeInactive {
		list = activeOnly(list)
	}
	sort.SliceStable(list, func(i, j int) bool {
		return utils.Normalize(list[i].GetName()) < utils.Normalize(list[j].GetName())
	})
	return list, nil
}

func (s *ReferenceService[T, C, U]) Page(list []T, pageNumber int) types.Page[T] {
	return utils.Paginate(list, s.pageSize, pageNumber)
}

func (s *ReferenceService[T, C, U]) Create(ctx context.Context, sess *session.Session, payload C) (*T, error) {
	if err := requireAdministrator(sess); err != nil {
		return nil, err
	}
	if err := customvalidator.Struct(s.validate, payload); err != nil {
		return nil, err
	}
	created, err := s.repo.Create(ctx, sess.Token, payload)
	if err != nil {
		s.logger.Error("falha ao cadastrar", zap.Error(err))
		return nil, err
	}
	s.logger.Info("cadastro criado", zap.String("actor", sess.Name))
	return created, nil
}

func (s *ReferenceService[T, C, U]) Update(ctx context.Context, sess *session.Session, id string, payload U) error {
	if err := requireAdministrator(sess); err != nil {
		return err
	}
	if err := customvalidator.Struct(s.validate, payload); err != nil {
		return err
	}
	if err := s.repo.Update(ctx, sess.Token, id, payload); err != nil {
		s.logger.Error("falha ao editar cadastro", zap.String("id", id), zap.Error(err))
		return err
	}
	return nil
}

// Deactivate é a exclusão lógica (statusDelete=true), sempre confirmada.
func (s *ReferenceService[T, C, U]) Deactivate(ctx context.Context, sess *session.Session, item T, confirmer Confirmer) error {
	if err := requireAdministrator(sess); err != nil {
		return err
	}
	if err := confirm(ctx, confirmer, fmt.Sprintf("Desativar %q?", item.GetName())); err != nil {
		return err
	}
	if err := s.repo.Deactivate(ctx, sess.Token, item.GetID()); err != nil {
		s.logger.Error("falha ao desativar cadastro", zap.String("id", item.GetID()), zap.Error(err))
		return err
	}
	s.logger.Info("cadastro desativado", zap.String("id", item.GetID()), zap.String("actor", sess.Name))
	return nil
}

// Find procura pelo id ou pelo nome (sem acentos nem caixa).
func (s *ReferenceService[T, C, U]) Find(list []T, ref string) (T, bool) {
	for _, item := range list {
		if item.GetID() == ref {
			return item, true
		}
	}
	for _, item := range list {
		if utils.EqualFoldAccents(item.GetName(), ref) {
			return item, true
		}
	}
	var zero T
	return zero, false
}

func requireAdministrator(sess *session.Session) error {
	if err := session.Require(sess); err != nil {
		return err
	}
	if !sess.Allows(session.RoleAdministrator) {
		return apperrors.ErrForbidden
	}
	return nil
}
