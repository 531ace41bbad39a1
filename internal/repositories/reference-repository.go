package repositories

import (
	"context"
	"net/url"

	"go.uber.org/zap"

	"solicitation-system/internal/dto"
	"solicitation-system/internal/entities"
	"solicitation-system/internal/integrations/backend"
)

// Coleções dos cadastros auxiliares. "Equipament" é a grafia do backend.
const (
	UsersPath               = "/users"
	FiliaisPath             = "/filial"
	EquipmentsPath          = "/Equipament"
	EquipmentCategoriesPath = "/categoryEquipment"
)

type ReferenceRepositoryInterface[T entities.Reference] interface {
	List(ctx context.Context, token string) ([]T, error)
	Create(ctx context.Context, token string, payload interface{}) (*T, error)
	Update(ctx context.Context, token, id string, payload interface{}) error
	Deactivate(ctx context.Context, token, id string) error
}

// ReferenceRepository atende qualquer coleção de cadastro com o mesmo
// contrato REST.
type ReferenceRepository[T entities.Reference] struct {
	client         backend.ClientInterface
	path           string
	deactivatePath func(id string) string
	logger         *zap.Logger
}

func newReferenceRepository[T entities.Reference](client backend.ClientInterface, path string, deactivatePath func(string) string, logger *zap.Logger) ReferenceRepositoryInterface[T] {
	if deactivatePath == nil {
		deactivatePath = func(id string) string { return path + "/" + url.PathEscape(id) }
	}
	return &ReferenceRepository[T]{
		client:         client,
		path:           path,
		deactivatePath: deactivatePath,
		logger:         logger.Named("reference_repository").With(zap.String("collection", path)),
	}
}

func NewFilialRepository(client backend.ClientInterface, logger *zap.Logger) ReferenceRepositoryInterface[entities.Filial] {
	return newReferenceRepository[entities.Filial](client, FiliaisPath, nil, logger)
}

func NewEquipmentRepository(client backend.ClientInterface, logger *zap.Logger) ReferenceRepositoryInterface[entities.Equipment] {
	return newReferenceRepository[entities.Equipment](client, EquipmentsPath, nil, logger)
}

func NewEquipmentCategoryRepository(client backend.ClientInterface, logger *zap.Logger) ReferenceRepositoryInterface[entities.EquipmentCategory] {
	return newReferenceRepository[entities.EquipmentCategory](client, EquipmentCategoriesPath, nil, logger)
}

// NewUserRepository desativa usuários pela rota própria /users/{id}/status.
func NewUserRepository(client backend.ClientInterface, logger *zap.Logger) ReferenceRepositoryInterface[entities.User] {
	return newReferenceRepository[entities.User](client, UsersPath, func(id string) string {
		return UsersPath + "/" + url.PathEscape(id) + "/status"
	}, logger)
}

func (r *ReferenceRepository[T]) List(ctx context.Context, token string) ([]T, error) {
	var list []T
	if err := r.client.Get(ctx, token, r.path, nil, &list); err != nil {
		return nil, err
	}
	r.logger.Debug("cadastro carregado", zap.Int("count", len(list)))
	return list, nil
}

func (r *ReferenceRepository[T]) Create(ctx context.Context, token string, payload interface{}) (*T, error) {
	var created T
	if err := r.client.Post(ctx, token, r.path, payload, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (r *ReferenceRepository[T]) Update(ctx context.Context, token, id string, payload interface{}) error {
	return r.client.Put(ctx, token, r.path+"/"+url.PathEscape(id), payload, nil)
}

func (r *ReferenceRepository[T]) Deactivate(ctx context.Context, token, id string) error {
	return r.client.Put(ctx, token, r.deactivatePath(id), dto.StatusDeleteDTO{StatusDelete: true}, nil)
}
