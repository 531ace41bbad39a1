package repositories

import (
	"context"

	"go.uber.org/zap"

	"solicitation-system/internal/entities"
	"solicitation-system/internal/integrations/backend"
)

// HistoricRepositoryInterface grava cópias completas de cada estado da
// solicitação; nunca altera entradas anteriores.
type HistoricRepositoryInterface interface {
	Append(ctx context.Context, token string, snapshot entities.Solicitation) error
	List(ctx context.Context, token string) ([]entities.Solicitation, error)
}

type HistoricRepository struct {
	client backend.ClientInterface
	logger *zap.Logger
}

func NewHistoricRepository(client backend.ClientInterface, logger *zap.Logger) HistoricRepositoryInterface {
	return &HistoricRepository{client: client, logger: logger.Named("historic_repository")}
}

func (r *HistoricRepository) Append(ctx context.Context, token string, snapshot entities.Solicitation) error {
	snapshot.ID = ""
	return r.client.Post(ctx, token, historicPath, snapshot, nil)
}

func (r *HistoricRepository) List(ctx context.Context, token string) ([]entities.Solicitation, error) {
	var list []entities.Solicitation
	if err := r.client.Get(ctx, token, historicPath, nil, &list); err != nil {
		return nil, err
	}
	return list, nil
}
