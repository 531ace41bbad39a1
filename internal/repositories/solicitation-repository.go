package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"go.uber.org/zap"

	"solicitation-system/internal/dto"
	"solicitation-system/internal/entities"
	"solicitation-system/internal/integrations/backend"
)

const (
	solicitationPath = "/solicitation"
	historicPath     = "/solicitationHistoric"
)

type SolicitationRepositoryInterface interface {
	List(ctx context.Context, token string, filter dto.SolicitationFilterDTO) ([]entities.Solicitation, error)
	Last(ctx context.Context, token string) (int, error)
	Create(ctx context.Context, token string, s entities.Solicitation) (*entities.Solicitation, error)
	Update(ctx context.Context, token, id string, patch interface{}) error
}

type SolicitationRepository struct {
	client backend.ClientInterface
	logger *zap.Logger
}

func NewSolicitationRepository(client backend.ClientInterface, logger *zap.Logger) SolicitationRepositoryInterface {
	return &SolicitationRepository{client: client, logger: logger.Named("solicitation_repository")}
}

func (r *SolicitationRepository) List(ctx context.Context, token string, filter dto.SolicitationFilterDTO) ([]entities.Solicitation, error) {
	var list []entities.Solicitation
	if err := r.client.Get(ctx, token, solicitationPath, FilterQuery(filter), &list); err != nil {
		return nil, err
	}
	r.logger.Debug("solicitações carregadas", zap.Int("count", len(list)))
	return list, nil
}

// Last devolve o maior numSol existente; o backend responde com o número
// puro, mas {"numSol": n} também é aceito.
func (r *SolicitationRepository) Last(ctx context.Context, token string) (int, error) {
	var raw json.RawMessage
	if err := r.client.Get(ctx, token, solicitationPath+"/last", nil, &raw); err != nil {
		return 0, err
	}
	return decodeLast(raw)
}

func (r *SolicitationRepository) Create(ctx context.Context, token string, s entities.Solicitation) (*entities.Solicitation, error) {
	var created entities.Solicitation
	if err := r.client.Post(ctx, token, solicitationPath, s, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (r *SolicitationRepository) Update(ctx context.Context, token, id string, patch interface{}) error {
	return r.client.Put(ctx, token, solicitationPath+"/"+url.PathEscape(id), patch, nil)
}

func decodeLast(raw json.RawMessage) (int, error) {
	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" || trimmed == "null" {
		return 0, nil
	}
	var n float64
	if err := json.Unmarshal(raw, &n); err == nil {
		return int(n), nil
	}
	var obj struct {
		NumSol *float64 `json:"numSol"`
	}
	if err := json.Unmarshal(raw, &obj); err == nil && obj.NumSol != nil {
		return int(*obj.NumSol), nil
	}
	return 0, fmt.Errorf("resposta inesperada de /solicitation/last: %s", trimmed)
}

// FilterQuery monta a consulta da listagem. deleted=false vai sempre;
// valores em branco nunca viram curinga.
func FilterQuery(filter dto.SolicitationFilterDTO) url.Values {
	q := url.Values{}
	q.Set("deleted", "false")
	if v := strings.TrimSpace(filter.StartDate); v != "" {
		q.Set("startDate", v+"T00:00:00")
	}
	if v := strings.TrimSpace(filter.EndDate); v != "" {
		q.Set("endDate", v+"T23:59:59")
	}
	addAll(q, "status", filter.Status)
	addAll(q, "requester", filter.Requester)
	addAll(q, "filial", filter.Filial)
	addAll(q, "urgency", filter.Urgency)
	return q
}

func addAll(q url.Values, key string, values []string) {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			q.Add(key, v)
		}
	}
}
