package services

import (
	"context"
	"sort"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"go.uber.org/zap"

	"solicitation-system/internal/dto"
	"solicitation-system/internal/entities"
	"solicitation-system/internal/repositories"
	"solicitation-system/pkg/constants"
	apperrors "solicitation-system/pkg/errors"
	"solicitation-system/pkg/session"
	"solicitation-system/pkg/utils"
)

// FilterOptionsService alimenta o painel de filtros e traduz nomes
// digitados para os nomes exatos do cadastro.
type FilterOptionsService struct {
	users   repositories.ReferenceRepositoryInterface[entities.User]
	filiais repositories.ReferenceRepositoryInterface[entities.Filial]
	logger  *zap.Logger
}

func NewFilterOptionsService(
	users repositories.ReferenceRepositoryInterface[entities.User],
	filiais repositories.ReferenceRepositoryInterface[entities.Filial],
	logger *zap.Logger,
) *FilterOptionsService {
	return &FilterOptionsService{users: users, filiais: filiais, logger: logger.Named("filter_options")}
}

// Load não consulta usuários nem filiais para o solicitante, que não pode
// filtrar por eles.
func (s *FilterOptionsService) Load(ctx context.Context, sess *session.Session) (*dto.FilterOptionsDTO, error) {
	if err := session.Require(sess); err != nil {
		return nil, err
	}
	opts := &dto.FilterOptionsDTO{
		Requesters: []string{},
		Filiais:    []string{},
		Statuses:   append([]string(nil), constants.KnownStatuses...),
	}
	for _, u := range constants.Urgencies {
		opts.Urgencies = append(opts.Urgencies, string(u))
	}
	if sess.IsRequester() {
		return opts, nil
	}

	requesters, err := s.requesterNames(ctx, sess)
	if err != nil {
		return nil, err
	}
	filiais, err := s.filialNames(ctx, sess)
	if err != nil {
		return nil, err
	}
	opts.Requesters = requesters
	opts.Filiais = filiais
	return opts, nil
}

// Resolve valida e normaliza um filtro digitado: urgências e status vão
// para a grafia canônica; solicitante e filial são resolvidos contra o
// cadastro.
func (s *FilterOptionsService) Resolve(ctx context.Context, sess *session.Session, filter dto.SolicitationFilterDTO) (dto.SolicitationFilterDTO, error) {
	if err := session.Require(sess); err != nil {
		return filter, err
	}
	if sess.IsRequester() && (hasValue(filter.Requester) || hasValue(filter.Filial)) {
		return filter, apperrors.ErrForbidden
	}

	out := filter
	out.Urgency = nil
	for _, v := range filter.Urgency {
		if u, ok := constants.ParseUrgency(v); ok {
			out.Urgency = append(out.Urgency, string(u))
		} else if utils.Normalize(v) != "" {
			return filter, apperrors.NewValidationError("urgency", "urgência desconhecida: "+v)
		}
	}
	out.Status = nil
	for _, v := range filter.Status {
		if c := constants.CanonicalStatus(v); c != "" {
			out.Status = append(out.Status, c)
		}
	}

	if hasValue(filter.Requester) {
		names, err := s.requesterNames(ctx, sess)
		if err != nil {
			return filter, err
		}
		if out.Requester, err = resolveAll("requester", filter.Requester, names); err != nil {
			return filter, err
		}
	}
	if hasValue(filter.Filial) {
		names, err := s.filialNames(ctx, sess)
		if err != nil {
			return filter, err
		}
		if out.Filial, err = resolveAll("filial", filter.Filial, names); err != nil {
			return filter, err
		}
	}
	return out, nil
}

func (s *FilterOptionsService) requesterNames(ctx context.Context, sess *session.Session) ([]string, error) {
	list, err := s.users.List(ctx, sess.Token)
	if err != nil {
		return nil, &apperrors.FetchError{Op: "usuários", Err: err}
	}
	return names(activeOnly(list)), nil
}

func (s *FilterOptionsService) filialNames(ctx context.Context, sess *session.Session) ([]string, error) {
	list, err := s.filiais.List(ctx, sess.Token)
	if err != nil {
		return nil, &apperrors.FetchError{Op: "filiais", Err: err}
	}
	return names(activeOnly(list)), nil
}

func resolveAll(field string, typed, candidates []string) ([]string, error) {
	var out []string
	for _, t := range typed {
		if utils.Normalize(t) == "" {
			continue
		}
		name, err := ResolveName(t, candidates)
		if err != nil {
			return nil, apperrors.NewValidationError(field, err.Error())
		}
		out = append(out, name)
	}
	return out, nil
}

// ResolveName escolhe o candidato correspondente ao texto digitado:
// primeiro igualdade sem acentos, depois a busca aproximada. Empate no
// melhor resultado é ambíguo.
func ResolveName(typed string, candidates []string) (string, error) {
	for _, c := range candidates {
		if utils.EqualFoldAccents(c, typed) {
			return c, nil
		}
	}

	ranks := fuzzy.RankFindNormalizedFold(typed, candidates)
	if len(ranks) == 0 {
		return "", &notFoundError{typed: typed}
	}
	sort.Sort(ranks)
	if len(ranks) > 1 && ranks[0].Distance == ranks[1].Distance {
		return "", &ambiguousError{typed: typed, a: ranks[0].Target, b: ranks[1].Target}
	}
	return ranks[0].Target, nil
}

type notFoundError struct{ typed string }

func (e *notFoundError) Error() string { return "nenhum cadastro corresponde a " + quote(e.typed) }

type ambiguousError struct{ typed, a, b string }

func (e *ambiguousError) Error() string {
	return quote(e.typed) + " é ambíguo (" + e.a + ", " + e.b + ")"
}

func quote(s string) string { return "\"" + s + "\"" }

func hasValue(values []string) bool {
	for _, v := range values {
		if utils.Normalize(v) != "" {
			return true
		}
	}
	return false
}
