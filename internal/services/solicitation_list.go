package services

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"solicitation-system/internal/dto"
	"solicitation-system/internal/entities"
	"solicitation-system/internal/events"
	"solicitation-system/internal/repositories"
	"solicitation-system/pkg/constants"
	"solicitation-system/pkg/customvalidator"
	apperrors "solicitation-system/pkg/errors"
	"solicitation-system/pkg/eventbus"
	"solicitation-system/pkg/inflight"
	"solicitation-system/pkg/session"
	"solicitation-system/pkg/types"
	"solicitation-system/pkg/utils"
)

type SolicitationListServiceInterface interface {
	Load(ctx context.Context, sess *session.Session, filter dto.SolicitationFilterDTO) ([]entities.Solicitation, error)
	Items() []entities.Solicitation
	Page(pageNumber int) types.Page[entities.Solicitation]
	Find(ref string) (*entities.Solicitation, bool)
	Finalize(ctx context.Context, sess *session.Session, target entities.Solicitation) (*entities.Solicitation, error)
	SoftDelete(ctx context.Context, sess *session.Session, target entities.Solicitation, confirmer Confirmer) error
	Update(ctx context.Context, sess *session.Session, target entities.Solicitation, patch dto.UpdateSolicitationDTO) (*entities.Solicitation, error)
	Close()
}

// SolicitationListService mantém a lista de solicitações de uma tela.
// Toda leitura de estado passa pelo mutex; chamadas de rede acontecem
// sem ele.
type SolicitationListService struct {
	repo     repositories.SolicitationRepositoryInterface
	historic repositories.HistoricRepositoryInterface
	guard    *inflight.Guard
	bus      *eventbus.Bus
	validate *validator.Validate
	pageSize int
	now      func() time.Time
	logger   *zap.Logger

	mu         sync.Mutex
	items      []entities.Solicitation
	generation uint64
	closed     bool
}

type ListOption func(*SolicitationListService)

// WithClock substitui time.Now.
func WithClock(now func() time.Time) ListOption {
	return func(s *SolicitationListService) { s.now = now }
}

func WithPageSize(size int) ListOption {
	return func(s *SolicitationListService) {
		if size > 0 {
			s.pageSize = size
		}
	}
}

func NewSolicitationListService(
	repo repositories.SolicitationRepositoryInterface,
	historic repositories.HistoricRepositoryInterface,
	guard *inflight.Guard,
	bus *eventbus.Bus,
	validate *validator.Validate,
	logger *zap.Logger,
	opts ...ListOption,
) *SolicitationListService {
	if guard == nil {
		guard = inflight.NewGuard()
	}
	if validate == nil {
		validate = customvalidator.New()
	}
	s := &SolicitationListService{
		repo:     repo,
		historic: historic,
		guard:    guard,
		bus:      bus,
		validate: validate,
		pageSize: utils.DefaultPageSize,
		now:      time.Now,
		logger:   logger.Named("solicitation_list"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load busca a lista no backend e aplica as regras de visibilidade. Em caso
// de falha a última lista carregada continua valendo.
func (s *SolicitationListService) Load(ctx context.Context, sess *session.Session, filter dto.SolicitationFilterDTO) ([]entities.Solicitation, error) {
	if err := session.Require(sess); err != nil {
		return nil, err
	}
	if err := ValidateFilter(s.validate, filter); err != nil {
		return nil, err
	}
	filter = scopeFilter(filter, sess)

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil, apperrors.ErrViewClosed
	}
	s.generation++
	gen := s.generation
	s.mu.Unlock()

	list, err := s.repo.List(ctx, sess.Token, filter)
	if err != nil {
		s.logger.Warn("falha ao carregar solicitações", zap.Error(err))
		return nil, &apperrors.FetchError{Op: "solicitações", Err: err}
	}
	visible := Visible(list, sess)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, apperrors.ErrViewClosed
	}
	if gen != s.generation {
		s.logger.Debug("resposta de consulta antiga descartada", zap.Uint64("generation", gen))
		return nil, apperrors.ErrStaleResponse
	}
	s.items = visible
	return cloneList(visible), nil
}

func (s *SolicitationListService) Items() []entities.Solicitation {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneList(s.items)
}

func (s *SolicitationListService) Page(pageNumber int) types.Page[entities.Solicitation] {
	return utils.Paginate(s.Items(), s.pageSize, pageNumber)
}

// Find procura pelo id ou, se ref for numérico, pelo numSol. Como numSol
// pode repetir, vale o primeiro da ordem da lista (o mais recente).
func (s *SolicitationListService) Find(ref string) (*entities.Solicitation, bool) {
	ref = strings.TrimSpace(ref)
	num, numErr := strconv.Atoi(ref)

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, item := range s.items {
		if item.ID == ref {
			found := item.Clone()
			return &found, true
		}
	}
	if numErr != nil {
		return nil, false
	}
	for _, item := range s.items {
		if item.NumSol == num {
			found := item.Clone()
			return &found, true
		}
	}
	return nil, false
}

func (s *SolicitationListService) Finalize(ctx context.Context, sess *session.Session, target entities.Solicitation) (*entities.Solicitation, error) {
	if err := s.beginMutation(sess); err != nil {
		return nil, err
	}
	current := s.current(target)
	if current.IsFinalized() {
		return nil, apperrors.ErrAlreadyFinalized
	}

	release, ok := s.guard.TryAcquire("finalize:" + current.ID)
	if !ok {
		return nil, apperrors.ErrOperationInProgress
	}
	defer release()

	now := s.now()
	patch := dto.UpdateSolicitationDTO{Status: utils.ToPtr(constants.StatusFinalizado), AtendedAt: &now}

	updated := current.Clone()
	updated.Status = constants.StatusFinalizado
	updated.AtendedAt = &now

	err := s.dualWrite(ctx, sess, events.OpFinalize, updated, func() error {
		return s.repo.Update(ctx, sess.Token, current.ID, patch)
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func (s *SolicitationListService) SoftDelete(ctx context.Context, sess *session.Session, target entities.Solicitation, confirmer Confirmer) error {
	if err := s.beginMutation(sess); err != nil {
		return err
	}
	current := s.current(target)

	release, ok := s.guard.TryAcquire("delete:" + current.ID)
	if !ok {
		return apperrors.ErrOperationInProgress
	}
	defer release()

	prompt := fmt.Sprintf("Excluir a solicitação nº %d (%s)?", current.NumSol, current.Equipment)
	if err := confirm(ctx, confirmer, prompt); err != nil {
		return err
	}

	updated := current.Clone()
	updated.StatusDelete = true

	return s.dualWrite(ctx, sess, events.OpSoftDelete, updated, func() error {
		return s.repo.Update(ctx, sess.Token, current.ID, dto.StatusDeleteDTO{StatusDelete: true})
	})
}

// Update envia apenas os campos presentes no patch; o histórico recebe o
// registro completo já mesclado.
func (s *SolicitationListService) Update(ctx context.Context, sess *session.Session, target entities.Solicitation, patch dto.UpdateSolicitationDTO) (*entities.Solicitation, error) {
	if err := s.beginMutation(sess); err != nil {
		return nil, err
	}
	if patch.IsEmpty() {
		return nil, apperrors.ErrEmptyPatch
	}
	if err := customvalidator.Struct(s.validate, patch); err != nil {
		return nil, err
	}
	current := s.current(target)

	updated, sent, err := s.merge(current, patch)
	if err != nil {
		return nil, err
	}

	release, ok := s.guard.TryAcquire("update:" + current.ID)
	if !ok {
		return nil, apperrors.ErrOperationInProgress
	}
	defer release()

	err = s.dualWrite(ctx, sess, events.OpUpdate, updated, func() error {
		return s.repo.Update(ctx, sess.Token, current.ID, sent)
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// Close invalida a tela: respostas pendentes são descartadas e novas
// operações falham com ErrViewClosed.
func (s *SolicitationListService) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	s.generation++
}

func (s *SolicitationListService) beginMutation(sess *session.Session) error {
	if err := session.RequireMutation(sess); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return apperrors.ErrViewClosed
	}
	return nil
}

// current prefere a versão em memória, que pode ser mais nova que a cópia
// recebida.
func (s *SolicitationListService) current(target entities.Solicitation) entities.Solicitation {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, item := range s.items {
		if item.ID == target.ID {
			return item.Clone()
		}
	}
	return target.Clone()
}

// merge aplica o patch e devolve o registro resultante e o corpo a enviar.
// Finalizar sem data de atendimento usa o horário atual; reabrir uma
// solicitação finalizada não é permitido.
func (s *SolicitationListService) merge(current entities.Solicitation, patch dto.UpdateSolicitationDTO) (entities.Solicitation, dto.UpdateSolicitationDTO, error) {
	updated := current.Clone()
	sent := patch

	if patch.Status != nil {
		status := constants.CanonicalStatus(*patch.Status)
		if current.IsFinalized() && !constants.IsFinalStatus(status) {
			return updated, sent, apperrors.ErrInvalidTransition
		}
		if constants.IsFinalStatus(status) && !current.IsFinalized() && patch.AtendedAt == nil {
			now := s.now()
			sent.AtendedAt = &now
		}
		sent.Status = &status
		updated.Status = status
	}
	if patch.Urgency != nil {
		urgency, _ := constants.ParseUrgency(*patch.Urgency)
		value := string(urgency)
		sent.Urgency = &value
		updated.Urgency = value
	}
	if sent.AtendedAt != nil {
		at := *sent.AtendedAt
		updated.AtendedAt = &at
	}
	if patch.PrevAtendedAt != nil {
		prev := *patch.PrevAtendedAt
		updated.PrevAtendedAt = &prev
	}
	return updated, sent, nil
}

// dualWrite grava o registro principal e depois o histórico. As duas
// metades são sempre tentadas; a lista em memória acompanha o registro
// principal.
func (s *SolicitationListService) dualWrite(ctx context.Context, sess *session.Session, op string, updated entities.Solicitation, primary func() error) error {
	primaryErr := primary()
	if primaryErr != nil {
		s.logger.Error("falha na escrita do registro principal",
			zap.String("op", op),
			zap.String("half", "primary"),
			zap.String("id", updated.ID),
			zap.Error(primaryErr),
		)
	}

	historicErr := s.historic.Append(ctx, sess.Token, updated.Snapshot())
	if historicErr != nil {
		s.logger.Error("falha na escrita do histórico",
			zap.String("op", op),
			zap.String("half", "historic"),
			zap.String("id", updated.ID),
			zap.Error(historicErr),
		)
	}

	if primaryErr == nil {
		s.replace(updated)
	}

	err := apperrors.NewMutationError(op, updated.ID, primaryErr, historicErr)
	s.bus.Publish(events.SolicitationChangedEvent{Op: op, Actor: sess.Name, Solicitation: updated, Err: err})
	return err
}

func (s *SolicitationListService) replace(updated entities.Solicitation) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, item := range s.items {
		if item.ID != updated.ID {
			continue
		}
		if updated.StatusDelete {
			s.items = append(s.items[:i:i], s.items[i+1:]...)
		} else {
			s.items[i] = updated.Clone()
		}
		return
	}
}

var _ SolicitationListServiceInterface = (*SolicitationListService)(nil)

func cloneList(list []entities.Solicitation) []entities.Solicitation {
	out := make([]entities.Solicitation, len(list))
	for i, item := range list {
		out[i] = item.Clone()
	}
	return out
}
