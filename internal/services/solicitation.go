package services

import (
	"context"
	"strings"

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
)

// SolicitationService cuida da abertura de solicitações.
type SolicitationService struct {
	repo       repositories.SolicitationRepositoryInterface
	historic   repositories.HistoricRepositoryInterface
	equipments repositories.ReferenceRepositoryInterface[entities.Equipment]
	categories repositories.ReferenceRepositoryInterface[entities.EquipmentCategory]
	guard      *inflight.Guard
	bus        *eventbus.Bus
	validate   *validator.Validate
	logger     *zap.Logger
}

func NewSolicitationService(
	repo repositories.SolicitationRepositoryInterface,
	historic repositories.HistoricRepositoryInterface,
	equipments repositories.ReferenceRepositoryInterface[entities.Equipment],
	categories repositories.ReferenceRepositoryInterface[entities.EquipmentCategory],
	guard *inflight.Guard,
	bus *eventbus.Bus,
	validate *validator.Validate,
	logger *zap.Logger,
) *SolicitationService {
	if guard == nil {
		guard = inflight.NewGuard()
	}
	if validate == nil {
		validate = customvalidator.New()
	}
	return &SolicitationService{
		repo:       repo,
		historic:   historic,
		equipments: equipments,
		categories: categories,
		guard:      guard,
		bus:        bus,
		validate:   validate,
		logger:     logger.Named("solicitation"),
	}
}

// Options lista o que o formulário de abertura oferece ao usuário: somente
// cadastros ativos da filial da sessão.
func (s *SolicitationService) Options(ctx context.Context, sess *session.Session) (*dto.SubmissionOptionsDTO, error) {
	if err := session.Require(sess); err != nil {
		return nil, err
	}

	categories, err := s.categories.List(ctx, sess.Token)
	if err != nil {
		return nil, &apperrors.FetchError{Op: "categorias de equipamento", Err: err}
	}
	equipments, err := s.equipments.List(ctx, sess.Token)
	if err != nil {
		return nil, &apperrors.FetchError{Op: "equipamentos", Err: err}
	}

	categories = inFilial(activeOnly(categories), sess.Filial)
	equipments = inFilial(activeOnly(equipments), sess.Filial)

	opts := &dto.SubmissionOptionsDTO{
		Categories:          names(categories),
		EquipmentByCategory: make(map[string][]dto.EquipmentOptionDTO),
		Services:            append([]string(nil), constants.ServiceCategories...),
	}
	for _, e := range equipments {
		opts.EquipmentByCategory[e.CategoryEquipment] = append(opts.EquipmentByCategory[e.CategoryEquipment], dto.EquipmentOptionDTO{
			Name:         e.Name,
			TagEquipment: e.TagEquipment,
		})
	}
	for _, u := range constants.Urgencies {
		opts.Urgencies = append(opts.Urgencies, dto.UrgencyOptionDTO{
			Value:       string(u),
			Description: u.Description(),
			Badge:       u.Badge(),
		})
	}
	return opts, nil
}

// Create abre uma solicitação. numSol é calculado como último+1 e pode
// repetir sob concorrência; as linhas são identificadas pelo id.
func (s *SolicitationService) Create(ctx context.Context, sess *session.Session, payload dto.CreateSolicitationDTO) (*entities.Solicitation, error) {
	if err := session.Require(sess); err != nil {
		return nil, err
	}
	if err := customvalidator.Struct(s.validate, payload); err != nil {
		return nil, err
	}

	release, ok := s.guard.TryAcquire("create:" + sess.Name)
	if !ok {
		return nil, apperrors.ErrOperationInProgress
	}
	defer release()

	equipment, err := s.findEquipment(ctx, sess, payload)
	if err != nil {
		return nil, err
	}

	last, err := s.repo.Last(ctx, sess.Token)
	if err != nil {
		s.logger.Error("falha ao obter o último numSol", zap.Error(err))
		return nil, &apperrors.FetchError{Op: "último número de solicitação", Err: err}
	}

	urgency, _ := constants.ParseUrgency(payload.Urgency)
	service, _ := constants.ParseServiceCategory(payload.CategoryService)
	record := entities.Solicitation{
		NumSol:            last + 1,
		UserName:          sess.Name,
		Filial:            sess.Filial,
		CostCenter:        sess.CostCenter,
		Urgency:           string(urgency),
		CategoryEquipment: equipment.CategoryEquipment,
		TagEquipment:      equipment.TagEquipment,
		Equipment:         equipment.Name,
		CategoryService:   service,
		Description:       strings.TrimSpace(payload.Description),
		Status:            constants.StatusPendente,
		StatusDelete:      false,
	}

	created, primaryErr := s.repo.Create(ctx, sess.Token, record)
	if primaryErr != nil {
		s.logger.Error("falha ao gravar a solicitação",
			zap.String("half", "primary"),
			zap.Int("numSol", record.NumSol),
			zap.Error(primaryErr),
		)
	} else if created != nil {
		record = mergeCreated(record, *created)
	}

	historicErr := s.historic.Append(ctx, sess.Token, record.Snapshot())
	if historicErr != nil {
		s.logger.Error("falha ao gravar o histórico da solicitação",
			zap.String("half", "historic"),
			zap.Int("numSol", record.NumSol),
			zap.Error(historicErr),
		)
	}

	err = apperrors.NewMutationError(events.OpCreate, record.ID, primaryErr, historicErr)
	s.bus.Publish(events.SolicitationChangedEvent{Op: events.OpCreate, Actor: sess.Name, Solicitation: record, Err: err})
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// findEquipment resolve a TAG entre os equipamentos ativos da filial.
func (s *SolicitationService) findEquipment(ctx context.Context, sess *session.Session, payload dto.CreateSolicitationDTO) (*entities.Equipment, error) {
	list, err := s.equipments.List(ctx, sess.Token)
	if err != nil {
		return nil, &apperrors.FetchError{Op: "equipamentos", Err: err}
	}
	tag := strings.TrimSpace(payload.TagEquipment)
	for _, e := range inFilial(activeOnly(list), sess.Filial) {
		if !strings.EqualFold(strings.TrimSpace(e.TagEquipment), tag) {
			continue
		}
		if !strings.EqualFold(strings.TrimSpace(e.CategoryEquipment), strings.TrimSpace(payload.CategoryEquipment)) {
			return nil, apperrors.NewValidationError("categoryEquipment", "o equipamento não pertence a esta categoria")
		}
		return &e, nil
	}
	return nil, apperrors.NewValidationError("tagEquipment", "equipamento não encontrado na filial")
}

// mergeCreated completa o registro enviado com o que o backend atribuiu.
func mergeCreated(sent, created entities.Solicitation) entities.Solicitation {
	out := sent
	out.ID = created.ID
	if !created.CreatedAt.IsZero() {
		out.CreatedAt = created.CreatedAt
	}
	return out
}
