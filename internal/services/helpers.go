package services

import (
	"sort"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"solicitation-system/internal/dto"
	"solicitation-system/internal/entities"
	"solicitation-system/pkg/constants"
	"solicitation-system/pkg/customvalidator"
	apperrors "solicitation-system/pkg/errors"
	"solicitation-system/pkg/session"
	"solicitation-system/pkg/utils"
)

var errNotConfirmed = apperrors.ErrNotConfirmed

// DaysOpen conta dias corridos (arredondados para cima) desde a abertura:
// até o atendimento para finalizadas, até now para as demais.
func DaysOpen(s entities.Solicitation, now time.Time) int {
	end := now
	if s.IsFinalized() && s.AtendedAt != nil {
		end = *s.AtendedAt
	}
	return utils.CeilDays(s.CreatedAt, end)
}

// Visible aplica as regras de visibilidade da listagem: descarta excluídas,
// restringe o solicitante às próprias solicitações e ordena por numSol
// decrescente. A entrada não é alterada.
func Visible(list []entities.Solicitation, sess *session.Session) []entities.Solicitation {
	out := make([]entities.Solicitation, 0, len(list))
	for _, s := range list {
		if s.StatusDelete {
			continue
		}
		if sess.IsRequester() && strings.TrimSpace(s.UserName) != strings.TrimSpace(sess.Name) {
			continue
		}
		out = append(out, s)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].NumSol > out[j].NumSol
	})
	return out
}

// Row projeta uma solicitação na linha da tabela.
func Row(s entities.Solicitation, sess *session.Session, now time.Time) dto.SolicitationRowDTO {
	days := DaysOpen(s, now)
	urgency := constants.Urgency(s.Urgency)
	canMutate := sess.CanMutateRequests()
	return dto.SolicitationRowDTO{
		ID:                s.ID,
		NumSol:            s.NumSol,
		Filial:            s.Filial,
		UserName:          s.UserName,
		CategoryService:   s.CategoryService,
		Status:            s.Status,
		CreatedAt:         s.CreatedAt,
		CreatedAtLabel:    utils.FormatDate(&s.CreatedAt),
		AtendedAt:         s.AtendedAt,
		DaysOpen:          days,
		DaysOpenLabel:     utils.FormatDays(days),
		Urgency:           s.Urgency,
		UrgencySeverity:   urgency.Severity(),
		UrgencyBadge:      urgency.Badge(),
		CategoryEquipment: s.CategoryEquipment,
		Equipment:         s.Equipment,
		TagEquipment:      s.TagEquipment,
		Description:       s.Description,
		CanEdit:           canMutate,
		CanFinalize:       canMutate && !s.IsFinalized(),
		CanDelete:         canMutate,
	}
}

func Rows(list []entities.Solicitation, sess *session.Session, now time.Time) []dto.SolicitationRowDTO {
	rows := make([]dto.SolicitationRowDTO, 0, len(list))
	for _, s := range list {
		rows = append(rows, Row(s, sess, now))
	}
	return rows
}

// ValidateFilter confere formato das datas, a ordem entre elas e as
// urgências informadas.
func ValidateFilter(v *validator.Validate, filter dto.SolicitationFilterDTO) error {
	if err := customvalidator.Struct(v, filter); err != nil {
		return err
	}
	if filter.StartDate == "" || filter.EndDate == "" {
		return nil
	}
	start, _ := time.Parse(customvalidator.DateLayout, filter.StartDate)
	end, _ := time.Parse(customvalidator.DateLayout, filter.EndDate)
	if start.After(end) {
		return apperrors.NewValidationError("startDate", "data inicial posterior à data final")
	}
	return nil
}

// scopeFilter remove filtros que o solicitante não pode usar.
func scopeFilter(filter dto.SolicitationFilterDTO, sess *session.Session) dto.SolicitationFilterDTO {
	if sess.IsRequester() {
		filter.Requester = nil
		filter.Filial = nil
	}
	return filter
}

func activeOnly[T entities.Reference](list []T) []T {
	out := make([]T, 0, len(list))
	for _, item := range list {
		if !item.IsDeleted() {
			out = append(out, item)
		}
	}
	return out
}

func inFilial[T entities.Reference](list []T, filial string) []T {
	out := make([]T, 0, len(list))
	for _, item := range list {
		if utils.EqualFoldAccents(item.FilialName(), filial) {
			out = append(out, item)
		}
	}
	return out
}

// names devolve nomes distintos em ordem alfabética, sem acentos na
// comparação.
func names[T entities.Reference](list []T) []string {
	seen := make(map[string]bool, len(list))
	out := make([]string, 0, len(list))
	for _, item := range list {
		name := strings.TrimSpace(item.GetName())
		key := utils.Normalize(name)
		if name == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, name)
	}
	sort.Slice(out, func(i, j int) bool {
		return utils.Normalize(out[i]) < utils.Normalize(out[j])
	})
	return out
}
