package dto

import "time"

// SolicitationFilterDTO é o estado do painel de filtros. Campos vazios não
// viram parâmetro de consulta.
type SolicitationFilterDTO struct {
	StartDate string   `json:"startDate,omitempty" validate:"omitempty,date_ymd"`
	EndDate   string   `json:"endDate,omitempty" validate:"omitempty,date_ymd"`
	Requester []string `json:"requester,omitempty"`
	Filial    []string `json:"filial,omitempty"`
	Urgency   []string `json:"urgency,omitempty" validate:"dive,omitempty,urgency"`
	Status    []string `json:"status,omitempty"`
}

type CreateSolicitationDTO struct {
	Urgency           string `json:"urgency" validate:"required,urgency"`
	CategoryEquipment string `json:"categoryEquipment" validate:"required,not_blank"`
	TagEquipment      string `json:"tagEquipment" validate:"required,not_blank"`
	CategoryService   string `json:"categoryService" validate:"required,service_category"`
	Description       string `json:"description" validate:"required,not_blank"`
}

// UpdateSolicitationDTO só envia os campos presentes.
type UpdateSolicitationDTO struct {
	Status        *string    `json:"status,omitempty" validate:"omitempty,solicitation_status"`
	Urgency       *string    `json:"urgency,omitempty" validate:"omitempty,urgency"`
	AtendedAt     *time.Time `json:"atendedAt,omitempty"`
	PrevAtendedAt *time.Time `json:"PrevAtendedAt,omitempty"`
}

func (d UpdateSolicitationDTO) IsEmpty() bool {
	return d.Status == nil && d.Urgency == nil && d.AtendedAt == nil && d.PrevAtendedAt == nil
}

// SolicitationRowDTO é uma linha da tabela de solicitações.
type SolicitationRowDTO struct {
	ID                string     `json:"id"`
	NumSol            int        `json:"numSol"`
	Filial            string     `json:"filial"`
	UserName          string     `json:"userName"`
	CategoryService   string     `json:"categoryService"`
	Status            string     `json:"status"`
	CreatedAt         time.Time  `json:"createdAt"`
	CreatedAtLabel    string     `json:"createdAtLabel"`
	AtendedAt         *time.Time `json:"atendedAt,omitempty"`
	DaysOpen          int        `json:"daysOpen"`
	DaysOpenLabel     string     `json:"daysOpenLabel"`
	Urgency           string     `json:"urgency"`
	UrgencySeverity   int        `json:"urgencySeverity"`
	UrgencyBadge      string     `json:"urgencyBadge"`
	CategoryEquipment string     `json:"categoryEquipment"`
	Equipment         string     `json:"equipment"`
	TagEquipment      string     `json:"tagEquipment"`
	Description       string     `json:"description"`
	CanEdit           bool       `json:"canEdit"`
	CanFinalize       bool       `json:"canFinalize"`
	CanDelete         bool       `json:"canDelete"`
}

type UrgencyOptionDTO struct {
	Value       string `json:"value"`
	Description string `json:"description"`
	Badge       string `json:"badge"`
}

// EquipmentOptionDTO é um item do seletor de TAG.
type EquipmentOptionDTO struct {
	Name         string `json:"name"`
	TagEquipment string `json:"tagEquipment"`
}

// SubmissionOptionsDTO alimenta o formulário de abertura.
type SubmissionOptionsDTO struct {
	Categories          []string                        `json:"categories"`
	EquipmentByCategory map[string][]EquipmentOptionDTO `json:"equipmentByCategory"`
	Services            []string                        `json:"services"`
	Urgencies           []UrgencyOptionDTO              `json:"urgencies"`
}

// FilterOptionsDTO alimenta o painel de filtros.
type FilterOptionsDTO struct {
	Requesters []string `json:"requesters"`
	Filiais    []string `json:"filiais"`
	Urgencies  []string `json:"urgencies"`
	Statuses   []string `json:"statuses"`
}
