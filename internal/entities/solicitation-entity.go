package entities

import (
	"time"

	"solicitation-system/pkg/constants"
)

// Solicitation — a solicitação de manutenção, exatamente como trafega no
// backend. Nomes JSON seguem o contrato existente (inclusive PrevAtendedAt).
type Solicitation struct {
	ID                string     `json:"id,omitempty"`
	NumSol            int        `json:"numSol"`
	UserName          string     `json:"userName"`
	Filial            string     `json:"filial"`
	CostCenter        string     `json:"costCenter"`
	Urgency           string     `json:"urgency"`
	CategoryEquipment string     `json:"categoryEquipment"`
	TagEquipment      string     `json:"tagEquipment"`
	Equipment         string     `json:"equipment"`
	CategoryService   string     `json:"categoryService"`
	Description       string     `json:"description"`
	Status            string     `json:"status"`
	StatusDelete      bool       `json:"statusDelete"`
	CreatedAt         time.Time  `json:"createdAt,omitzero"`
	AtendedAt         *time.Time `json:"atendedAt,omitempty"`
	PrevAtendedAt     *time.Time `json:"PrevAtendedAt,omitempty"`
}

func (s Solicitation) IsFinalized() bool {
	return constants.IsFinalStatus(s.Status)
}

// Snapshot é a cópia gravada no histórico: registro completo, sem o id.
func (s Solicitation) Snapshot() Solicitation {
	snap := s.Clone()
	snap.ID = ""
	return snap
}

// Clone copia também os ponteiros de data.
func (s Solicitation) Clone() Solicitation {
	c := s
	if s.AtendedAt != nil {
		t := *s.AtendedAt
		c.AtendedAt = &t
	}
	if s.PrevAtendedAt != nil {
		t := *s.PrevAtendedAt
		c.PrevAtendedAt = &t
	}
	return c
}
