package constants

import "solicitation-system/pkg/utils"

// Urgency — classificação de gravidade, em ordem crescente.
type Urgency string

const (
	UrgencyLow      Urgency = "Baixa/Agendada"
	UrgencyModerate Urgency = "Moderada"
	UrgencyHigh     Urgency = "Alta"
	UrgencyCritical Urgency = "Crítico/Urgente"
)

// Urgencies em ordem crescente de gravidade.
var Urgencies = []Urgency{UrgencyLow, UrgencyModerate, UrgencyHigh, UrgencyCritical}

// Cores do selo de urgência.
const (
	BadgeRed    = "red"
	BadgeOrange = "orange"
	BadgeYellow = "yellow"
	BadgeGreen  = "green"
	BadgeGray   = "gray"
)

var urgencyAliases = map[string]Urgency{
	"baixa":    UrgencyLow,
	"agendada": UrgencyLow,
	"critico":  UrgencyCritical,
	"urgente":  UrgencyCritical,
}

// ParseUrgency aceita variações sem acento ("Critico/Urgente") e a forma
// curta "Baixa".
func ParseUrgency(s string) (Urgency, bool) {
	n := utils.Normalize(s)
	if n == "" {
		return "", false
	}
	for _, u := range Urgencies {
		if utils.Normalize(string(u)) == n {
			return u, true
		}
	}
	if u, ok := urgencyAliases[n]; ok {
		return u, true
	}
	return Urgency(s), false
}

// Severity: 1 (baixa) .. 4 (crítica); 0 para valores desconhecidos.
func (u Urgency) Severity() int {
	canonical, ok := ParseUrgency(string(u))
	if !ok {
		return 0
	}
	for i, known := range Urgencies {
		if known == canonical {
			return i + 1
		}
	}
	return 0
}

func (u Urgency) Badge() string {
	switch u.Severity() {
	case 4:
		return BadgeRed
	case 3:
		return BadgeOrange
	case 2:
		return BadgeYellow
	case 1:
		return BadgeGreen
	}
	return BadgeGray
}

// Description é o texto de ajuda mostrado no formulário de abertura.
func (u Urgency) Description() string {
	switch u.Severity() {
	case 4:
		return "Equipamento principal parado por quebra"
	case 3:
		return "Equipamento principal operando com restrições"
	case 2:
		return "Equipamento reserva parado por quebra"
	case 1:
		return "Equipamento reserva operando com restrições"
	}
	return ""
}

func (u Urgency) String() string { return string(u) }
