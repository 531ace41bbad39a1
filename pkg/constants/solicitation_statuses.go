package constants

import (
	"strings"

	"solicitation-system/pkg/utils"
)

// --- STATUS DAS SOLICITAÇÕES ---
// O backend pode devolver outros valores; estes são os reconhecidos.
const (
	StatusPendente   = "Pendente"
	StatusAberto     = "Aberto"
	StatusFinalizado = "Finalizado"
)

var OpenStatuses = []string{StatusPendente, StatusAberto}

var KnownStatuses = []string{StatusPendente, StatusAberto, StatusFinalizado}

// IsFinalStatus compara sem diferenciar caixa nem acentos.
func IsFinalStatus(status string) bool {
	return utils.EqualFoldAccents(status, StatusFinalizado)
}

// CanonicalStatus devolve a grafia conhecida; valores desconhecidos
// passam como vieram (sem espaços nas pontas).
func CanonicalStatus(status string) string {
	c, _ := utils.Canonical(strings.TrimSpace(status), KnownStatuses)
	return c
}
