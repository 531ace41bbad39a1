package events

import (
	"errors"

	"solicitation-system/internal/entities"
	apperrors "solicitation-system/pkg/errors"
)

const (
	OpCreate     = "create"
	OpFinalize   = "finalize"
	OpSoftDelete = "delete"
	OpUpdate     = "update"
)

// SolicitationChangedEvent é publicado depois de qualquer escrita em
// solicitações, inclusive as parciais.
type SolicitationChangedEvent struct {
	Op           string
	Actor        string
	Solicitation entities.Solicitation
	// Err é o *MutationError quando alguma metade falhou.
	Err error
}

func (e SolicitationChangedEvent) Name() string {
	return "solicitation.changed"
}

// Partial informa se o registro principal foi gravado e o histórico não,
// ou vice-versa.
func (e SolicitationChangedEvent) Partial() bool {
	var mErr *apperrors.MutationError
	return errors.As(e.Err, &mErr) && mErr.Partial()
}
