package services

import "context"

// Confirmer pede a confirmação explícita do usuário antes de ações
// destrutivas.
type Confirmer interface {
	Confirm(ctx context.Context, prompt string) (bool, error)
}

// ConfirmFunc adapta uma função a Confirmer.
type ConfirmFunc func(ctx context.Context, prompt string) (bool, error)

func (f ConfirmFunc) Confirm(ctx context.Context, prompt string) (bool, error) {
	return f(ctx, prompt)
}

// AlwaysConfirm é usado quando o usuário já confirmou por outro meio
// (por exemplo, --yes na linha de comando).
var AlwaysConfirm Confirmer = ConfirmFunc(func(context.Context, string) (bool, error) {
	return true, nil
})

func confirm(ctx context.Context, c Confirmer, prompt string) error {
	if c == nil {
		return errNotConfirmed
	}
	ok, err := c.Confirm(ctx, prompt)
	if err != nil {
		return err
	}
	if !ok {
		return errNotConfirmed
	}
	return nil
}
