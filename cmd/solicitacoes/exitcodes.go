package main

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	apperrors "solicitation-system/pkg/errors"
)

const (
	exitOK         = 0
	exitFailure    = 1
	exitValidation = 2
	exitAuth       = 3
	exitForbidden  = 4
	exitBackend    = 5
	exitPartial    = 6
	exitAborted    = 7
)

func exitCode(err error) int {
	var (
		mutationErr   *apperrors.MutationError
		validationErr *apperrors.ValidationError
		fetchErr      *apperrors.FetchError
		statusErr     *apperrors.StatusError
	)
	switch {
	case err == nil:
		return exitOK
	case errors.As(err, &mutationErr) && mutationErr.Partial():
		return exitPartial
	case apperrors.IsAuthError(err), errors.Is(err, apperrors.ErrInvalidCredentials):
		return exitAuth
	case errors.Is(err, apperrors.ErrForbidden):
		return exitForbidden
	case errors.Is(err, apperrors.ErrNotConfirmed):
		return exitAborted
	case errors.As(err, &validationErr),
		errors.Is(err, apperrors.ErrEmptyPatch),
		errors.Is(err, apperrors.ErrInvalidTransition),
		errors.Is(err, apperrors.ErrAlreadyFinalized),
		errors.Is(err, apperrors.ErrNotFound):
		return exitValidation
	case errors.As(err, &fetchErr), errors.As(err, &statusErr), errors.As(err, &mutationErr):
		return exitBackend
	}
	return exitFailure
}

// userMessage traduz o erro para o texto mostrado no terminal.
func userMessage(err error) string {
	var (
		mutationErr   *apperrors.MutationError
		validationErr *apperrors.ValidationError
	)
	switch {
	case errors.As(err, &mutationErr) && mutationErr.Partial():
		if mutationErr.PrimaryApplied() {
			return fmt.Sprintf("Atenção: %s gravado, mas o histórico falhou (%v). Confira o histórico manualmente.", mutationErr.Op, mutationErr.Historic)
		}
		return fmt.Sprintf("Atenção: o histórico de %s foi gravado, mas o registro principal falhou (%v). Confira a solicitação manualmente.", mutationErr.Op, mutationErr.Primary)
	case errors.Is(err, apperrors.ErrInvalidCredentials):
		return "E-mail ou senha inválidos."
	case apperrors.IsAuthError(err):
		return "Sessão inválida ou expirada. Faça login novamente (solicitacoes login) e informe o token com --token ou SOLICITACOES_TOKEN."
	case errors.Is(err, apperrors.ErrForbidden):
		return "Acesso negado: esta operação exige nível de administrador."
	case errors.Is(err, apperrors.ErrNotConfirmed):
		return "Operação cancelada."
	case errors.As(err, &validationErr):
		keys := make([]string, 0, len(validationErr.Fields))
		for k := range validationErr.Fields {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		var b strings.Builder
		b.WriteString("Dados inválidos:\n")
		for _, k := range keys {
			fmt.Fprintf(&b, "  %s: %s\n", k, validationErr.Fields[k])
		}
		return b.String()
	}
	return "Erro: " + err.Error()
}
