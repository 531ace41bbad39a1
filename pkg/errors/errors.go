package errors

import (
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"
)

var (
	// Sessão e token
	ErrAuthMissing          = fmt.Errorf("sessão ausente: faça login novamente")
	ErrAuthInvalid          = fmt.Errorf("token inválido ou sem dados de identificação")
	ErrInvalidSigningMethod = fmt.Errorf("método de assinatura do token inválido")
	ErrTokenExpired         = fmt.Errorf("token expirado")

	// Cabeçalho de autorização (backend de desenvolvimento)
	ErrEmptyAuthHeader    = fmt.Errorf("cabeçalho de autorização ausente")
	ErrInvalidAuthHeader  = fmt.Errorf("formato do cabeçalho de autorização inválido")
	ErrInvalidCredentials = fmt.Errorf("e-mail ou senha inválidos")

	// Permissões
	ErrForbidden = fmt.Errorf("acesso negado")

	// Ciclo de vida da solicitação
	ErrAlreadyFinalized    = fmt.Errorf("solicitação já finalizada")
	ErrInvalidTransition   = fmt.Errorf("transição de status não permitida")
	ErrNotConfirmed        = fmt.Errorf("operação não confirmada pelo usuário")
	ErrEmptyPatch          = fmt.Errorf("nenhum campo informado para atualização")
	ErrOperationInProgress = fmt.Errorf("operação já em andamento")
	ErrViewClosed          = fmt.Errorf("a tela foi fechada")
	ErrStaleResponse       = fmt.Errorf("resposta descartada: existe uma consulta mais recente")

	// Gerais
	ErrNotFound   = fmt.Errorf("registro não encontrado")
	ErrBadRequest = fmt.Errorf("requisição inválida")
)

// FetchError envolve qualquer falha de leitura (rede ou status != 2xx).
type FetchError struct {
	Op  string
	Err error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("falha ao carregar %s: %v", e.Op, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// MutationError descreve uma escrita dupla (principal + histórico) que falhou
// em pelo menos uma das metades.
type MutationError struct {
	Op       string
	ID       string
	Primary  error
	Historic error
}

func (e *MutationError) Error() string {
	var parts []string
	if e.Primary != nil {
		parts = append(parts, fmt.Sprintf("registro principal: %v", e.Primary))
	}
	if e.Historic != nil {
		parts = append(parts, fmt.Sprintf("histórico: %v", e.Historic))
	}
	target := e.Op
	if e.ID != "" {
		target = fmt.Sprintf("%s %s", e.Op, e.ID)
	}
	return fmt.Sprintf("falha em %s (%s)", target, strings.Join(parts, "; "))
}

func (e *MutationError) Unwrap() []error {
	var errs []error
	if e.Primary != nil {
		errs = append(errs, e.Primary)
	}
	if e.Historic != nil {
		errs = append(errs, e.Historic)
	}
	return errs
}

// Partial informa se apenas uma das duas escritas foi aplicada.
func (e *MutationError) Partial() bool {
	return (e.Primary == nil) != (e.Historic == nil)
}

// PrimaryApplied informa se o registro principal foi gravado.
func (e *MutationError) PrimaryApplied() bool {
	return e.Primary == nil
}

// NewMutationError retorna nil quando as duas metades tiveram sucesso.
func NewMutationError(op, id string, primary, historic error) error {
	if primary == nil && historic == nil {
		return nil
	}
	return &MutationError{Op: op, ID: id, Primary: primary, Historic: historic}
}

// StatusError é uma resposta do backend fora da faixa 2xx.
type StatusError struct {
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("backend respondeu %d %s", e.Code, http.StatusText(e.Code))
	}
	return fmt.Sprintf("backend respondeu %d: %s", e.Code, e.Message)
}

func (e *StatusError) Is(target error) bool {
	switch target {
	case ErrAuthInvalid:
		return e.Code == http.StatusUnauthorized
	case ErrForbidden:
		return e.Code == http.StatusForbidden
	case ErrNotFound:
		return e.Code == http.StatusNotFound
	case ErrBadRequest:
		return e.Code == http.StatusBadRequest
	}
	return false
}

// ValidationError acumula mensagens por campo de formulário.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	msgs := make([]string, 0, len(keys))
	for _, k := range keys {
		msgs = append(msgs, fmt.Sprintf("%s: %s", k, e.Fields[k]))
	}
	return "dados inválidos: " + strings.Join(msgs, "; ")
}

func NewValidationError(field, message string) error {
	return &ValidationError{Fields: map[string]string{field: message}}
}

// HttpError é usado pelo backend de desenvolvimento para montar respostas de erro.
type HttpError struct {
	Code    int
	Message string
	Err     error
	Details interface{}
}

func (e *HttpError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *HttpError) Unwrap() error { return e.Err }

func NewHttpError(code int, message string, err error, details interface{}) *HttpError {
	return &HttpError{Code: code, Message: message, Err: err, Details: details}
}

// IsAuthError cobre os dois casos que levam o usuário de volta ao login.
func IsAuthError(err error) bool {
	return errors.Is(err, ErrAuthMissing) || errors.Is(err, ErrAuthInvalid)
}
