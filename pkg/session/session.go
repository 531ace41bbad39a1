// Package session transforma o token emitido pelo backend em uma sessão
// explícita, repassada a cada operação que precisa de identidade.
//
// A assinatura do token NÃO é verificada aqui: quem valida é o backend.
// Os claims servem apenas para decidir o que a interface mostra e quais
// chamadas nem devem ser tentadas.
package session

import (
	"strings"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"

	apperrors "solicitation-system/pkg/errors"
)

// Role é o nível de acesso ("nivel") do usuário.
type Role int

const (
	RoleRequester     Role = 1
	RoleAdministrator Role = 2
)

func (r Role) String() string {
	switch r {
	case RoleRequester:
		return "Usuário"
	case RoleAdministrator:
		return "Administrador"
	}
	if r > RoleAdministrator {
		return "Administrador+"
	}
	return "Desconhecido"
}

// CanMutateRequests é a única verificação de capacidade para alterar
// status, urgência, datas ou excluir solicitações.
func CanMutateRequests(r Role) bool {
	return r >= RoleAdministrator
}

// Claims é o payload emitido pelo backend.
type Claims struct {
	Name       string `json:"name"`
	Filial     string `json:"filial"`
	CostCenter string `json:"costCenter"`
	Nivel      int    `json:"nivel"`
	jwt.RegisteredClaims
}

// Session guarda o token bruto e os claims já decodificados.
type Session struct {
	Token      string
	Name       string
	Filial     string
	CostCenter string
	Role       Role
	ExpiresAt  *time.Time
}

// Decode lê os claims sem verificar a assinatura.
func Decode(token string) (*Session, error) {
	token = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(token), "Bearer "))
	if token == "" {
		return nil, apperrors.ErrAuthMissing
	}

	claims := &Claims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil, apperrors.ErrAuthInvalid
	}
	if strings.TrimSpace(claims.Name) == "" || claims.Nivel < int(RoleRequester) {
		return nil, apperrors.ErrAuthInvalid
	}

	s := &Session{
		Token:      token,
		Name:       claims.Name,
		Filial:     claims.Filial,
		CostCenter: claims.CostCenter,
		Role:       Role(claims.Nivel),
	}
	if claims.ExpiresAt != nil {
		exp := claims.ExpiresAt.Time
		s.ExpiresAt = &exp
	}
	return s, nil
}

// Require devolve ErrAuthMissing para sessão nula; usado no início de
// toda operação autenticada.
func Require(s *Session) error {
	if s == nil || s.Token == "" {
		return apperrors.ErrAuthMissing
	}
	return nil
}

// Allows substitui a comparação "nivel < minNivel" das rotas protegidas.
func (s *Session) Allows(min Role) bool {
	return s != nil && s.Role >= min
}

func (s *Session) CanMutateRequests() bool {
	return s != nil && CanMutateRequests(s.Role)
}

func (s *Session) IsRequester() bool {
	return s != nil && s.Role == RoleRequester
}

// Expired só informa; quem rejeita tokens vencidos é o backend.
func (s *Session) Expired(now time.Time) bool {
	return s != nil && s.ExpiresAt != nil && !now.Before(*s.ExpiresAt)
}

// RequireMutation combina as duas verificações feitas antes de qualquer
// escrita em solicitações.
func RequireMutation(s *Session) error {
	if err := Require(s); err != nil {
		return err
	}
	if !s.CanMutateRequests() {
		return apperrors.ErrForbidden
	}
	return nil
}
