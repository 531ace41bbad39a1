package store

import "solicitation-system/internal/entities"

// UserRecord é o usuário como fica gravado: com o hash da senha, que
// nunca sai na API.
type UserRecord struct {
	entities.User
	PasswordHash string `json:"passwordHash"`
}
