// Package store guarda os documentos JSON do backend de desenvolvimento.
package store

import (
	"context"
	"errors"

	apperrors "solicitation-system/pkg/errors"
)

// Nomes das coleções.
const (
	Solicitations       = "solicitation"
	Historic            = "solicitationHistoric"
	Users               = "users"
	Filiais             = "filial"
	Equipments          = "equipament"
	EquipmentCategories = "categoryEquipment"
)

// ErrNotFound é o mesmo sentinela usado pelo cliente.
var ErrNotFound = apperrors.ErrNotFound

var ErrDuplicateID = errors.New("já existe um documento com este id")

// Store guarda documentos por coleção preservando a ordem de inserção.
type Store interface {
	Insert(ctx context.Context, collection, id string, doc []byte) error
	Replace(ctx context.Context, collection, id string, doc []byte) error
	Get(ctx context.Context, collection, id string) ([]byte, error)
	All(ctx context.Context, collection string) ([][]byte, error)
	Close() error
}
