// Package seeders popula o backend de desenvolvimento com cadastros
// mínimos para usar o cliente.
package seeders

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"solicitation-system/internal/entities"
	"solicitation-system/internal/store"
)

// Seed não faz nada quando já existem usuários gravados.
func Seed(ctx context.Context, st store.Store, logger *zap.Logger) error {
	logger = logger.Named("seeder")

	users := store.NewCollection[store.UserRecord](st, store.Users)
	existing, err := users.All(ctx)
	if err != nil {
		return fmt.Errorf("erro ao verificar usuários: %w", err)
	}
	if len(existing) > 0 {
		logger.Info("dados já existem, nada a fazer", zap.Int("users", len(existing)))
		return nil
	}

	if err := seedUsers(ctx, users); err != nil {
		return fmt.Errorf("erro ao criar usuários: %w", err)
	}
	if err := seedReferences(ctx, store.NewCollection[entities.Filial](st, store.Filiais), filiaisData, func(f *entities.Filial, id string) { f.ID = id }); err != nil {
		return fmt.Errorf("erro ao criar filiais: %w", err)
	}
	if err := seedReferences(ctx, store.NewCollection[entities.EquipmentCategory](st, store.EquipmentCategories), categoriesData, func(c *entities.EquipmentCategory, id string) { c.ID = id }); err != nil {
		return fmt.Errorf("erro ao criar categorias: %w", err)
	}
	if err := seedReferences(ctx, store.NewCollection[entities.Equipment](st, store.Equipments), equipmentsData, func(e *entities.Equipment, id string) { e.ID = id }); err != nil {
		return fmt.Errorf("erro ao criar equipamentos: %w", err)
	}

	logger.Info("seed concluído",
		zap.Int("users", len(usersData)),
		zap.Int("filiais", len(filiaisData)),
		zap.Int("categories", len(categoriesData)),
		zap.Int("equipments", len(equipmentsData)),
	)
	return nil
}

func seedUsers(ctx context.Context, users *store.Collection[store.UserRecord]) error {
	for _, seed := range usersData {
		hash, err := bcrypt.GenerateFromPassword([]byte(seed.password), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		record := store.UserRecord{User: seed.user, PasswordHash: string(hash)}
		record.ID = uuid.NewString()
		if err := users.Insert(ctx, record.ID, record); err != nil {
			return err
		}
	}
	return nil
}

func seedReferences[T any](ctx context.Context, items *store.Collection[T], data []T, setID func(*T, string)) error {
	for _, item := range data {
		id := uuid.NewString()
		setID(&item, id)
		if err := items.Insert(ctx, id, item); err != nil {
			return err
		}
	}
	return nil
}
