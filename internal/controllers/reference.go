package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"solicitation-system/internal/dto"
	"solicitation-system/internal/entities"
	"solicitation-system/internal/store"
	apperrors "solicitation-system/pkg/errors"
	"solicitation-system/pkg/utils"
)

// ReferenceController serve filiais, equipamentos e categorias: C é o DTO
// de criação e U o de edição.
type ReferenceController[T entities.Reference, C any, U any] struct {
	items  *store.Collection[T]
	build  func(id string, payload C) T
	logger *zap.Logger
}

func NewFilialController(items *store.Collection[entities.Filial], logger *zap.Logger) *ReferenceController[entities.Filial, dto.CreateFilialDTO, dto.UpdateFilialDTO] {
	return &ReferenceController[entities.Filial, dto.CreateFilialDTO, dto.UpdateFilialDTO]{
		items: items,
		build: func(id string, p dto.CreateFilialDTO) entities.Filial {
			return entities.Filial{ID: id, Name: p.Name}
		},
		logger: logger.Named("filial_controller"),
	}
}

func NewEquipmentController(items *store.Collection[entities.Equipment], logger *zap.Logger) *ReferenceController[entities.Equipment, dto.CreateEquipmentDTO, dto.UpdateEquipmentDTO] {
	return &ReferenceController[entities.Equipment, dto.CreateEquipmentDTO, dto.UpdateEquipmentDTO]{
		items: items,
		build: func(id string, p dto.CreateEquipmentDTO) entities.Equipment {
			return entities.Equipment{
				ID:                id,
				Name:              p.Name,
				TagEquipment:      p.TagEquipment,
				CategoryEquipment: p.CategoryEquipment,
				Filial:            p.Filial,
			}
		},
		logger: logger.Named("equipment_controller"),
	}
}

func NewEquipmentCategoryController(items *store.Collection[entities.EquipmentCategory], logger *zap.Logger) *ReferenceController[entities.EquipmentCategory, dto.CreateEquipmentCategoryDTO, dto.UpdateEquipmentCategoryDTO] {
	return &ReferenceController[entities.EquipmentCategory, dto.CreateEquipmentCategoryDTO, dto.UpdateEquipmentCategoryDTO]{
		items: items,
		build: func(id string, p dto.CreateEquipmentCategoryDTO) entities.EquipmentCategory {
			return entities.EquipmentCategory{ID: id, Name: p.Name, Filial: p.Filial}
		},
		logger: logger.Named("equipment_category_controller"),
	}
}

func (c *ReferenceController[T, C, U]) List(ctx echo.Context) error {
	all, err := c.items.All(ctx.Request().Context())
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return ctx.JSON(http.StatusOK, filterDeleted(all, deletedFilter(ctx)))
}

func (c *ReferenceController[T, C, U]) Create(ctx echo.Context) error {
	var payload C
	if err := bindAndValidate(ctx, &payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	item := c.build(uuid.NewString(), payload)
	if err := c.items.Insert(ctx.Request().Context(), item.GetID(), item); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	c.logger.Info("cadastro criado", zap.String("id", item.GetID()), zap.String("name", item.GetName()))
	return ctx.JSON(http.StatusCreated, item)
}

// Update aceita qualquer subconjunto dos campos de U, inclusive statusDelete.
func (c *ReferenceController[T, C, U]) Update(ctx echo.Context) error {
	patch, err := bindPatch(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	if err := validatePatch[U](ctx, patch); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	updated, err := c.items.Patch(ctx.Request().Context(), ctx.Param("id"), patch)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return ctx.JSON(http.StatusOK, updated)
}

func validatePatch[U any](ctx echo.Context, patch map[string]json.RawMessage) error {
	raw, err := json.Marshal(patch)
	if err != nil {
		return err
	}
	var payload U
	if err := json.Unmarshal(raw, &payload); err != nil {
		return apperrors.NewHttpError(http.StatusBadRequest, "Campos inválidos", err, nil)
	}
	return ctx.Validate(&payload)
}

func filterDeleted[T entities.Reference](items []T, deleted *bool) []T {
	out := make([]T, 0, len(items))
	for _, item := range items {
		if deleted == nil || item.IsDeleted() == *deleted {
			out = append(out, item)
		}
	}
	return out
}
