package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"solicitation-system/internal/entities"
	"solicitation-system/internal/store"
	"solicitation-system/pkg/contextkeys"
	apperrors "solicitation-system/pkg/errors"
	"solicitation-system/pkg/utils"
)

// queryTimeLayout é o formato de startDate/endDate na consulta.
const queryTimeLayout = "2006-01-02T15:04:05"

// immutableFields não podem ser alterados por PUT.
var immutableFields = []string{"createdAt", "numSol", "userName", "filial", "costCenter"}

type SolicitationController struct {
	solicitations *store.Collection[entities.Solicitation]
	historic      *store.Collection[entities.Solicitation]
	now           func() time.Time
	logger        *zap.Logger
}

func NewSolicitationController(
	solicitations *store.Collection[entities.Solicitation],
	historic *store.Collection[entities.Solicitation],
	logger *zap.Logger,
) *SolicitationController {
	return &SolicitationController{
		solicitations: solicitations,
		historic:      historic,
		now:           time.Now,
		logger:        logger.Named("solicitation_controller"),
	}
}

type solicitationQuery struct {
	deleted    *bool
	start, end *time.Time
	status     []string
	requester  []string
	filial     []string
	urgency    []string
}

func parseSolicitationQuery(ctx echo.Context) (solicitationQuery, error) {
	q := solicitationQuery{
		deleted:   deletedFilter(ctx),
		status:    queryValues(ctx, "status"),
		requester: queryValues(ctx, "requester"),
		filial:    queryValues(ctx, "filial"),
		urgency:   queryValues(ctx, "urgency"),
	}
	for key, dst := range map[string]**time.Time{"startDate": &q.start, "endDate": &q.end} {
		v := strings.TrimSpace(ctx.QueryParam(key))
		if v == "" {
			continue
		}
		t, err := time.ParseInLocation(queryTimeLayout, v, time.Local)
		if err != nil {
			return q, apperrors.NewHttpError(http.StatusBadRequest, "Data inválida em "+key, err, nil)
		}
		*dst = &t
	}
	return q, nil
}

func (q solicitationQuery) matches(s entities.Solicitation) bool {
	if q.deleted != nil && s.StatusDelete != *q.deleted {
		return false
	}
	if q.start != nil && s.CreatedAt.Before(*q.start) {
		return false
	}
	if q.end != nil && s.CreatedAt.After(*q.end) {
		return false
	}
	return matchesAny(s.Status, q.status) &&
		matchesAny(s.UserName, q.requester) &&
		matchesAny(s.Filial, q.filial) &&
		matchesAny(s.Urgency, q.urgency)
}

func (c *SolicitationController) List(ctx echo.Context) error {
	q, err := parseSolicitationQuery(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	all, err := c.solicitations.All(ctx.Request().Context())
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	out := make([]entities.Solicitation, 0, len(all))
	for _, s := range all {
		if q.matches(s) {
			out = append(out, s)
		}
	}
	return ctx.JSON(http.StatusOK, out)
}

// Last responde o maior numSol como número puro (0 sem registros).
func (c *SolicitationController) Last(ctx echo.Context) error {
	all, err := c.solicitations.All(ctx.Request().Context())
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	last := 0
	for _, s := range all {
		last = max(last, s.NumSol)
	}
	return ctx.JSON(http.StatusOK, last)
}

func (c *SolicitationController) Create(ctx echo.Context) error {
	var s entities.Solicitation
	if err := ctx.Bind(&s); err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewHttpError(http.StatusBadRequest, "JSON inválido", err, nil), c.logger)
	}
	claims, ok := contextkeys.ClaimsFrom(ctx.Request().Context())
	if !ok || strings.TrimSpace(claims.Name) == "" {
		return utils.ErrorResponse(ctx, apperrors.ErrAuthMissing, c.logger)
	}
	if s.NumSol <= 0 {
		return utils.ErrorResponse(ctx, apperrors.NewHttpError(http.StatusBadRequest, "numSol é obrigatório", nil, nil), c.logger)
	}

	// Autoria vem sempre do token.
	s.UserName = claims.Name
	s.Filial = claims.Filial
	s.CostCenter = claims.CostCenter

	s.ID = uuid.NewString()
	s.CreatedAt = c.now().UTC()
	if err := c.solicitations.Insert(ctx.Request().Context(), s.ID, s); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	c.logger.Info("solicitação criada", zap.String("id", s.ID), zap.Int("numSol", s.NumSol))
	return ctx.JSON(http.StatusCreated, s)
}

func (c *SolicitationController) Update(ctx echo.Context) error {
	patch, err := bindPatch(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	for _, field := range immutableFields {
		delete(patch, field)
	}

	updated, err := c.solicitations.Patch(ctx.Request().Context(), ctx.Param("id"), patch)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return ctx.JSON(http.StatusOK, updated)
}

func (c *SolicitationController) AppendHistoric(ctx echo.Context) error {
	var s entities.Solicitation
	if err := ctx.Bind(&s); err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewHttpError(http.StatusBadRequest, "JSON inválido", err, nil), c.logger)
	}
	s.ID = uuid.NewString()
	if s.CreatedAt.IsZero() {
		s.CreatedAt = c.now().UTC()
	}
	if err := c.historic.Insert(ctx.Request().Context(), s.ID, s); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return ctx.JSON(http.StatusCreated, s)
}

func (c *SolicitationController) ListHistoric(ctx echo.Context) error {
	all, err := c.historic.All(ctx.Request().Context())
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return ctx.JSON(http.StatusOK, all)
}
