package routes

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"solicitation-system/internal/controllers"
	"solicitation-system/internal/entities"
	"solicitation-system/internal/store"
	"solicitation-system/pkg/config"
	"solicitation-system/pkg/middleware"
	"solicitation-system/pkg/service"
)

// InitRouter monta o contrato REST consumido pelo cliente sob
// cfg.Server.BasePath.
func InitRouter(e *echo.Echo, st store.Store, jwtSvc service.JWTService, logger *zap.Logger, cfg *config.Config) {
	logger.Info("InitRouter: criando rotas", zap.String("basePath", cfg.Server.BasePath))

	// --- 0. COMPONENTES COMUNS ---
	api := e.Group(cfg.Server.BasePath)
	authMW := middleware.NewAuthMiddleware(jwtSvc, logger)

	// --- 1. COLEÇÕES ---
	solicitations := store.NewCollection[entities.Solicitation](st, store.Solicitations)
	historic := store.NewCollection[entities.Solicitation](st, store.Historic)
	users := store.NewCollection[store.UserRecord](st, store.Users)
	filiais := store.NewCollection[entities.Filial](st, store.Filiais)
	equipments := store.NewCollection[entities.Equipment](st, store.Equipments)
	categories := store.NewCollection[entities.EquipmentCategory](st, store.EquipmentCategories)

	// --- 2. CONTROLLERS ---
	authCtrl := controllers.NewAuthController(users, jwtSvc, logger)
	solicitationCtrl := controllers.NewSolicitationController(solicitations, historic, logger)
	userCtrl := controllers.NewUserController(users, logger)
	filialCtrl := controllers.NewFilialController(filiais, logger)
	equipmentCtrl := controllers.NewEquipmentController(equipments, logger)
	categoryCtrl := controllers.NewEquipmentCategoryController(categories, logger)

	// --- 3. ROTAS ---
	runAuthRouter(api, authCtrl)

	secureGroup := api.Group("", authMW.Auth)
	runSolicitationRouter(secureGroup, solicitationCtrl, authMW)
	runUserRouter(secureGroup, userCtrl, authMW)
	runReferenceRouter(secureGroup, "/filial", filialCtrl, authMW)
	runReferenceRouter(secureGroup, "/Equipament", equipmentCtrl, authMW)
	runReferenceRouter(secureGroup, "/categoryEquipment", categoryCtrl, authMW)

	logger.Info("InitRouter: rotas criadas")
}
