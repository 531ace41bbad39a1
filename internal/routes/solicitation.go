package routes

import (
	"github.com/labstack/echo/v4"

	"solicitation-system/internal/controllers"
	"solicitation-system/pkg/middleware"
	"solicitation-system/pkg/session"
)

// Qualquer usuário autenticado abre solicitações; só administradores
// alteram as existentes.
func runSolicitationRouter(secureGroup *echo.Group, ctrl *controllers.SolicitationController, authMW *middleware.AuthMiddleware) {
	secureGroup.GET("/solicitation", ctrl.List)
	secureGroup.GET("/solicitation/last", ctrl.Last)
	secureGroup.POST("/solicitation", ctrl.Create)
	secureGroup.PUT("/solicitation/:id", ctrl.Update, authMW.RequireRole(session.RoleAdministrator))

	secureGroup.GET("/solicitationHistoric", ctrl.ListHistoric)
	secureGroup.POST("/solicitationHistoric", ctrl.AppendHistoric)
}
