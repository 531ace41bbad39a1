package routes

import (
	"github.com/labstack/echo/v4"

	"solicitation-system/internal/controllers"
	"solicitation-system/pkg/middleware"
	"solicitation-system/pkg/session"
)

type referenceHandlers interface {
	List(ctx echo.Context) error
	Create(ctx echo.Context) error
	Update(ctx echo.Context) error
}

func runReferenceRouter(secureGroup *echo.Group, path string, ctrl referenceHandlers, authMW *middleware.AuthMiddleware) {
	admin := authMW.RequireRole(session.RoleAdministrator)

	secureGroup.GET(path, ctrl.List)
	secureGroup.POST(path, ctrl.Create, admin)
	secureGroup.PUT(path+"/:id", ctrl.Update, admin)
}

func runUserRouter(secureGroup *echo.Group, ctrl *controllers.UserController, authMW *middleware.AuthMiddleware) {
	runReferenceRouter(secureGroup, "/users", ctrl, authMW)
	secureGroup.PUT("/users/:id/status", ctrl.SetStatus, authMW.RequireRole(session.RoleAdministrator))
}
