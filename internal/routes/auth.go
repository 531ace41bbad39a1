package routes

import (
	"github.com/labstack/echo/v4"

	"solicitation-system/internal/controllers"
)

func runAuthRouter(api *echo.Group, authCtrl *controllers.AuthController) {
	api.POST("/users/login", authCtrl.Login)
}
