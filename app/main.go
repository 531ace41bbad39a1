// Backend de desenvolvimento: implementa em memória (ou Redis) o contrato
// REST consumido pelo cliente de solicitações.
package main

import (
	"context"
	"net/http"

	"github.com/go-redis/redis/v8"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"solicitation-system/internal/routes"
	"solicitation-system/internal/store"
	"solicitation-system/pkg/config"
	"solicitation-system/pkg/customvalidator"
	apperrors "solicitation-system/pkg/errors"
	applogger "solicitation-system/pkg/logger"
	"solicitation-system/pkg/middleware"
	"solicitation-system/pkg/service"
	"solicitation-system/pkg/utils"
	"solicitation-system/seeders"
)

func main() {
	// 1. Configuração e logger
	cfg := config.New()
	logger := applogger.NewLogger(cfg.Log)
	defer logger.Sync()

	e := echo.New()
	e.HideBanner = true

	// 2. Middlewares
	e.Use(echomw.RecoverWithConfig(echomw.RecoverConfig{
		DisableStackAll: true,
		StackSize:       1 << 10,
		LogErrorFunc: func(c echo.Context, err error, stack []byte) error {
			logger.Error("panic no processamento da requisição",
				zap.String("method", c.Request().Method),
				zap.String("uri", c.Request().RequestURI),
				zap.Error(err),
				zap.String("stack", string(stack)),
			)
			if !c.Response().Committed {
				httpErr := apperrors.NewHttpError(http.StatusInternalServerError, "Erro interno do servidor", err, nil)
				utils.ErrorResponse(c, httpErr, logger)
			}
			return err
		},
	}))
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))
	e.Use(middleware.RequestLogger(logger))

	// 3. Validador
	v := customvalidator.New()
	e.Validator = customvalidator.NewEchoValidator(v)

	// 4. Armazenamento
	st := openStore(cfg, logger)
	defer st.Close()

	if err := seeders.Seed(context.Background(), st, logger); err != nil {
		logger.Fatal("erro ao popular o armazenamento", zap.Error(err))
	}

	// 5. Rotas
	jwtSvc := service.NewJWTService(cfg.JWT.SecretKey, cfg.JWT.AccessTokenTTL, logger)
	routes.InitRouter(e, st, jwtSvc, logger, cfg)

	// 6. Servidor
	addr := ":" + cfg.Server.Port
	logger.Info("servidor iniciado", zap.String("address", addr), zap.String("store", cfg.Store.Driver))
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		logger.Fatal("erro ao iniciar o servidor", zap.Error(err))
	}
}

func openStore(cfg *config.Config, logger *zap.Logger) store.Store {
	if cfg.Store.Driver != config.StoreRedis {
		return store.NewMemoryStore()
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Address,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if _, err := client.Ping(context.Background()).Result(); err != nil {
		logger.Fatal("não foi possível conectar ao Redis", zap.Error(err), zap.String("address", cfg.Redis.Address))
	}
	return store.NewRedisStore(client, cfg.Redis.Prefix)
}
