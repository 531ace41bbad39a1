package main

import (
	"context"
	"flag"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"solicitation-system/internal/store"
	"solicitation-system/pkg/config"
	applogger "solicitation-system/pkg/logger"
	"solicitation-system/seeders"
)

func main() {
	flush := flag.Bool("flush", false, "Apagar as coleções antes de popular")
	flag.Parse()

	cfg := config.New()
	logger := applogger.NewLogger(cfg.Log)
	defer logger.Sync()

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Address,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		logger.Fatal("não foi possível conectar ao Redis", zap.Error(err), zap.String("address", cfg.Redis.Address))
	}

	st := store.NewRedisStore(client, cfg.Redis.Prefix)
	defer st.Close()

	if *flush {
		if err := st.Flush(ctx, store.Solicitations, store.Historic, store.Users, store.Filiais, store.Equipments, store.EquipmentCategories); err != nil {
			logger.Fatal("erro ao limpar coleções", zap.Error(err))
		}
		logger.Info("coleções apagadas", zap.String("prefix", cfg.Redis.Prefix))
	}

	if err := seeders.Seed(ctx, st, logger); err != nil {
		logger.Fatal("erro no seed", zap.Error(err))
	}
}
