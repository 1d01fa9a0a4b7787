package main

import (
	"context"

	"contesthub/internal"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	_ = godotenv.Load()

	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()
	internal.SetLogger(logger)

	cfg, err := internal.LoadConfig()
	if err != nil {
		logger.Fatal("load config", zap.Error(err))
	}
	if cfg.AccessToken == "" {
		logger.Fatal("ACCESS_TOKEN is required")
	}

	db := internal.MustDB(cfg.DatabaseURL())
	defer db.Close()

	if err := internal.InitSchema(context.Background(), db); err != nil {
		logger.Fatal("init schema", zap.Error(err))
	}

	stores := internal.NewStores(db)
	pay := internal.NewStripeProvider(cfg.StripeSecretKey)

	r := internal.NewRouter(stores, cfg.AccessToken, pay)

	logger.Info("contestHub is running", zap.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Fatal("server", zap.Error(err))
	}
}
