package main

import (
	"spacebook/config"
	"spacebook/di"
	"spacebook/helper"
	"spacebook/shared/logger"

	"github.com/rs/zerolog/log"
)

// @title Spacebook API
// @version 1.0
// @description Space catalog and day booking service.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg := config.Get()

	logger.Init(cfg)

	if cfg.DB.Postgres.AutoMigrate {
		if err := helper.Up(cfg); err != nil {
			log.Fatal().Err(err).Msg("Failed to apply database migrations")
		}
	}

	http := di.InitializeService()
	http.Serve()
}
