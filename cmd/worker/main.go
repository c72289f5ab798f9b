package main

import (
	"spacebook/config"
	"spacebook/di"
	"spacebook/shared/logger"

	"github.com/rs/zerolog/log"
)

func main() {
	cfg := config.Get()

	logger.Init(cfg)

	worker, err := di.InitializeWorker()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize event worker")
	}

	if err := worker.Run(); err != nil {
		log.Fatal().Err(err).Msg("Event worker stopped with an error")
	}
}
