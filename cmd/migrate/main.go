package main

import (
	"os"
	"strconv"

	"spacebook/config"
	"spacebook/helper"
	"spacebook/shared/logger"

	"github.com/rs/zerolog/log"
)

const usage = "usage: migrate up|down|step-up|drop|version|force <version>"

func main() {
	if len(os.Args) < 2 {
		log.Fatal().Msg(usage)
	}

	cfg := config.Get()

	logger.Init(cfg)

	switch command := os.Args[1]; command {
	case "version":
		version, dirty, err := helper.Version(cfg)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to read migration version")
		}

		log.Info().Uint("version", version).Bool("dirty", dirty).Msg("Current migration version")
	case "force":
		if len(os.Args) < 3 {
			log.Fatal().Msg(usage)
		}

		version, err := strconv.Atoi(os.Args[2])
		if err != nil {
			log.Fatal().Str("version", os.Args[2]).Msg("Version must be a number")
		}

		if err := helper.Force(cfg, version); err != nil {
			log.Fatal().Err(err).Msg("Failed to force migration version")
		}
	default:
		if err := helper.Run(cfg, command); err != nil {
			log.Fatal().Err(err).Msg(usage)
		}
	}
}
