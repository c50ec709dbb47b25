package main

import (
	"quiethours/config"
	"quiethours/di"
	"quiethours/shared/logger"

	"github.com/rs/zerolog/log"
)

func main() {
	cfg := config.Get()

	logger.InitLogger()

	logger.SetLogLevel(cfg)

	app := di.InitializeApp()

	if err := app.CompletionJob.Start(); err != nil {
		log.Fatal().Err(err).Msg("Failed to start booking completion job")
	}

	app.HTTP.OnShutdown = app.CompletionJob.Stop

	app.HTTP.Serve()
}
