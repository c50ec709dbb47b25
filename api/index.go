package handler

import (
	"net/http"

	"quiethours/config"
	"quiethours/di"
	"quiethours/shared/logger"
)

func Handler(w http.ResponseWriter, r *http.Request) {
	r.RequestURI = r.URL.String()

	cfg := config.Get()

	logger.InitLogger()

	logger.SetLogLevel(cfg)

	app := di.InitializeApp()
	app.HTTP.Handler().ServeHTTP(w, r)
}
