package main

import (
	"github.com/phuhk2908/rms-backend/config"
	"github.com/phuhk2908/rms-backend/di"
	"github.com/phuhk2908/rms-backend/shared/logger"
)

func main() {
	cfg := config.Get()

	logger.InitLogger()

	logger.SetLogLevel(cfg)

	http := di.InitializeService()
	http.Serve()
}
