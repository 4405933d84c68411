package main

import (
	"log"

	"educa/config"
	"educa/database"
	"educa/logger"
	"educa/routers"
	"educa/utils"

	"go.uber.org/zap"
)

func main() {
	config.LoadConfig()
	if err := logger.Init(config.AppConfig.AppEnv); err != nil {
		log.Fatalf("Failed to initialise logger: %v", err)
	}
	defer logger.Sync()

	database.ConnectDb()

	if err := utils.InitMediaStorage(); err != nil {
		logger.Log.Fatal("Failed to initialise media storage", zap.Error(err))
	}

	sweeper, err := utils.InitializeOrphanSweeper(config.AppConfig.OrphanSweepSchedule)
	if err != nil {
		logger.Log.Fatal("Failed to schedule orphan sweeper", zap.Error(err))
	}
	if sweeper != nil {
		defer sweeper.Stop()
	}

	app := routers.NewApp()

	logger.Log.Info("Server is running", zap.String("port", config.AppConfig.Port))
	if err := app.Listen(":" + config.AppConfig.Port); err != nil {
		logger.Log.Fatal("Server stopped", zap.Error(err))
	}
}
