package main

import (
	"fmt"
	"os"

	"github.com/danyol08/PMS-Monitoring/internal/auth"
	"github.com/danyol08/PMS-Monitoring/internal/config"
	"github.com/danyol08/PMS-Monitoring/internal/db"
	"github.com/danyol08/PMS-Monitoring/internal/excel"
	httphandler "github.com/danyol08/PMS-Monitoring/internal/http"
	"github.com/danyol08/PMS-Monitoring/internal/http/middleware"
	"github.com/danyol08/PMS-Monitoring/internal/logger"
	"github.com/danyol08/PMS-Monitoring/internal/notify"
	"github.com/danyol08/PMS-Monitoring/internal/pdf"
	"github.com/danyol08/PMS-Monitoring/internal/repository"
	"github.com/danyol08/PMS-Monitoring/internal/schedule"
	"github.com/danyol08/PMS-Monitoring/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Environment)

	database, err := db.New(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect database")
	}

	contractRepo := repository.NewContractRepository(database)
	historyRepo := repository.NewHistoryRepository(database)
	notificationRepo := repository.NewNotificationRepository(database)

	excelGenerator := excel.NewGenerator()
	pdfGenerator, err := pdf.NewGenerator()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to init pdf generator")
	}

	clock := schedule.SystemClock{}
	maintenanceService := service.NewMaintenanceService(
		contractRepo, historyRepo, excelGenerator, pdfGenerator, clock, cfg, log)

	scheduler := notify.NewScheduler(maintenanceService, notificationRepo, historyRepo, clock, cfg, log)
	if err := scheduler.Start(); err != nil {
		log.Fatal().Err(err).Msg("failed to start maintenance scheduler")
	}
	defer scheduler.Stop()

	tokenParser := auth.NewParser(cfg.Auth.AccessSecret)
	handler := httphandler.NewHandler(maintenanceService, notificationRepo, log)
	authMiddleware := middleware.Auth(tokenParser)
	router := httphandler.NewRouter(handler, authMiddleware, cfg.Environment)

	addr := fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port)
	log.Info().Str("addr", addr).Msg("starting pms monitoring service")

	if err := router.Run(addr); err != nil {
		log.Error().Err(err).Msg("server stopped")
		os.Exit(1)
	}
}
